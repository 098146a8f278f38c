package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the business document a transaction represents.
type TransactionType string

const (
	SaleInvoice     TransactionType = "sale_invoice"
	Purchase        TransactionType = "purchase"
	PaymentIn       TransactionType = "payment_in"
	PaymentOut      TransactionType = "payment_out"
	SaleReturn      TransactionType = "sale_return"
	PurchaseReturn  TransactionType = "purchase_return"
	Expense         TransactionType = "expense"
	DeliveryChallan TransactionType = "delivery_challan"
	Estimate        TransactionType = "estimate"
	SaleOrder       TransactionType = "sale_order"
	PurchaseOrder   TransactionType = "purchase_order"
	P2PTransfer     TransactionType = "p2p_transfer"
)

// TransactionCategory groups transaction types for reporting purposes.
type TransactionCategory string

const (
	CategorySale     TransactionCategory = "SALE"
	CategoryPurchase TransactionCategory = "PURCHASE"
)

// PaymentStatus tracks how much of a transaction has been settled.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// TransactionItem is a single line on a transaction document.
// LineTotal = Quantity * UnitPrice * (1 + TaxRate/100).
type TransactionItem struct {
	ItemID    string          `json:"itemID"` // Optional reference into the item catalog
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"` // GST percentage, 0..28
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Transaction represents a single business document (invoice, payment,
// return, order, ...). Monetary invariant: TotalAmount = Subtotal -
// DiscountAmount + TaxAmount, enforced at construction time in the service.
//
// PartyName and PartyPhone are denormalized snapshots taken at creation;
// PartyID is the canonical link to the party.
type Transaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	UserID            string            `json:"userID"`        // Owning user (tenant boundary)
	TransactionType   TransactionType   `json:"transactionType"`
	TransactionNumber string            `json:"transactionNumber"`
	TransactionDate   time.Time         `json:"transactionDate"`
	PartyID           string            `json:"partyID"`
	PartyName         string            `json:"partyName"`
	PartyPhone        string            `json:"partyPhone"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	DiscountAmount    decimal.Decimal   `json:"discountAmount"`
	TaxAmount         decimal.Decimal   `json:"taxAmount"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	PaymentMode       string            `json:"paymentMode"`
	Notes             string            `json:"notes"`
	Items             []TransactionItem `json:"items"`
	AuditFields
}
