package dto

import (
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionItemRequest defines a single line on an incoming transaction.
// LineTotal is recomputed server-side and need not be supplied.
type TransactionItemRequest struct {
	ItemID    string          `json:"itemID"`
	Name      string          `json:"name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
}

// CreateTransactionRequest defines the data needed to create a transaction.
type CreateTransactionRequest struct {
	Type              domain.TransactionType `json:"type" binding:"required"`
	TransactionNumber string                 `json:"transactionNumber"`
	TransactionDate   time.Time              `json:"transactionDate" binding:"required"`
	PartyID           string                 `json:"partyID"` // Optional, empty means no party link
	Subtotal          decimal.Decimal        `json:"subtotal"`
	DiscountAmount    decimal.Decimal        `json:"discountAmount"`
	TaxAmount         decimal.Decimal        `json:"taxAmount"`
	PaymentStatus     domain.PaymentStatus   `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentMode       string                 `json:"paymentMode"`
	Notes             string                 `json:"notes"`
	Items             []TransactionItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateTransactionRequest defines the data for replacing a transaction's
// details. Updates are full replacements of the mutable fields; the type and
// the party link are immutable after creation.
type UpdateTransactionRequest struct {
	TransactionNumber string                   `json:"transactionNumber"`
	TransactionDate   time.Time                `json:"transactionDate" binding:"required"`
	Subtotal          decimal.Decimal          `json:"subtotal"`
	DiscountAmount    decimal.Decimal          `json:"discountAmount"`
	TaxAmount         decimal.Decimal          `json:"taxAmount"`
	PaymentStatus     domain.PaymentStatus     `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentMode       string                   `json:"paymentMode"`
	Notes             string                   `json:"notes"`
	Items             []TransactionItemRequest `json:"items" binding:"omitempty,dive"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	PartyID   *string    `form:"partyID"`
	Types     []string   `form:"types"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
}

// TransactionItemResponse defines a single line returned on a transaction.
type TransactionItemResponse struct {
	ItemID    string          `json:"itemID,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionID"`
	Type              domain.TransactionType    `json:"type"`
	TransactionNumber string                    `json:"transactionNumber"`
	TransactionDate   time.Time                 `json:"transactionDate"`
	PartyID           string                    `json:"partyID,omitempty"`
	PartyName         string                    `json:"partyName,omitempty"`
	PartyPhone        string                    `json:"partyPhone,omitempty"`
	Subtotal          decimal.Decimal           `json:"subtotal"`
	DiscountAmount    decimal.Decimal           `json:"discountAmount"`
	TaxAmount         decimal.Decimal           `json:"taxAmount"`
	TotalAmount       decimal.Decimal           `json:"totalAmount"`
	PaymentStatus     domain.PaymentStatus      `json:"paymentStatus"`
	PaymentMode       string                    `json:"paymentMode,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	Items             []TransactionItemResponse `json:"items"`
	CreatedAt         time.Time                 `json:"createdAt"`
	CreatedBy         string                    `json:"createdBy"`
	LastUpdatedAt     time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy     string                    `json:"lastUpdatedBy"`
}

// ListTransactionsResponse wraps a page of transactions with the token for
// fetching the next page. NextToken is nil when there are no more pages.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(txn.Items))
	for i, item := range txn.Items {
		items[i] = TransactionItemResponse{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			LineTotal: item.LineTotal,
		}
	}
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		Type:              txn.TransactionType,
		TransactionNumber: txn.TransactionNumber,
		TransactionDate:   txn.TransactionDate,
		PartyID:           txn.PartyID,
		PartyName:         txn.PartyName,
		PartyPhone:        txn.PartyPhone,
		Subtotal:          txn.Subtotal,
		DiscountAmount:    txn.DiscountAmount,
		TaxAmount:         txn.TaxAmount,
		TotalAmount:       txn.TotalAmount,
		PaymentStatus:     txn.PaymentStatus,
		PaymentMode:       txn.PaymentMode,
		Notes:             txn.Notes,
		Items:             items,
		CreatedAt:         txn.CreatedAt,
		CreatedBy:         txn.CreatedBy,
		LastUpdatedAt:     txn.LastUpdatedAt,
		LastUpdatedBy:     txn.LastUpdatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
