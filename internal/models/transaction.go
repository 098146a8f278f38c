package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row in the transactions table. Items are stored
// as a JSONB column; the repository validates the payload on read and
// defaults a malformed list to empty rather than failing the row.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	UserID            string          `db:"user_id"`
	TransactionType   string          `db:"transaction_type"`
	TransactionNumber string          `db:"transaction_number"`
	TransactionDate   time.Time       `db:"transaction_date"`
	PartyID           string          `db:"party_id"`
	PartyName         string          `db:"party_name"`  // Denormalized snapshot
	PartyPhone        string          `db:"party_phone"` // Denormalized snapshot, nullable
	Subtotal          decimal.Decimal `db:"subtotal"`
	DiscountAmount    decimal.Decimal `db:"discount_amount"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"` // Nullable in legacy data, coerced to 0 on read
	PaymentStatus     string          `db:"payment_status"`
	PaymentMode       string          `db:"payment_mode"` // Nullable
	Notes             string          `db:"notes"`        // Nullable
	Items             []byte          `db:"items"`        // JSONB
	AuditFields
}

// TransactionItem is the JSON shape of one element of the items column.
type TransactionItem struct {
	ItemID    string          `json:"item_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	LineTotal decimal.Decimal `json:"line_total"`
}
