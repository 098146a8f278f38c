package models

import (
	"github.com/shopspring/decimal"
)

// Item represents a row in the items table.
type Item struct {
	ItemID        string          `db:"item_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"` // Nullable
	SalePrice     decimal.Decimal `db:"sale_price"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
	Unit          string          `db:"unit"`     // Nullable
	HSNCode       string          `db:"hsn_code"` // Nullable
	GSTRate       decimal.Decimal `db:"gst_rate"`
	Category      string          `db:"category"` // Nullable
	IsActive      bool            `db:"is_active"`
	AuditFields
}
