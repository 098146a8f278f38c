package domain

import (
	"github.com/shopspring/decimal"
)

// Item is a catalog entry the business sells or buys.
type Item struct {
	ItemID        string          `json:"itemID"` // Primary Key (UUID)
	UserID        string          `json:"userID"` // Owning user (tenant boundary)
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	Unit          string          `json:"unit"`
	HSNCode       string          `json:"hsnCode"`
	GSTRate       decimal.Decimal `json:"gstRate"` // Percentage, 0..28
	Category      string          `json:"category"`
	IsActive      bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
