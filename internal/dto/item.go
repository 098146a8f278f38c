package dto

import (
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a catalog item.
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	Unit          string          `json:"unit"`
	HSNCode       string          `json:"hsnCode"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	Category      string          `json:"category"`
}

// UpdateItemRequest defines the data allowed for updating a catalog item.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateItemRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	StockQuantity *decimal.Decimal `json:"stockQuantity"`
	Unit          *string          `json:"unit"`
	HSNCode       *string          `json:"hsnCode"`
	GSTRate       *decimal.Decimal `json:"gstRate"`
	Category      *string          `json:"category"`
}

// ItemResponse defines the data returned for a catalog item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	Unit          string          `json:"unit,omitempty"`
	HSNCode       string          `json:"hsnCode,omitempty"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	Category      string          `json:"category,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	Limit           int  `form:"limit,default=20"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListItemsResponse wraps the list of items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		Name:          item.Name,
		Description:   item.Description,
		SalePrice:     item.SalePrice,
		PurchasePrice: item.PurchasePrice,
		StockQuantity: item.StockQuantity,
		Unit:          item.Unit,
		HSNCode:       item.HSNCode,
		GSTRate:       item.GSTRate,
		Category:      item.Category,
		IsActive:      item.IsActive,
		CreatedAt:     item.CreatedAt,
		CreatedBy:     item.CreatedBy,
		LastUpdatedAt: item.LastUpdatedAt,
		LastUpdatedBy: item.LastUpdatedBy,
	}
}

// ToListItemsResponse converts a slice of domain.Item to ListItemsResponse DTO
func ToListItemsResponse(items []domain.Item) ListItemsResponse {
	res := make([]ItemResponse, len(items))
	for i, item := range items {
		res[i] = ToItemResponse(&item)
	}
	return ListItemsResponse{Items: res}
}
