package mapping

import (
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		UserID:        d.UserID,
		Name:          d.Name,
		Description:   d.Description,
		SalePrice:     d.SalePrice,
		PurchasePrice: d.PurchasePrice,
		StockQuantity: d.StockQuantity,
		Unit:          d.Unit,
		HSNCode:       d.HSNCode,
		GSTRate:       d.GSTRate,
		Category:      d.Category,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		SalePrice:     m.SalePrice,
		PurchasePrice: m.PurchasePrice,
		StockQuantity: m.StockQuantity,
		Unit:          m.Unit,
		HSNCode:       m.HSNCode,
		GSTRate:       m.GSTRate,
		Category:      m.Category,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}
