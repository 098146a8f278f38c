package mapping

import (
	"encoding/json"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Items are serialized to the JSONB payload shape.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	items := make([]models.TransactionItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.TransactionItem{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			LineTotal: item.LineTotal,
		}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		TransactionID:     d.TransactionID,
		UserID:            d.UserID,
		TransactionType:   string(d.TransactionType),
		TransactionNumber: d.TransactionNumber,
		TransactionDate:   d.TransactionDate,
		PartyID:           d.PartyID,
		PartyName:         d.PartyName,
		PartyPhone:        d.PartyPhone,
		Subtotal:          d.Subtotal,
		DiscountAmount:    d.DiscountAmount,
		TaxAmount:         d.TaxAmount,
		TotalAmount:       d.TotalAmount,
		PaymentStatus:     string(d.PaymentStatus),
		PaymentMode:       d.PaymentMode,
		Notes:             d.Notes,
		Items:             itemsJSON,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// A malformed items payload degrades to an empty list so one bad row cannot
// break a whole statement.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		UserID:            m.UserID,
		TransactionType:   domain.TransactionType(m.TransactionType),
		TransactionNumber: m.TransactionNumber,
		TransactionDate:   m.TransactionDate,
		PartyID:           m.PartyID,
		PartyName:         m.PartyName,
		PartyPhone:        m.PartyPhone,
		Subtotal:          m.Subtotal,
		DiscountAmount:    m.DiscountAmount,
		TaxAmount:         m.TaxAmount,
		TotalAmount:       m.TotalAmount,
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		PaymentMode:       m.PaymentMode,
		Notes:             m.Notes,
		Items:             ItemsFromJSON(m.Items),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ItemsFromJSON decodes the items JSONB payload into domain line items.
// nil, empty and malformed payloads all yield an empty slice.
func ItemsFromJSON(raw []byte) []domain.TransactionItem {
	if len(raw) == 0 {
		return []domain.TransactionItem{}
	}
	var modelItems []models.TransactionItem
	if err := json.Unmarshal(raw, &modelItems); err != nil {
		return []domain.TransactionItem{}
	}
	items := make([]domain.TransactionItem, len(modelItems))
	for i, item := range modelItems {
		items[i] = domain.TransactionItem{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			LineTotal: item.LineTotal,
		}
	}
	return items
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
