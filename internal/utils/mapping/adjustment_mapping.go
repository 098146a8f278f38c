package mapping

import (
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/models"
)

// ToModelBalanceAdjustment converts a domain BalanceAdjustment to a model BalanceAdjustment
func ToModelBalanceAdjustment(d domain.BalanceAdjustment) models.BalanceAdjustment {
	return models.BalanceAdjustment{
		AdjustmentID:     d.AdjustmentID,
		UserID:           d.UserID,
		PartyID:          d.PartyID,
		AdjustmentType:   string(d.AdjustmentType),
		PreviousBalance:  d.PreviousBalance,
		NewBalance:       d.NewBalance,
		AdjustmentAmount: d.AdjustmentAmount,
		Reason:           d.Reason,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
	}
}

// ToDomainBalanceAdjustment converts a model BalanceAdjustment to a domain BalanceAdjustment
func ToDomainBalanceAdjustment(m models.BalanceAdjustment) domain.BalanceAdjustment {
	return domain.BalanceAdjustment{
		AdjustmentID:     m.AdjustmentID,
		UserID:           m.UserID,
		PartyID:          m.PartyID,
		AdjustmentType:   domain.AdjustmentType(m.AdjustmentType),
		PreviousBalance:  m.PreviousBalance,
		NewBalance:       m.NewBalance,
		AdjustmentAmount: m.AdjustmentAmount,
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// ToDomainBalanceAdjustmentSlice converts model adjustments to domain adjustments
func ToDomainBalanceAdjustmentSlice(ms []models.BalanceAdjustment) []domain.BalanceAdjustment {
	ds := make([]domain.BalanceAdjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalanceAdjustment(m)
	}
	return ds
}
