package dto

import (
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest defines the data needed to record a balance
// adjustment. NewBalance is the value the chosen balance is set to; the
// adjustment amount is derived server-side.
type CreateAdjustmentRequest struct {
	Type       domain.AdjustmentType `json:"type" binding:"required,oneof=opening_balance current_balance"`
	NewBalance decimal.Decimal       `json:"newBalance" binding:"required"`
	Reason     string                `json:"reason"`
}

// AdjustmentResponse defines the data returned for a balance adjustment.
type AdjustmentResponse struct {
	AdjustmentID     string                `json:"adjustmentID"`
	PartyID          string                `json:"partyID"`
	Type             domain.AdjustmentType `json:"type"`
	PreviousBalance  decimal.Decimal       `json:"previousBalance"`
	NewBalance       decimal.Decimal       `json:"newBalance"`
	AdjustmentAmount decimal.Decimal       `json:"adjustmentAmount"`
	Reason           string                `json:"reason,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToAdjustmentResponse converts a domain.BalanceAdjustment to AdjustmentResponse DTO
func ToAdjustmentResponse(adj *domain.BalanceAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:     adj.AdjustmentID,
		PartyID:          adj.PartyID,
		Type:             adj.AdjustmentType,
		PreviousBalance:  adj.PreviousBalance,
		NewBalance:       adj.NewBalance,
		AdjustmentAmount: adj.AdjustmentAmount,
		Reason:           adj.Reason,
		CreatedAt:        adj.CreatedAt,
		CreatedBy:        adj.CreatedBy,
	}
}

// ToAdjustmentResponses converts a slice of domain.BalanceAdjustment to []AdjustmentResponse.
func ToAdjustmentResponses(adjs []domain.BalanceAdjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjs))
	for i, adj := range adjs {
		responses[i] = ToAdjustmentResponse(&adj)
	}
	return responses
}
