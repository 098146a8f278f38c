package services

import (
	"context"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/dto"
)

// AdjustmentSvcFacade defines operations for party balance adjustments.
// Adjustments are append-only; there is no update or delete.
type AdjustmentSvcFacade interface {
	// CreateAdjustment records a manual balance correction for a party and
	// applies it to the party's stored balances atomically.
	CreateAdjustment(ctx context.Context, partyID string, req dto.CreateAdjustmentRequest, userID string) (*domain.BalanceAdjustment, error)

	// ListAdjustments retrieves a party's adjustment history, newest first.
	ListAdjustments(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error)
}
