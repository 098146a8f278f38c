package repositories

import (
	"context"

	"github.com/billingup/billingup-backend/internal/core/domain"
)

// AdjustmentRepositoryReader defines read operations for balance adjustments
type AdjustmentRepositoryReader interface {
	// ListAdjustmentsByParty retrieves a party's adjustment history ordered
	// by creation time descending.
	ListAdjustmentsByParty(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error)
}

// AdjustmentRepositoryWriter defines write operations for balance adjustments
type AdjustmentRepositoryWriter interface {
	// SaveAdjustment persists the adjustment row and updates the party's
	// balances in a single database transaction.
	SaveAdjustment(ctx context.Context, adjustment domain.BalanceAdjustment) error
}

// AdjustmentRepositoryFacade combines all adjustment repository capabilities
type AdjustmentRepositoryFacade interface {
	AdjustmentRepositoryReader
	AdjustmentRepositoryWriter
}
