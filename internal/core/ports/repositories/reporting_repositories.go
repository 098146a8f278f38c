package repositories

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
)

// ReportingRepositoryFacade defines aggregate queries computed in the
// database rather than by replaying transactions in memory.
type ReportingRepositoryFacade interface {
	// GetPartywisePnL returns per-party sale and purchase totals within the
	// optional date window, ordered by net amount descending.
	GetPartywisePnL(ctx context.Context, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.PartyPnLRow, error)

	// GetDashboardSummary returns the headline aggregates for a user's book.
	GetDashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}
