package services

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating business reports
type ReportingSvcFacade interface {
	// PartywisePnL generates per-party sale and purchase totals for the
	// optional date window.
	PartywisePnL(ctx context.Context, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.PartyPnLRow, error)

	// DashboardSummary generates headline aggregates for a user's book.
	DashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}
