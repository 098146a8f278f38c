package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/platform/cache"
)

const dashboardCacheKey = "dashboard"

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	cache         *cache.Store
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepositoryFacade, cacheStore *cache.Store) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: repo,
		cache:         cacheStore,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) PartywisePnL(ctx context.Context, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.PartyPnLRow, error) {
	cacheKey := pnlCacheKey(dateFrom, dateTo)
	if cached, found := s.cache.Get(cache.Reports, userID, cacheKey); found {
		if rows, ok := cached.([]domain.PartyPnLRow); ok {
			return rows, nil
		}
	}

	rows, err := s.reportingRepo.GetPartywisePnL(ctx, userID, dateFrom, dateTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute partywise P&L")
		return nil, err
	}

	s.cache.Set(cache.Reports, userID, cacheKey, rows)
	s.LogDebug(ctx, "Partywise P&L computed",
		slog.Int("parties", len(rows)))
	return rows, nil
}

func (s *reportingService) DashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	if cached, found := s.cache.Get(cache.Reports, userID, dashboardCacheKey); found {
		if summary, ok := cached.(*domain.DashboardSummary); ok {
			return summary, nil
		}
	}

	summary, err := s.reportingRepo.GetDashboardSummary(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute dashboard summary")
		return nil, err
	}

	s.cache.Set(cache.Reports, userID, dashboardCacheKey, summary)
	return summary, nil
}

func pnlCacheKey(dateFrom, dateTo *time.Time) string {
	from, to := "", ""
	if dateFrom != nil {
		from = dateFrom.Format("2006-01-02")
	}
	if dateTo != nil {
		to = dateTo.Format("2006-01-02")
	}
	return fmt.Sprintf("pnl:%s:%s", from, to)
}
