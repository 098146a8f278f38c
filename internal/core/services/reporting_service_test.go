package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/core/services"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetPartywisePnL(ctx context.Context, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.PartyPnLRow, error) {
	args := m.Called(ctx, userID, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyPnLRow), args.Error(1)
}

func (m *MockReportingRepository) GetDashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	cacheStore        *cache.Store
	service           portssvc.ReportingSvcFacade
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.cacheStore = cache.New(time.Minute)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.cacheStore)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestPartywisePnL_CachesPerDateWindow() {
	ctx := context.Background()
	rows := []domain.PartyPnLRow{
		{
			PartyID:          uuid.NewString(),
			PartyName:        "Acme Traders",
			SaleTotal:        decimal.NewFromInt(5000),
			PurchaseTotal:    decimal.NewFromInt(1200),
			NetAmount:        decimal.NewFromInt(3800),
			TransactionCount: 7,
		},
	}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetPartywisePnL", ctx, suite.userID, &from, &to).Return(rows, nil).Once()

	first, err := suite.service.PartywisePnL(ctx, suite.userID, &from, &to)
	suite.Require().NoError(err)
	suite.Require().Len(first, 1)
	suite.True(first[0].NetAmount.Equal(decimal.NewFromInt(3800)))

	// Same window again must be served from cache.
	second, err := suite.service.PartywisePnL(ctx, suite.userID, &from, &to)
	suite.Require().NoError(err)
	suite.Len(second, 1)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPartywisePnL_DifferentWindowsCachedSeparately() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetPartywisePnL", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.PartyPnLRow{}, nil).Once()
	suite.mockReportingRepo.On("GetPartywisePnL", ctx, suite.userID, &from, (*time.Time)(nil)).
		Return([]domain.PartyPnLRow{}, nil).Once()

	_, err := suite.service.PartywisePnL(ctx, suite.userID, nil, nil)
	suite.Require().NoError(err)
	_, err = suite.service.PartywisePnL(ctx, suite.userID, &from, nil)
	suite.Require().NoError(err)

	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_CachesResult() {
	ctx := context.Background()
	summary := &domain.DashboardSummary{
		TotalReceivable:  decimal.NewFromInt(300),
		TotalPayable:     decimal.NewFromInt(120),
		TotalSales:       decimal.NewFromInt(5000),
		TotalPurchases:   decimal.NewFromInt(1200),
		TransactionCount: 42,
		ActiveParties:    3,
	}
	suite.mockReportingRepo.On("GetDashboardSummary", ctx, suite.userID).Return(summary, nil).Once()

	first, err := suite.service.DashboardSummary(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(42, first.TransactionCount)

	second, err := suite.service.DashboardSummary(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(first, second)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_InvalidatedByWrite() {
	ctx := context.Background()
	summary := &domain.DashboardSummary{ActiveParties: 3}
	suite.mockReportingRepo.On("GetDashboardSummary", ctx, suite.userID).Return(summary, nil).Twice()

	_, err := suite.service.DashboardSummary(ctx, suite.userID)
	suite.Require().NoError(err)

	// Writes elsewhere invalidate the reports collection for this user.
	suite.cacheStore.InvalidateAll(suite.userID, cache.Reports)

	_, err = suite.service.DashboardSummary(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
