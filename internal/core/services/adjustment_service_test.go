package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/core/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AdjustmentRepository ---
type MockAdjustmentRepository struct {
	mock.Mock
}

// Ensure MockAdjustmentRepository implements portsrepo.AdjustmentRepositoryFacade
var _ portsrepo.AdjustmentRepositoryFacade = (*MockAdjustmentRepository)(nil)

func (m *MockAdjustmentRepository) ListAdjustmentsByParty(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.BalanceAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockAdjustmentRepo *MockAdjustmentRepository
	mockPartyRepo      *MockPartyRepository
	service            portssvc.AdjustmentSvcFacade
	userID             string
	party              *domain.Party
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockAdjustmentRepo = new(MockAdjustmentRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewAdjustmentService(suite.mockAdjustmentRepo, suite.mockPartyRepo, cache.New(time.Minute))
	suite.userID = uuid.NewString()
	suite.party = &domain.Party{
		PartyID:        uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Bharat Supplies",
		PartyType:      domain.PartyTypeVendor,
		OpeningBalance: decimal.NewFromInt(-400),
		CurrentBalance: decimal.NewFromInt(-150),
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_CurrentBalance() {
	ctx := context.Background()
	req := dto.CreateAdjustmentRequest{
		Type:       domain.AdjustCurrentBalance,
		NewBalance: decimal.NewFromInt(100),
		Reason:     "reconciled against bank statement",
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(adj domain.BalanceAdjustment) bool {
		return adj.PartyID == suite.party.PartyID &&
			adj.PreviousBalance.Equal(decimal.NewFromInt(-150)) &&
			adj.NewBalance.Equal(decimal.NewFromInt(100)) &&
			adj.AdjustmentAmount.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()

	adjustment, err := suite.service.CreateAdjustment(ctx, suite.party.PartyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(adjustment)
	suite.NotEmpty(adjustment.AdjustmentID)
	suite.Equal(domain.AdjustCurrentBalance, adjustment.AdjustmentType)
	suite.Equal("reconciled against bank statement", adjustment.Reason)
	suite.Equal(suite.userID, adjustment.CreatedBy)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_OpeningBalanceUsesOpeningAsPrevious() {
	ctx := context.Background()
	req := dto.CreateAdjustmentRequest{
		Type:       domain.AdjustOpeningBalance,
		NewBalance: decimal.NewFromInt(-500),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockAdjustmentRepo.On("SaveAdjustment", ctx, mock.MatchedBy(func(adj domain.BalanceAdjustment) bool {
		return adj.PreviousBalance.Equal(decimal.NewFromInt(-400)) &&
			adj.AdjustmentAmount.Equal(decimal.NewFromInt(-100))
	})).Return(nil).Once()

	adjustment, err := suite.service.CreateAdjustment(ctx, suite.party.PartyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(adjustment.AdjustmentAmount.Equal(decimal.NewFromInt(-100)))
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestCreateAdjustment_PartyNotFound() {
	ctx := context.Background()
	unknownPartyID := uuid.NewString()
	req := dto.CreateAdjustmentRequest{
		Type:       domain.AdjustCurrentBalance,
		NewBalance: decimal.NewFromInt(50),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, unknownPartyID, suite.userID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	adjustment, err := suite.service.CreateAdjustment(ctx, unknownPartyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(adjustment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "SaveAdjustment")
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_ChecksOwnershipFirst() {
	ctx := context.Background()
	history := []domain.BalanceAdjustment{
		{AdjustmentID: uuid.NewString(), PartyID: suite.party.PartyID, AdjustmentType: domain.AdjustCurrentBalance},
		{AdjustmentID: uuid.NewString(), PartyID: suite.party.PartyID, AdjustmentType: domain.AdjustOpeningBalance},
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockAdjustmentRepo.On("ListAdjustmentsByParty", ctx, suite.party.PartyID, suite.userID).Return(history, nil).Once()

	adjustments, err := suite.service.ListAdjustments(ctx, suite.party.PartyID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(adjustments, 2)
	suite.mockAdjustmentRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestListAdjustments_UnownedPartyHidden() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	adjustments, err := suite.service.ListAdjustments(ctx, suite.party.PartyID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(adjustments)
	suite.mockAdjustmentRepo.AssertNotCalled(suite.T(), "ListAdjustmentsByParty")
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
