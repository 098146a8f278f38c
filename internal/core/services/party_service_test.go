package services_test

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

// Ensure MockPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, userID, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListActiveParties(ctx context.Context, userID string) ([]domain.Party, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) SavePartyInTx(ctx context.Context, tx pgx.Tx, party domain.Party) error {
	args := m.Called(ctx, tx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, deletedAt time.Time) error {
	args := m.Called(ctx, partyID, userID, deletedAt)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string, userID string) (*domain.Party, error) {
	args := m.Called(ctx, tx, partyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, delta decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, tx, partyID, userID, delta, updatedBy)
	return args.Error(0)
}

func (m *MockPartyRepository) SetBalancesInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, opening decimal.Decimal, current decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, tx, partyID, userID, opening, current, updatedBy)
	return args.Error(0)
}

func (m *MockPartyRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPartyRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPartyRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PartyServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	service       portssvc.PartySvcFacade
	userID        string
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewPartyService(suite.mockPartyRepo, cache.New(time.Minute))
	suite.userID = uuid.NewString()
}

// expectSaveInTx wires the Begin/Save/Commit/Rollback sequence used by
// CreateParty. saveErr makes the save fail; the transaction is then rolled
// back without a commit.
func (suite *PartyServiceTestSuite) expectSaveInTx(saveErr error) {
	suite.mockPartyRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockPartyRepo.On("SavePartyInTx", mock.Anything, nil, mock.AnythingOfType("domain.Party")).Return(saveErr)
	if saveErr == nil {
		suite.mockPartyRepo.On("Commit", mock.Anything, nil).Return(nil)
	}
	suite.mockPartyRepo.On("Rollback", mock.Anything, nil).Return(nil).Maybe()
}

// --- Test Cases ---

func (suite *PartyServiceTestSuite) TestCreateParty_Success() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{
		Name:           "Acme Traders",
		Type:           domain.PartyTypeCustomer,
		Phone:          "9876543210",
		OpeningBalance: decimal.NewFromInt(500),
	}

	suite.expectSaveInTx(nil)

	party, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(party)
	suite.NotEmpty(party.PartyID)
	suite.Equal(suite.userID, party.UserID)
	suite.Equal("Acme Traders", party.Name)
	suite.True(party.OpeningBalance.Equal(decimal.NewFromInt(500)))
	// The running balance starts at the opening balance.
	suite.True(party.CurrentBalance.Equal(decimal.NewFromInt(500)))
	suite.True(party.IsActive)
	suite.Equal(suite.userID, party.CreatedBy)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_BlankNameRejected() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{Name: "   ", Type: domain.PartyTypeVendor}

	party, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(party)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "SavePartyInTx")
}

func (suite *PartyServiceTestSuite) TestCreateParty_DuplicateName() {
	ctx := context.Background()
	req := dto.CreatePartyRequest{Name: "Acme Traders", Type: domain.PartyTypeCustomer}

	suite.expectSaveInTx(fmt.Errorf(`party %q already exists: %w`, "Acme Traders", apperrors.ErrDuplicate))

	party, err := suite.service.CreateParty(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(party)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "Commit")
}

func (suite *PartyServiceTestSuite) TestGetPartySummary_AggregatesAndCaches() {
	ctx := context.Background()
	parties := []domain.Party{
		{PartyID: uuid.NewString(), CurrentBalance: decimal.NewFromInt(300), IsActive: true},
		{PartyID: uuid.NewString(), CurrentBalance: decimal.NewFromInt(-120), IsActive: true},
		{PartyID: uuid.NewString(), CurrentBalance: decimal.Zero, IsActive: true},
	}
	suite.mockPartyRepo.On("ListActiveParties", ctx, suite.userID).Return(parties, nil).Once()

	summary, err := suite.service.GetPartySummary(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(summary.TotalReceivable.Equal(decimal.NewFromInt(300)))
	suite.True(summary.TotalPayable.Equal(decimal.NewFromInt(120)))
	suite.Equal(3, summary.PartyCount)

	// Second call is served from cache, so the single .Once() expectation
	// above must hold.
	cached, err := suite.service.GetPartySummary(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.True(cached.TotalReceivable.Equal(summary.TotalReceivable))
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdateParty_MergesOnlyProvidedFields() {
	ctx := context.Background()
	partyID := uuid.NewString()
	existing := &domain.Party{
		PartyID:        partyID,
		UserID:         suite.userID,
		Name:           "Acme Traders",
		Phone:          "9876543210",
		PartyType:      domain.PartyTypeCustomer,
		OpeningBalance: decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(250),
		IsActive:       true,
	}
	suite.mockPartyRepo.On("FindPartyByID", ctx, partyID, suite.userID).Return(existing, nil).Once()

	newPhone := "9123456780"
	suite.mockPartyRepo.On("UpdateParty", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "Acme Traders" && p.Phone == newPhone && p.CurrentBalance.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateParty(ctx, partyID, dto.UpdatePartyRequest{Phone: &newPhone}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newPhone, updated.Phone)
	suite.Equal("Acme Traders", updated.Name)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestUpdateParty_BlankNameRejected() {
	ctx := context.Background()
	partyID := uuid.NewString()
	existing := &domain.Party{PartyID: partyID, UserID: suite.userID, Name: "Acme Traders"}
	suite.mockPartyRepo.On("FindPartyByID", ctx, partyID, suite.userID).Return(existing, nil).Once()

	blank := "  "
	updated, err := suite.service.UpdateParty(ctx, partyID, dto.UpdatePartyRequest{Name: &blank}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "UpdateParty")
}

func (suite *PartyServiceTestSuite) TestDeactivateParty_NotFound() {
	ctx := context.Background()
	partyID := uuid.NewString()
	suite.mockPartyRepo.On("DeactivateParty", ctx, partyID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.NewNotFoundError("party not found")).Once()

	err := suite.service.DeactivateParty(ctx, partyID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PartyServiceTestSuite) TestImportParties_MixedRows() {
	ctx := context.Background()
	csvData := strings.Join([]string{
		"Name,Phone,Email,Address,GSTIN,Party Type,Opening Balance",
		"Acme Traders,9876543210,accounts@acme.example,,,customer,1500.00",
		",,,,,vendor,",             // missing name
		"Bad Balance,,,,,both,abc", // unparseable opening balance
		"Shakti Supplies,,,,,vendor,-250",
	}, "\n")

	suite.expectSaveInTx(nil)

	result, err := suite.service.ImportParties(ctx, suite.userID, strings.NewReader(csvData))

	suite.Require().NoError(err)
	suite.Equal(2, result.Created)
	suite.Equal(2, result.Failed)
	suite.Require().Len(result.Errors, 2)
	// Row numbers are 1-based and count the header.
	suite.Equal(3, result.Errors[0].Row)
	suite.Contains(result.Errors[0].Message, "name is required")
	suite.Equal(4, result.Errors[1].Row)
	suite.Contains(result.Errors[1].Message, "invalid opening balance")
}

func (suite *PartyServiceTestSuite) TestImportParties_EmptyFile() {
	ctx := context.Background()
	csvData := "Name,Phone,Email,Address,GSTIN,Party Type,Opening Balance\n"

	result, err := suite.service.ImportParties(ctx, suite.userID, strings.NewReader(csvData))

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
