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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByParty(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, partyID, userID, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, userID string, partyID string, balanceDelta decimal.Decimal) error {
	args := m.Called(ctx, transactionID, userID, partyID, balanceDelta)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockPartyRepo *MockPartyRepository
	service       portssvc.TransactionSvcFacade
	userID        string
	party         *domain.Party
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockPartyRepo, cache.New(time.Minute))
	suite.userID = uuid.NewString()
	suite.party = &domain.Party{
		PartyID:        uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Acme Traders",
		Phone:          "9876543210",
		PartyType:      domain.PartyTypeCustomer,
		CurrentBalance: decimal.NewFromInt(100),
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaleInvoiceCreditsParty() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.SaleInvoice,
		TransactionDate: time.Now(),
		PartyID:         suite.party.PartyID,
		Subtotal:        decimal.NewFromInt(1000),
		DiscountAmount:  decimal.NewFromInt(100),
		TaxAmount:       decimal.NewFromInt(180),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()

	// total = 1000 - 100 + 180; a sale invoice credits the party ledger.
	expectedDelta := decimal.NewFromInt(1080)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TotalAmount.Equal(expectedDelta) &&
			txn.PartyName == suite.party.Name &&
			txn.PaymentStatus == domain.PaymentStatusUnpaid
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(expectedDelta)
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.True(txn.TotalAmount.Equal(expectedDelta))
	suite.Equal(suite.party.PartyID, txn.PartyID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PaymentOutDebitsParty() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.PaymentOut,
		TransactionDate: time.Now(),
		PartyID:         suite.party.PartyID,
		Subtotal:        decimal.NewFromInt(250),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-250))
	})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_EstimateDoesNotMoveBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Estimate,
		TransactionDate: time.Now(),
		PartyID:         suite.party.PartyID,
		Subtotal:        decimal.NewFromInt(999),
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.IsZero()
	})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownTypeRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.TransactionType("made_up_type"),
		TransactionDate: time.Now(),
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DiscountExceedsTotalRejected() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.SaleInvoice,
		TransactionDate: time.Now(),
		Subtotal:        decimal.NewFromInt(100),
		DiscountAmount:  decimal.NewFromInt(150),
		TaxAmount:       decimal.NewFromInt(10),
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "discount exceeds")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ItemValidation() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.SaleInvoice,
		TransactionDate: time.Now(),
		Items: []dto.TransactionItemRequest{
			{Name: "Widget", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10)},
		},
	}

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "quantity must be positive")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LineTotalsIncludeTax() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.SaleInvoice,
		TransactionDate: time.Now(),
		Subtotal:        decimal.NewFromInt(200),
		Items: []dto.TransactionItemRequest{
			{Name: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(18)},
		},
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("decimal.Decimal")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(txn.Items, 1)
	// 2 * 100 * 1.18
	suite.True(txn.Items[0].LineTotal.Equal(decimal.NewFromInt(236)))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReconcilesBalanceDelta() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:   transactionID,
		UserID:          suite.userID,
		TransactionType: domain.SaleInvoice,
		TransactionDate: time.Now().AddDate(0, 0, -1),
		PartyID:         suite.party.PartyID,
		TotalAmount:     decimal.NewFromInt(500),
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID, suite.userID).Return(existing, nil).Once()

	req := dto.UpdateTransactionRequest{
		TransactionDate: time.Now(),
		Subtotal:        decimal.NewFromInt(800),
	}

	// New signed amount 800 minus old signed amount 500.
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == transactionID && txn.TotalAmount.Equal(decimal.NewFromInt(800))
	}), mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, transactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(800)))
	// Type and party link are immutable.
	suite.Equal(domain.SaleInvoice, updated.TransactionType)
	suite.Equal(suite.party.PartyID, updated.PartyID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesBalance() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:   transactionID,
		UserID:          suite.userID,
		TransactionType: domain.PaymentIn,
		PartyID:         suite.party.PartyID,
		TotalAmount:     decimal.NewFromInt(200),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID, suite.userID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, transactionID, suite.userID, suite.party.PartyID, mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-200))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NoPartyNoReversal() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:   transactionID,
		UserID:          suite.userID,
		TransactionType: domain.Expense,
		TotalAmount:     decimal.NewFromInt(75),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID, suite.userID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, transactionID, suite.userID, "", mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.IsZero()
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_RejectsUnknownTypeFilter() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Types: []string{"sale_invoice", "bogus"}}

	resp, err := suite.service.ListTransactions(ctx, suite.userID, params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ClampsPageSize() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 5000}

	token := "next-page-token"
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, mock.AnythingOfType("repositories.TransactionListFilter"), 100, (*string)(nil)).
		Return([]domain.Transaction{}, token, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.userID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
