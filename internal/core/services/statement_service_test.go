package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type StatementServiceTestSuite struct {
	suite.Suite
	mockPartyRepo *MockPartyRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.StatementSvcFacade
	userID        string
	party         *domain.Party
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewStatementService(suite.mockPartyRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
	suite.party = &domain.Party{
		PartyID:        uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Acme Traders",
		PartyType:      domain.PartyTypeCustomer,
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1300),
		IsActive:       true,
	}
}

func (suite *StatementServiceTestSuite) partyHistory() []domain.Transaction {
	baseDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.Transaction{
		{
			TransactionID:     uuid.NewString(),
			UserID:            suite.userID,
			TransactionType:   domain.SaleInvoice,
			TransactionNumber: "INV-001",
			TransactionDate:   baseDate,
			PartyID:           suite.party.PartyID,
			TotalAmount:       decimal.NewFromInt(500),
		},
		{
			TransactionID:   uuid.NewString(),
			UserID:          suite.userID,
			TransactionType: domain.PaymentOut,
			TransactionDate: baseDate.AddDate(0, 0, 5),
			PartyID:         suite.party.PartyID,
			TotalAmount:     decimal.NewFromInt(200),
		},
		{
			// A document-only record: it appears in listings but must not
			// move the running balance.
			TransactionID:   uuid.NewString(),
			UserID:          suite.userID,
			TransactionType: domain.Estimate,
			TransactionDate: baseDate.AddDate(0, 0, 7),
			PartyID:         suite.party.PartyID,
			TotalAmount:     decimal.NewFromInt(9999),
		},
	}
}

// --- Test Cases ---

func (suite *StatementServiceTestSuite) TestGetPartyStatement_ReplaysRunningBalances() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByParty", ctx, suite.party.PartyID, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(suite.partyHistory(), nil).Once()

	stmt, err := suite.service.GetPartyStatement(ctx, suite.party.PartyID, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(stmt)
	suite.True(stmt.OpeningBalance.Equal(decimal.NewFromInt(1000)))
	suite.Require().Len(stmt.Lines, 3)
	suite.True(stmt.Lines[0].Change.Equal(decimal.NewFromInt(500)))
	suite.True(stmt.Lines[0].RunningBalance.Equal(decimal.NewFromInt(1500)))
	suite.True(stmt.Lines[1].Change.Equal(decimal.NewFromInt(-200)))
	suite.True(stmt.Lines[1].RunningBalance.Equal(decimal.NewFromInt(1300)))
	suite.True(stmt.Lines[2].Change.IsZero())
	suite.True(stmt.Lines[2].RunningBalance.Equal(decimal.NewFromInt(1300)))
	suite.True(stmt.ClosingBalance.Equal(decimal.NewFromInt(1300)))
	suite.Zero(stmt.SkippedUnknown)
	suite.True(stmt.ConsistentWithStored)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetPartyStatement_FlagsDrift() {
	ctx := context.Background()
	drifted := *suite.party
	drifted.CurrentBalance = decimal.NewFromInt(9000)

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(&drifted, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByParty", ctx, suite.party.PartyID, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(suite.partyHistory(), nil).Once()

	stmt, err := suite.service.GetPartyStatement(ctx, suite.party.PartyID, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.False(stmt.ConsistentWithStored)
}

func (suite *StatementServiceTestSuite) TestGetPartyStatement_CountsUnknownTypes() {
	ctx := context.Background()
	history := suite.partyHistory()
	history = append(history, domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		TransactionType: domain.TransactionType("legacy_type"),
		TransactionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PartyID:         suite.party.PartyID,
		TotalAmount:     decimal.NewFromInt(50),
	})

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByParty", ctx, suite.party.PartyID, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(history, nil).Once()

	stmt, err := suite.service.GetPartyStatement(ctx, suite.party.PartyID, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(1, stmt.SkippedUnknown)
	// The unknown row is dropped, not treated as a zero movement.
	suite.Len(stmt.Lines, 3)
	suite.True(stmt.ClosingBalance.Equal(decimal.NewFromInt(1300)))
}

func (suite *StatementServiceTestSuite) TestGetPartyStatement_PartyNotFound() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	stmt, err := suite.service.GetPartyStatement(ctx, suite.party.PartyID, suite.userID, nil, nil)

	suite.Require().Error(err)
	suite.Nil(stmt)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByParty")
}

func (suite *StatementServiceTestSuite) TestExportPartyStatement_WritesCSV() {
	ctx := context.Background()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID, suite.userID).Return(suite.party, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByParty", ctx, suite.party.PartyID, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(suite.partyHistory(), nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportPartyStatement(ctx, suite.party.PartyID, suite.userID, nil, nil, &buf)

	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header, opening balance row, and one row per statement line.
	suite.Require().Len(lines, 5)
	suite.Contains(lines[0], "Date")
	suite.Contains(lines[0], "Credit")
	suite.Contains(lines[0], "Debit")
	suite.Contains(lines[1], "Opening Balance")
	suite.Contains(lines[1], "1000.00")
	suite.Contains(lines[2], "INV-001")
	suite.Contains(lines[2], "500.00")
	suite.Contains(lines[2], "1500.00")
	suite.Contains(lines[3], "200.00")
	suite.Contains(lines[3], "1300.00")
	suite.Contains(lines[4], "estimate")
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
