package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/utils/csvio"
)

// statementServiceImpl implements the StatementSvcFacade interface
type statementServiceImpl struct {
	BaseService
	partyRepo       portsrepo.PartyRepositoryReader
	transactionRepo portsrepo.TransactionRepositoryReader
}

// NewStatementService creates a new statement service
func NewStatementService(partyRepo portsrepo.PartyRepositoryReader, transactionRepo portsrepo.TransactionRepositoryReader) portssvc.StatementSvcFacade {
	return &statementServiceImpl{
		partyRepo:       partyRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure statementServiceImpl implements the StatementSvcFacade interface
var _ portssvc.StatementSvcFacade = (*statementServiceImpl)(nil)

func (s *statementServiceImpl) GetPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) (*dto.StatementResponse, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party for statement",
				slog.String("party_id", partyID))
		}
		return nil, err
	}

	txns, err := s.transactionRepo.ListTransactionsByParty(ctx, partyID, userID, dateFrom, dateTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for statement",
			slog.String("party_id", partyID))
		return nil, err
	}

	stmt := ledger.BuildStatement(party.OpeningBalance, txns)
	if stmt.SkippedUnknown > 0 {
		s.GetLogger(ctx).Warn("Statement skipped transactions of unknown type",
			slog.String("party_id", partyID),
			slog.Int("skipped", stmt.SkippedUnknown))
	}

	consistent := stmt.IsConsistentWith(party.CurrentBalance)
	// Drift only matters when the statement covers the full history; a
	// windowed statement legitimately disagrees with the stored balance.
	fullHistory := dateFrom == nil && dateTo == nil
	if fullHistory && !consistent {
		s.GetLogger(ctx).Warn("Statement closing balance disagrees with stored party balance",
			slog.String("party_id", partyID),
			slog.String("replayed", stmt.ClosingBalance.String()),
			slog.String("stored", party.CurrentBalance.String()))
	}

	response := dto.ToStatementResponse(party, stmt, consistent)
	return &response, nil
}

func (s *statementServiceImpl) ExportPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time, w io.Writer) error {
	statement, err := s.GetPartyStatement(ctx, partyID, userID, dateFrom, dateTo)
	if err != nil {
		return err
	}

	rows := make([]csvio.StatementRow, 0, len(statement.Lines)+1)
	rows = append(rows, csvio.StatementRow{
		Notes:   "Opening Balance",
		Balance: statement.OpeningBalance.StringFixed(2),
	})
	for _, line := range statement.Lines {
		row := csvio.StatementRow{
			Date:              line.Transaction.TransactionDate.Format("2006-01-02"),
			TransactionNumber: line.Transaction.TransactionNumber,
			TransactionType:   string(line.Transaction.Type),
			Notes:             line.Transaction.Notes,
			Balance:           line.RunningBalance.StringFixed(2),
		}
		switch {
		case line.Change.IsPositive():
			row.Credit = line.Change.StringFixed(2)
		case line.Change.IsNegative():
			row.Debit = line.Change.Neg().StringFixed(2)
		}
		rows = append(rows, row)
	}

	if err := csvio.Write(w, rows); err != nil {
		s.LogError(ctx, err, "Failed to export statement as CSV",
			slog.String("party_id", partyID))
		return apperrors.NewInternalServerError("failed to export statement")
	}
	return nil
}
