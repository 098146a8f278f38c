package services

import (
	"context"
	"io"
	"time"

	"github.com/billingup/billingup-backend/internal/dto"
)

// StatementSvcFacade defines operations for party ledger statements.
type StatementSvcFacade interface {
	// GetPartyStatement replays a party's transaction history into a dated
	// statement with running balances. A nil dateFrom/dateTo leaves that end
	// of the window open.
	GetPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) (*dto.StatementResponse, error)

	// ExportPartyStatement writes the statement as CSV to w.
	ExportPartyStatement(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time, w io.Writer) error
}
