package services

import (
	"context"
	"io"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	"github.com/billingup/billingup-backend/internal/dto"
)

// PartyReaderSvc defines read operations for party data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a specific party by its ID.
	GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties for a user.
	ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error)

	// GetPartySummary aggregates receivable and payable totals across all
	// active parties for a user.
	GetPartySummary(ctx context.Context, userID string) (ledger.BookSummary, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new party.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error)

	// UpdateParty updates an existing party's details.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeactivateParty marks a party as inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string) error
}

// PartyImportSvc defines bulk import operations for party data
type PartyImportSvc interface {
	// ImportParties parses CSV rows from r and creates the valid ones,
	// reporting per-row failures without aborting the batch.
	ImportParties(ctx context.Context, userID string, r io.Reader) (*dto.ImportPartiesResult, error)
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
	PartyImportSvc
}
