package repositories

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyRepositoryReader defines read operations for parties
type PartyRepositoryReader interface {
	// FindPartyByID retrieves a party by its ID, scoped to the owning user.
	// Returns apperrors.ErrNotFound if the party does not exist or is soft-deleted.
	FindPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error)

	// ListParties retrieves parties for a user with offset pagination.
	// Inactive parties are included only when includeInactive is true.
	ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error)

	// ListActiveParties retrieves every active party for a user without pagination.
	// Used by summary and reporting flows that need the complete balance set.
	ListActiveParties(ctx context.Context, userID string) ([]domain.Party, error)
}

// PartyRepositoryWriter defines write operations for parties
type PartyRepositoryWriter interface {
	// SavePartyInTx persists a new party within an existing transaction.
	// Returns apperrors.ErrDuplicate if a party with the same name already
	// exists for the user.
	SavePartyInTx(ctx context.Context, tx pgx.Tx, party domain.Party) error

	// UpdateParty updates mutable party details. Balance columns are not
	// touched here; they change only through transactions and adjustments.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty soft-deletes a party. Returns apperrors.ErrNotFound if
	// the party does not exist or is already inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string, deletedAt time.Time) error
}

// PartyRepositoryTxSupport defines party operations that participate in a
// caller-managed transaction, used to keep balance mutations atomic with the
// transaction or adjustment rows that cause them.
type PartyRepositoryTxSupport interface {
	// FindPartyByIDForUpdate retrieves a party with a row-level lock so the
	// balance can be read and updated without racing concurrent writers.
	FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string, userID string) (*domain.Party, error)

	// ApplyBalanceDeltaInTx adds delta to a party's current balance.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, delta decimal.Decimal, updatedBy string) error

	// SetBalancesInTx overwrites a party's opening and current balances.
	// Used by balance adjustments, which record the change separately.
	SetBalancesInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, opening decimal.Decimal, current decimal.Decimal, updatedBy string) error
}

// PartyRepositoryFacade combines all party repository capabilities
type PartyRepositoryFacade interface {
	PartyRepositoryReader
	PartyRepositoryWriter
	PartyRepositoryTxSupport
	TransactionManager
}
