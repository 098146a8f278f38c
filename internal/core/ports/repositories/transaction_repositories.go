package repositories

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionListFilter narrows ListTransactions results. Nil fields are
// ignored.
type TransactionListFilter struct {
	PartyID  *string
	Types    []domain.TransactionType
	DateFrom *time.Time
	DateTo   *time.Time
}

// TransactionRepositoryReader defines read operations for transactions
type TransactionRepositoryReader interface {
	// FindTransactionByID retrieves a transaction by its ID, scoped to the
	// owning user. Returns apperrors.ErrNotFound if it does not exist.
	FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions ordered by transaction date
	// descending using token pagination. nextToken is nil for the first page.
	// Returns the page, the token for the next page (nil when exhausted).
	ListTransactions(ctx context.Context, userID string, filter TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByParty retrieves the complete set of transactions for
	// a party ordered by transaction date ascending. Statement replay needs
	// the full history, so there is no pagination.
	ListTransactionsByParty(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.Transaction, error)
}

// TransactionRepositoryWriter defines write operations for transactions.
// Every write that moves a party balance does so in the same database
// transaction as the row it writes.
type TransactionRepositoryWriter interface {
	// SaveTransaction persists a new transaction and applies balanceDelta to
	// the linked party's current balance atomically. A zero delta with no
	// party link skips the party update.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// UpdateTransaction replaces a transaction's mutable fields and applies
	// balanceDelta (new signed amount minus old) to the linked party.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// DeleteTransaction removes a transaction and applies balanceDelta (the
	// negated signed amount) to the linked party atomically. An empty partyID
	// means the transaction had no party link and no balance to reverse.
	DeleteTransaction(ctx context.Context, transactionID string, userID string, partyID string, balanceDelta decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction repository capabilities
type TransactionRepositoryFacade interface {
	TransactionRepositoryReader
	TransactionRepositoryWriter
	TransactionManager
}
