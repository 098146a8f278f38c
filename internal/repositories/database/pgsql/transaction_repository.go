package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	"github.com/billingup/billingup-backend/internal/models"
	"github.com/billingup/billingup-backend/internal/utils/mapping"
	"github.com/billingup/billingup-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, transaction_type, transaction_number, transaction_date, party_id, party_name, party_phone, subtotal, discount_amount, tax_amount, total_amount, payment_status, payment_mode, notes, items, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	partyRepo portsrepo.PartyRepositoryTxSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// It needs party transaction support so document writes and the balance
// movements they cause commit together.
func newPgxTransactionRepository(pool *pgxpool.Pool, partyRepo portsrepo.PartyRepositoryTxSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		partyRepo:      partyRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// scanTransaction reads one transaction row with its nullable columns.
// Legacy rows can hold NULL totals; they are coerced to zero so arithmetic
// downstream never sees an invalid decimal.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var number, partyID, partyName, partyPhone, paymentMode, notes sql.NullString
	var subtotal, discount, tax, total decimal.NullDecimal
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.TransactionType,
		&number,
		&m.TransactionDate,
		&partyID,
		&partyName,
		&partyPhone,
		&subtotal,
		&discount,
		&tax,
		&total,
		&m.PaymentStatus,
		&paymentMode,
		&notes,
		&m.Items,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	m.TransactionNumber = number.String
	m.PartyID = partyID.String
	m.PartyName = partyName.String
	m.PartyPhone = partyPhone.String
	m.PaymentMode = paymentMode.String
	m.Notes = notes.String
	m.Subtotal = subtotal.Decimal
	m.DiscountAmount = discount.Decimal
	m.TaxAmount = tax.Decimal
	m.TotalAmount = total.Decimal
	return m, nil
}

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.TransactionType,
		nullString(m.TransactionNumber),
		m.TransactionDate,
		nullString(m.PartyID),
		nullString(m.PartyName),
		nullString(m.PartyPhone),
		m.Subtotal,
		m.DiscountAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.PaymentStatus,
		nullString(m.PaymentMode),
		nullString(m.Notes),
		m.Items,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return fmt.Errorf("failed to encode transaction %s: %w", txn.TransactionID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransaction(ctx, tx, m); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	if txn.PartyID != "" && !balanceDelta.IsZero() {
		if err := r.partyRepo.ApplyBalanceDeltaInTx(ctx, tx, txn.PartyID, txn.UserID, balanceDelta, txn.CreatedBy); err != nil {
			return fmt.Errorf("failed to move balance for party %s: %w", txn.PartyID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if filter.PartyID != nil {
		args = append(args, *filter.PartyID)
		query += ` AND party_id = $` + strconv.Itoa(len(args))
	}
	if len(filter.Types) > 0 {
		typeStrs := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			typeStrs[i] = string(t)
		}
		args = append(args, typeStrs)
		query += ` AND transaction_type = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor concise and index friendly.
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	// Ordering must be stable for the cursor to work: date first, creation
	// time as the tie-breaker.
	args = append(args, fetchLimit)
	query += ` ORDER BY transaction_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

func (r *PgxTransactionRepository) ListTransactionsByParty(ctx context.Context, partyID string, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE party_id = $1 AND user_id = $2
	`
	args := []interface{}{partyID, userID}
	if dateFrom != nil {
		args = append(args, *dateFrom)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}
	// Statement replay needs ascending date order with a stable tie-breaker.
	query += ` ORDER BY transaction_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for party %s: %w", partyID, err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return fmt.Errorf("failed to encode transaction %s: %w", txn.TransactionID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET transaction_number = $1, transaction_date = $2, subtotal = $3, discount_amount = $4,
		    tax_amount = $5, total_amount = $6, payment_status = $7, payment_mode = $8,
		    notes = $9, items = $10, last_updated_at = $11, last_updated_by = $12
		WHERE transaction_id = $13 AND user_id = $14;
	`
	tag, err := tx.Exec(ctx, query,
		nullString(m.TransactionNumber),
		m.TransactionDate,
		m.Subtotal,
		m.DiscountAmount,
		m.TaxAmount,
		m.TotalAmount,
		m.PaymentStatus,
		nullString(m.PaymentMode),
		nullString(m.Notes),
		m.Items,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if txn.PartyID != "" && !balanceDelta.IsZero() {
		if err := r.partyRepo.ApplyBalanceDeltaInTx(ctx, tx, txn.PartyID, txn.UserID, balanceDelta, txn.LastUpdatedBy); err != nil {
			return fmt.Errorf("failed to reconcile balance for party %s: %w", txn.PartyID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, userID string, partyID string, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if partyID != "" && !balanceDelta.IsZero() {
		if err := r.partyRepo.ApplyBalanceDeltaInTx(ctx, tx, partyID, userID, balanceDelta, userID); err != nil {
			return fmt.Errorf("failed to reverse balance for party %s: %w", partyID, err)
		}
	}

	return r.Commit(ctx, tx)
}
