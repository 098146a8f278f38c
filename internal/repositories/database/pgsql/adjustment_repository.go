package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	"github.com/billingup/billingup-backend/internal/models"
	"github.com/billingup/billingup-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAdjustmentRepository struct {
	BaseRepository
	partyRepo portsrepo.PartyRepositoryTxSupport
}

// newPgxAdjustmentRepository creates a new repository for balance adjustments.
func newPgxAdjustmentRepository(pool *pgxpool.Pool, partyRepo portsrepo.PartyRepositoryTxSupport) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		partyRepo:      partyRepo,
	}
}

// Ensure PgxAdjustmentRepository implements portsrepo.AdjustmentRepositoryFacade
var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

// SaveAdjustment writes the adjustment row and the resulting party balances
// in one database transaction. The party row is locked first so a concurrent
// transaction write cannot interleave between the read and the overwrite.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.BalanceAdjustment) error {
	m := mapping.ToModelBalanceAdjustment(adjustment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	party, err := r.partyRepo.FindPartyByIDForUpdate(ctx, tx, adjustment.PartyID, adjustment.UserID)
	if err != nil {
		return err
	}

	opening := party.OpeningBalance
	current := party.CurrentBalance
	switch adjustment.AdjustmentType {
	case domain.AdjustOpeningBalance:
		// Rewriting the opening balance shifts the running balance by the
		// same delta, since every statement replays from the opening value.
		opening = adjustment.NewBalance
		current = current.Add(adjustment.AdjustmentAmount)
	case domain.AdjustCurrentBalance:
		current = adjustment.NewBalance
	default:
		return fmt.Errorf("unknown adjustment type %q", adjustment.AdjustmentType)
	}

	query := `
		INSERT INTO balance_adjustments (adjustment_id, user_id, party_id, adjustment_type, previous_balance, new_balance, adjustment_amount, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, query,
		m.AdjustmentID,
		m.UserID,
		m.PartyID,
		m.AdjustmentType,
		m.PreviousBalance,
		m.NewBalance,
		m.AdjustmentAmount,
		nullString(m.Reason),
		m.CreatedAt,
		m.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to save adjustment %s: %w", m.AdjustmentID, err)
	}

	if err := r.partyRepo.SetBalancesInTx(ctx, tx, adjustment.PartyID, adjustment.UserID, opening, current, adjustment.CreatedBy); err != nil {
		return fmt.Errorf("failed to apply adjustment to party %s: %w", adjustment.PartyID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAdjustmentRepository) ListAdjustmentsByParty(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error) {
	query := `
		SELECT adjustment_id, user_id, party_id, adjustment_type, previous_balance, new_balance, adjustment_amount, reason, created_at, created_by
		FROM balance_adjustments
		WHERE party_id = $1 AND user_id = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, partyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for party %s: %w", partyID, err)
	}
	defer rows.Close()

	var modelAdjs []models.BalanceAdjustment
	for rows.Next() {
		var m models.BalanceAdjustment
		var reason sql.NullString
		if err := rows.Scan(
			&m.AdjustmentID,
			&m.UserID,
			&m.PartyID,
			&m.AdjustmentType,
			&m.PreviousBalance,
			&m.NewBalance,
			&m.AdjustmentAmount,
			&reason,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		m.Reason = reason.String
		modelAdjs = append(modelAdjs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}

	return mapping.ToDomainBalanceAdjustmentSlice(modelAdjs), nil
}
