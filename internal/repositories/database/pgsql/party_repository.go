package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	"github.com/billingup/billingup-backend/internal/models"
	"github.com/billingup/billingup-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const partyColumns = `party_id, user_id, name, phone, email, address, gstin, party_type, opening_balance, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// scanParty reads one party row with its nullable columns.
func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	var phone, email, address, gstin sql.NullString
	err := row.Scan(
		&m.PartyID,
		&m.UserID,
		&m.Name,
		&phone,
		&email,
		&address,
		&gstin,
		&m.PartyType,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Party{}, err
	}
	m.Phone = phone.String
	m.Email = email.String
	m.Address = address.String
	m.GSTIN = gstin.String
	return m, nil
}

func (r *PgxPartyRepository) SavePartyInTx(ctx context.Context, tx pgx.Tx, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.PartyID,
		m.UserID,
		m.Name,
		nullString(m.Phone),
		nullString(m.Email),
		nullString(m.Address),
		nullString(m.GSTIN),
		m.PartyType,
		m.OpeningBalance,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: party %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE party_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	m, err := scanParty(r.Pool.QueryRow(ctx, query, partyID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}

	party := mapping.ToDomainParty(m)
	return &party, nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE user_id = $1
	`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	modelParties := make([]models.Party, 0, limit)
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		modelParties = append(modelParties, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	return mapping.ToDomainPartySlice(modelParties), nil
}

func (r *PgxPartyRepository) ListActiveParties(ctx context.Context, userID string) ([]domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active parties: %w", err)
	}
	defer rows.Close()

	var modelParties []models.Party
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		modelParties = append(modelParties, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	return mapping.ToDomainPartySlice(modelParties), nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		UPDATE parties
		SET name = $1, phone = $2, email = $3, address = $4, gstin = $5, party_type = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE party_id = $9 AND user_id = $10 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		nullString(m.Phone),
		nullString(m.Email),
		nullString(m.Address),
		nullString(m.GSTIN),
		m.PartyType,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.PartyID,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: party %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update party %s: %w", m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, deletedAt time.Time) error {
	query := `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE party_id = $3 AND user_id = $4 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, userID, partyID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the party never existed or it is already inactive; both
		// read as not found to the caller.
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string, userID string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE party_id = $1 AND user_id = $2 AND is_active = TRUE
		FOR UPDATE;
	`
	m, err := scanParty(tx.QueryRow(ctx, query, partyID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock party %s: %w", partyID, err)
	}

	party := mapping.ToDomainParty(m)
	return &party, nil
}

func (r *PgxPartyRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, delta decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE parties
		SET current_balance = current_balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE party_id = $4 AND user_id = $5 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, query, delta, time.Now(), updatedBy, partyID, userID)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta to party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) SetBalancesInTx(ctx context.Context, tx pgx.Tx, partyID string, userID string, opening decimal.Decimal, current decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE parties
		SET opening_balance = $1, current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE party_id = $5 AND user_id = $6 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, query, opening, current, time.Now(), updatedBy, partyID, userID)
	if err != nil {
		return fmt.Errorf("failed to set balances for party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
