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
)

const itemColumns = `item_id, user_id, name, description, sale_price, purchase_price, stock_quantity, unit, hsn_code, gst_rate, category, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates a new repository for catalog items.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxItemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	var description, unit, hsnCode, category sql.NullString
	err := row.Scan(
		&m.ItemID,
		&m.UserID,
		&m.Name,
		&description,
		&m.SalePrice,
		&m.PurchasePrice,
		&m.StockQuantity,
		&unit,
		&hsnCode,
		&m.GSTRate,
		&category,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Item{}, err
	}
	m.Description = description.String
	m.Unit = unit.String
	m.HSNCode = hsnCode.String
	m.Category = category.String
	return m, nil
}

func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.UserID,
		m.Name,
		nullString(m.Description),
		m.SalePrice,
		m.PurchasePrice,
		m.StockQuantity,
		nullString(m.Unit),
		nullString(m.HSNCode),
		m.GSTRate,
		nullString(m.Category),
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string, userID string) (*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE item_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}

	item := mapping.ToDomainItem(m)
	return &item, nil
}

func (r *PgxItemRepository) ListItems(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE user_id = $1
	`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	modelItems := make([]models.Item, 0, limit)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		modelItems = append(modelItems, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return mapping.ToDomainItemSlice(modelItems), nil
}

func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		UPDATE items
		SET name = $1, description = $2, sale_price = $3, purchase_price = $4, stock_quantity = $5,
		    unit = $6, hsn_code = $7, gst_rate = $8, category = $9, last_updated_at = $10, last_updated_by = $11
		WHERE item_id = $12 AND user_id = $13 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		nullString(m.Description),
		m.SalePrice,
		m.PurchasePrice,
		m.StockQuantity,
		nullString(m.Unit),
		nullString(m.HSNCode),
		m.GSTRate,
		nullString(m.Category),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ItemID,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update item %s: %w", m.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxItemRepository) DeactivateItem(ctx context.Context, itemID string, userID string, deletedAt time.Time) error {
	query := `
		UPDATE items
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE item_id = $3 AND user_id = $4 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, userID, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
