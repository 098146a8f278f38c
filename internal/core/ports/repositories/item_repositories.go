package repositories

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
)

// ItemRepositoryReader defines read operations for catalog items
type ItemRepositoryReader interface {
	// FindItemByID retrieves an item by its ID, scoped to the owning user.
	// Returns apperrors.ErrNotFound if it does not exist or is soft-deleted.
	FindItemByID(ctx context.Context, itemID string, userID string) (*domain.Item, error)

	// ListItems retrieves items for a user. Inactive items are included only
	// when includeInactive is true.
	ListItems(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Item, error)
}

// ItemRepositoryWriter defines write operations for catalog items
type ItemRepositoryWriter interface {
	// SaveItem persists a new item. Returns apperrors.ErrDuplicate if an
	// item with the same name already exists for the user.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, item domain.Item) error

	// DeactivateItem soft-deletes an item. Returns apperrors.ErrNotFound if
	// the item does not exist or is already inactive.
	DeactivateItem(ctx context.Context, itemID string, userID string, deletedAt time.Time) error
}

// ItemRepositoryFacade combines all item repository capabilities
type ItemRepositoryFacade interface {
	ItemRepositoryReader
	ItemRepositoryWriter
}
