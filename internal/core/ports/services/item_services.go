package services

import (
	"context"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/dto"
)

// ItemReaderSvc defines read operations for catalog items
type ItemReaderSvc interface {
	// GetItemByID retrieves a specific item by its ID.
	GetItemByID(ctx context.Context, itemID string, userID string) (*domain.Item, error)

	// ListItems retrieves a paginated list of items for a user.
	ListItems(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Item, error)
}

// ItemWriterSvc defines write operations for catalog items
type ItemWriterSvc interface {
	// CreateItem persists a new catalog item.
	CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error)

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, itemID string, userID string) error
}

// ItemSvcFacade combines all item-related service interfaces
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
