package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/google/uuid"
)

// itemServiceImpl implements the ItemSvcFacade interface
type itemServiceImpl struct {
	BaseService
	itemRepo portsrepo.ItemRepositoryFacade
	cache    *cache.Store
}

// NewItemService creates a new item service
func NewItemService(repo portsrepo.ItemRepositoryFacade, cacheStore *cache.Store) portssvc.ItemSvcFacade {
	return &itemServiceImpl{
		itemRepo: repo,
		cache:    cacheStore,
	}
}

// Ensure itemServiceImpl implements the ItemSvcFacade interface
var _ portssvc.ItemSvcFacade = (*itemServiceImpl)(nil)

func (s *itemServiceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("item name is required")
	}
	if req.SalePrice.IsNegative() || req.PurchasePrice.IsNegative() {
		return nil, apperrors.NewBadRequestError("prices cannot be negative")
	}
	if req.GSTRate.IsNegative() || req.GSTRate.GreaterThan(maxTaxRate) {
		return nil, apperrors.NewBadRequestError("GST rate must be between 0 and 28")
	}

	now := time.Now()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Description:   req.Description,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
		Unit:          req.Unit,
		HSNCode:       req.HSNCode,
		GSTRate:       req.GSTRate,
		Category:      req.Category,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save item",
				slog.String("item_id", item.ItemID))
		}
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Items, cache.Reports)
	s.LogInfo(ctx, "Item created successfully",
		slog.String("item_id", item.ItemID))
	return &item, nil
}

func (s *itemServiceImpl) GetItemByID(ctx context.Context, itemID string, userID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find item by ID",
				slog.String("item_id", itemID))
		}
		return nil, err
	}
	return item, nil
}

func (s *itemServiceImpl) ListItems(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.itemRepo.ListItems(ctx, userID, includeInactive, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items")
		return nil, err
	}
	return items, nil
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, apperrors.NewBadRequestError("item name cannot be empty")
		}
		item.Name = trimmed
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, apperrors.NewBadRequestError("sale price cannot be negative")
		}
		item.SalePrice = *req.SalePrice
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, apperrors.NewBadRequestError("purchase price cannot be negative")
		}
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.StockQuantity != nil {
		item.StockQuantity = *req.StockQuantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.HSNCode != nil {
		item.HSNCode = *req.HSNCode
	}
	if req.GSTRate != nil {
		if req.GSTRate.IsNegative() || req.GSTRate.GreaterThan(maxTaxRate) {
			return nil, apperrors.NewBadRequestError("GST rate must be between 0 and 28")
		}
		item.GSTRate = *req.GSTRate
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	item.LastUpdatedAt = time.Now()
	item.LastUpdatedBy = userID

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item",
			slog.String("item_id", itemID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Items, cache.Reports)
	s.LogInfo(ctx, "Item updated successfully",
		slog.String("item_id", itemID))
	return item, nil
}

func (s *itemServiceImpl) DeactivateItem(ctx context.Context, itemID string, userID string) error {
	if err := s.itemRepo.DeactivateItem(ctx, itemID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate item",
				slog.String("item_id", itemID))
		}
		return err
	}

	s.cache.InvalidateAll(userID, cache.Items, cache.Reports)
	s.LogInfo(ctx, "Item deactivated successfully",
		slog.String("item_id", itemID))
	return nil
}
