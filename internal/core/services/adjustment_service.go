package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/google/uuid"
)

// adjustmentServiceImpl implements the AdjustmentSvcFacade interface
type adjustmentServiceImpl struct {
	BaseService
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	partyRepo      portsrepo.PartyRepositoryReader
	cache          *cache.Store
}

// NewAdjustmentService creates a new balance adjustment service
func NewAdjustmentService(repo portsrepo.AdjustmentRepositoryFacade, partyRepo portsrepo.PartyRepositoryReader, cacheStore *cache.Store) portssvc.AdjustmentSvcFacade {
	return &adjustmentServiceImpl{
		adjustmentRepo: repo,
		partyRepo:      partyRepo,
		cache:          cacheStore,
	}
}

// Ensure adjustmentServiceImpl implements the AdjustmentSvcFacade interface
var _ portssvc.AdjustmentSvcFacade = (*adjustmentServiceImpl)(nil)

func (s *adjustmentServiceImpl) CreateAdjustment(ctx context.Context, partyID string, req dto.CreateAdjustmentRequest, userID string) (*domain.BalanceAdjustment, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party for adjustment",
				slog.String("party_id", partyID))
		}
		return nil, err
	}

	previous := party.CurrentBalance
	if req.Type == domain.AdjustOpeningBalance {
		previous = party.OpeningBalance
	}

	adjustment := domain.BalanceAdjustment{
		AdjustmentID:    uuid.NewString(),
		UserID:          userID,
		PartyID:         partyID,
		AdjustmentType:  req.Type,
		PreviousBalance: previous,
		NewBalance:      req.NewBalance,
		// The recorded amount is the delta, not the absolute value, so the
		// audit trail replays correctly.
		AdjustmentAmount: req.NewBalance.Sub(previous),
		Reason:           req.Reason,
		CreatedAt:        time.Now(),
		CreatedBy:        userID,
	}

	if err := s.adjustmentRepo.SaveAdjustment(ctx, adjustment); err != nil {
		s.LogError(ctx, err, "Failed to save balance adjustment",
			slog.String("party_id", partyID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Balance adjustment recorded",
		slog.String("party_id", partyID),
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("type", string(req.Type)))
	return &adjustment, nil
}

func (s *adjustmentServiceImpl) ListAdjustments(ctx context.Context, partyID string, userID string) ([]domain.BalanceAdjustment, error) {
	// Confirm the party exists and belongs to the caller before exposing
	// its history.
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID, userID); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListAdjustmentsByParty(ctx, partyID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balance adjustments",
			slog.String("party_id", partyID))
		return nil, err
	}
	return adjustments, nil
}
