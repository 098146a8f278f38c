package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/billingup/billingup-backend/internal/utils/csvio"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const partySummaryCacheKey = "summary"

// partyServiceImpl implements the PartySvcFacade interface
type partyServiceImpl struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
	cache     *cache.Store
}

// NewPartyService creates a new party service
func NewPartyService(repo portsrepo.PartyRepositoryFacade, cacheStore *cache.Store) portssvc.PartySvcFacade {
	return &partyServiceImpl{
		partyRepo: repo,
		cache:     cacheStore,
	}
}

// Ensure partyServiceImpl implements the PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyServiceImpl)(nil)

func (s *partyServiceImpl) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	now := time.Now()
	party := domain.Party{
		PartyID:        uuid.NewString(),
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		GSTIN:          req.GSTIN,
		PartyType:      req.Type,
		OpeningBalance: req.OpeningBalance,
		// A new party starts with its running balance equal to the opening
		// balance; transactions move it from there.
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if party.Name == "" {
		return nil, apperrors.NewBadRequestError("party name is required")
	}

	tx, err := s.partyRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for party creation")
		return nil, err
	}
	defer s.partyRepo.Rollback(ctx, tx)

	if err := s.partyRepo.SavePartyInTx(ctx, tx, party); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save party",
				slog.String("party_id", party.PartyID))
		}
		return nil, err
	}
	if err := s.partyRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit party creation",
			slog.String("party_id", party.PartyID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Party created successfully",
		slog.String("party_id", party.PartyID))
	return &party, nil
}

func (s *partyServiceImpl) GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party by ID",
				slog.String("party_id", partyID))
		}
		return nil, err
	}
	return party, nil
}

func (s *partyServiceImpl) ListParties(ctx context.Context, userID string, includeInactive bool, limit int, offset int) ([]domain.Party, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	parties, err := s.partyRepo.ListParties(ctx, userID, includeInactive, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties")
		return nil, err
	}
	return parties, nil
}

func (s *partyServiceImpl) GetPartySummary(ctx context.Context, userID string) (ledger.BookSummary, error) {
	if cached, found := s.cache.Get(cache.Parties, userID, partySummaryCacheKey); found {
		if summary, ok := cached.(ledger.BookSummary); ok {
			return summary, nil
		}
	}

	parties, err := s.partyRepo.ListActiveParties(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties for summary")
		return ledger.BookSummary{}, err
	}
	summary := ledger.SummarizeParties(parties)
	s.cache.Set(cache.Parties, userID, partySummaryCacheKey, summary)
	return summary, nil
}

func (s *partyServiceImpl) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, apperrors.NewBadRequestError("party name cannot be empty")
		}
		party.Name = trimmed
	}
	if req.Type != nil {
		party.PartyType = *req.Type
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.GSTIN != nil {
		party.GSTIN = *req.GSTIN
	}
	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party",
			slog.String("party_id", partyID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Party updated successfully",
		slog.String("party_id", partyID))
	return party, nil
}

func (s *partyServiceImpl) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	if err := s.partyRepo.DeactivateParty(ctx, partyID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate party",
				slog.String("party_id", partyID))
		}
		return err
	}

	s.cache.InvalidateAll(userID, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Party deactivated successfully",
		slog.String("party_id", partyID))
	return nil
}

func (s *partyServiceImpl) ImportParties(ctx context.Context, userID string, r io.Reader) (*dto.ImportPartiesResult, error) {
	rows, err := csvio.Read[csvio.PartyImportRow](r)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("failed to parse CSV: %v", err))
	}
	if len(rows) == 0 {
		return nil, apperrors.NewBadRequestError("CSV contains no data rows")
	}

	result := &dto.ImportPartiesResult{}
	for i, row := range rows {
		// Row numbering is 1-based and counts the header line.
		rowNum := i + 2
		req, err := partyRequestFromImportRow(row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if _, err := s.CreateParty(ctx, req, userID); err != nil {
			result.Failed++
			message := "failed to create party"
			var appErr *apperrors.AppError
			if errors.Is(err, apperrors.ErrDuplicate) {
				message = fmt.Sprintf("party %q already exists", req.Name)
			} else if errors.As(err, &appErr) {
				message = appErr.Message
			}
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: message})
			continue
		}
		result.Created++
	}

	s.LogInfo(ctx, "Party import finished",
		slog.Int("created", result.Created),
		slog.Int("failed", result.Failed))
	return result, nil
}

// partyRequestFromImportRow validates one CSV row and converts it into a
// create request. The party type defaults to customer when the column is
// blank.
func partyRequestFromImportRow(row csvio.PartyImportRow) (dto.CreatePartyRequest, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return dto.CreatePartyRequest{}, errors.New("name is required")
	}

	partyType := domain.PartyTypeCustomer
	if typeStr := strings.ToLower(strings.TrimSpace(row.PartyType)); typeStr != "" {
		switch domain.PartyType(typeStr) {
		case domain.PartyTypeCustomer, domain.PartyTypeVendor, domain.PartyTypeBoth:
			partyType = domain.PartyType(typeStr)
		default:
			return dto.CreatePartyRequest{}, fmt.Errorf("invalid party type %q", row.PartyType)
		}
	}

	openingBalance := decimal.Zero
	if balanceStr := strings.TrimSpace(row.OpeningBalance); balanceStr != "" {
		parsed, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return dto.CreatePartyRequest{}, fmt.Errorf("invalid opening balance %q", row.OpeningBalance)
		}
		openingBalance = parsed
	}

	return dto.CreatePartyRequest{
		Name:           name,
		Type:           partyType,
		Phone:          strings.TrimSpace(row.Phone),
		Email:          strings.TrimSpace(row.Email),
		Address:        strings.TrimSpace(row.Address),
		GSTIN:          strings.TrimSpace(row.GSTIN),
		OpeningBalance: openingBalance,
	}, nil
}
