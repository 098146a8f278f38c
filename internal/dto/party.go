package dto

import (
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a new party.
type CreatePartyRequest struct {
	Name           string           `json:"name" binding:"required"`
	Type           domain.PartyType `json:"type" binding:"required,oneof=customer vendor both"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email" binding:"omitempty,email"`
	Address        string           `json:"address"`
	GSTIN          string           `json:"gstin"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePartyRequest struct {
	Name    *string           `json:"name"`
	Type    *domain.PartyType `json:"type" binding:"omitempty,oneof=customer vendor both"`
	Phone   *string           `json:"phone"`
	Email   *string           `json:"email" binding:"omitempty,email"`
	Address *string           `json:"address"`
	GSTIN   *string           `json:"gstin"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID        string           `json:"partyID"`
	Name           string           `json:"name"`
	Type           domain.PartyType `json:"type"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email"`
	Address        string           `json:"address"`
	GSTIN          string           `json:"gstin"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	IsActive       bool             `json:"isActive"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy  string           `json:"lastUpdatedBy"`
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	Limit           int  `form:"limit,default=20"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListPartiesResponse wraps the list of parties.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}

// PartySummaryResponse defines the aggregate receivable/payable totals.
type PartySummaryResponse struct {
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	TotalPayable    decimal.Decimal `json:"totalPayable"`
	PartyCount      int             `json:"partyCount"`
}

// ImportRowError describes why a single CSV row was rejected during import.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportPartiesResult reports the outcome of a bulk party import.
type ImportPartiesResult struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:        p.PartyID,
		Name:           p.Name,
		Type:           p.PartyType,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		GSTIN:          p.GSTIN,
		OpeningBalance: p.OpeningBalance,
		CurrentBalance: p.CurrentBalance,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToListPartiesResponse converts a slice of domain.Party to ListPartiesResponse DTO
func ToListPartiesResponse(parties []domain.Party) ListPartiesResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p)
	}
	return ListPartiesResponse{Parties: res}
}

// ToPartySummaryResponse converts a ledger.BookSummary to PartySummaryResponse DTO
func ToPartySummaryResponse(s ledger.BookSummary) PartySummaryResponse {
	return PartySummaryResponse{
		TotalReceivable: s.TotalReceivable,
		TotalPayable:    s.TotalPayable,
		PartyCount:      s.PartyCount,
	}
}
