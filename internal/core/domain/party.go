package domain

import (
	"github.com/shopspring/decimal"
)

// PartyType describes which side of the books a party usually sits on.
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeVendor   PartyType = "vendor"
	PartyTypeBoth     PartyType = "both"
)

// Party represents a customer or vendor the business trades with.
// This is the primary representation used by services.
//
// CurrentBalance is the persisted running balance: positive means the party
// owes the business (receivable), negative means the business owes the party
// (payable).
type Party struct {
	PartyID        string          `json:"partyID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`  // Owning user (tenant boundary)
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	GSTIN          string          `json:"gstin"`
	PartyType      PartyType       `json:"partyType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
