package models

import (
	"github.com/shopspring/decimal"
)

// PartyType mirrors domain.PartyType at the storage layer.
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeVendor   PartyType = "vendor"
	PartyTypeBoth     PartyType = "both"
)

// Party represents a row in the parties table.
type Party struct {
	PartyID        string          `db:"party_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Phone          string          `db:"phone"`    // Nullable
	Email          string          `db:"email"`    // Nullable
	Address        string          `db:"address"`  // Nullable
	GSTIN          string          `db:"gstin"`    // Nullable
	PartyType      PartyType       `db:"party_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
