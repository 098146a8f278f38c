package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType names which party balance field an adjustment overrode.
type AdjustmentType string

const (
	AdjustOpeningBalance AdjustmentType = "opening_balance"
	AdjustCurrentBalance AdjustmentType = "current_balance"
)

// BalanceAdjustment is an append-only audit record of a manual balance
// override on a party. AdjustmentAmount = NewBalance - PreviousBalance,
// computed once at creation time.
type BalanceAdjustment struct {
	AdjustmentID     string          `json:"adjustmentID"` // Primary Key (UUID)
	UserID           string          `json:"userID"`
	PartyID          string          `json:"partyID"`
	AdjustmentType   AdjustmentType  `json:"adjustmentType"`
	PreviousBalance  decimal.Decimal `json:"previousBalance"`
	NewBalance       decimal.Decimal `json:"newBalance"`
	AdjustmentAmount decimal.Decimal `json:"adjustmentAmount"`
	Reason           string          `json:"reason"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}
