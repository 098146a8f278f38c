package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceAdjustment represents a row in the balance_adjustments table.
// Rows are append-only.
type BalanceAdjustment struct {
	AdjustmentID     string          `db:"adjustment_id"`
	UserID           string          `db:"user_id"`
	PartyID          string          `db:"party_id"`
	AdjustmentType   string          `db:"adjustment_type"`
	PreviousBalance  decimal.Decimal `db:"previous_balance"`
	NewBalance       decimal.Decimal `db:"new_balance"`
	AdjustmentAmount decimal.Decimal `db:"adjustment_amount"`
	Reason           string          `db:"reason"` // Nullable
	CreatedAt        time.Time       `db:"created_at"`
	CreatedBy        string          `db:"created_by"`
}
