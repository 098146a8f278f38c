package dto

import (
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// StatementLineResponse is one movement on a party statement.
type StatementLineResponse struct {
	Transaction    TransactionResponse `json:"transaction"`
	Change         decimal.Decimal     `json:"change"`
	RunningBalance decimal.Decimal     `json:"runningBalance"`
}

// StatementResponse is a party's ledger statement: every balance movement in
// date order with running balances.
//
// ConsistentWithStored is false when the replayed closing balance disagrees
// with the party's persisted balance, which signals drift worth investigating
// (it is expected when the statement window is narrower than full history).
type StatementResponse struct {
	Party                PartyResponse           `json:"party"`
	OpeningBalance       decimal.Decimal         `json:"openingBalance"`
	Lines                []StatementLineResponse `json:"lines"`
	ClosingBalance       decimal.Decimal         `json:"closingBalance"`
	SkippedUnknown       int                     `json:"skippedUnknown,omitempty"`
	ConsistentWithStored bool                    `json:"consistentWithStored"`
}

// ToStatementResponse converts a replayed ledger.Statement plus its party
// into the response DTO.
func ToStatementResponse(party *domain.Party, stmt ledger.Statement, consistent bool) StatementResponse {
	lines := make([]StatementLineResponse, len(stmt.Lines))
	for i, line := range stmt.Lines {
		lines[i] = StatementLineResponse{
			Transaction:    ToTransactionResponse(&line.Transaction),
			Change:         line.Change,
			RunningBalance: line.RunningBalance,
		}
	}
	return StatementResponse{
		Party:                ToPartyResponse(party),
		OpeningBalance:       stmt.OpeningBalance,
		Lines:                lines,
		ClosingBalance:       stmt.ClosingBalance,
		SkippedUnknown:       stmt.SkippedUnknown,
		ConsistentWithStored: consistent,
	}
}
