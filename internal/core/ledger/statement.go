package ledger

import (
	"sort"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementLine is a single transaction on a party statement, annotated
// with its ledger delta and the balance after applying it.
type StatementLine struct {
	Transaction    domain.Transaction
	Change         decimal.Decimal
	RunningBalance decimal.Decimal
}

// Statement is the result of replaying a party's transactions over an
// opening balance.
type Statement struct {
	OpeningBalance decimal.Decimal
	Lines          []StatementLine
	ClosingBalance decimal.Decimal
	// SkippedUnknown counts records whose type could not be classified.
	// They are excluded from the replay rather than failing the whole
	// statement.
	SkippedUnknown int
}

// BuildStatement orders transactions by date (ties keep input order, which
// for repository data is creation order) and replays them over the opening
// balance. The input slice is not modified.
func BuildStatement(openingBalance decimal.Decimal, txns []domain.Transaction) Statement {
	ordered := make([]domain.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TransactionDate.Before(ordered[j].TransactionDate)
	})

	stmt := Statement{
		OpeningBalance: openingBalance,
		Lines:          make([]StatementLine, 0, len(ordered)),
	}

	running := openingBalance
	for _, txn := range ordered {
		change, err := SignedAmount(txn)
		if err != nil {
			stmt.SkippedUnknown++
			continue
		}
		running = running.Add(change)
		stmt.Lines = append(stmt.Lines, StatementLine{
			Transaction:    txn,
			Change:         change,
			RunningBalance: running,
		})
	}

	stmt.ClosingBalance = running
	return stmt
}

// IsConsistentWith reports whether the replayed closing balance matches the
// persisted balance. A mismatch is a diagnostic signal, not an error: the
// persisted balance may include manual adjustments outside the replayed
// window.
func (s Statement) IsConsistentWith(persistedBalance decimal.Decimal) bool {
	return s.ClosingBalance.Equal(persistedBalance)
}
