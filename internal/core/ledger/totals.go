package ledger

import (
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyTotals aggregates a set of transactions for one party.
type PartyTotals struct {
	Credits decimal.Decimal // Sum of credit-effect totals
	Debits  decimal.Decimal // Sum of debit-effect totals (positive magnitude)
	Net     decimal.Decimal // Credits - Debits
	// TotalTransactions counts every classified record, including
	// document-only types that do not move the ledger.
	TotalTransactions int
	SkippedUnknown    int
}

// ComputePartyTotals folds a filtered transaction set into totals.
// Unknown-typed records are skipped and counted, never silently summed.
func ComputePartyTotals(txns []domain.Transaction) PartyTotals {
	totals := PartyTotals{
		Credits: decimal.Zero,
		Debits:  decimal.Zero,
		Net:     decimal.Zero,
	}
	for _, txn := range txns {
		effect, err := EffectOf(txn.TransactionType)
		if err != nil {
			totals.SkippedUnknown++
			continue
		}
		totals.TotalTransactions++
		switch effect {
		case EffectCredit:
			totals.Credits = totals.Credits.Add(txn.TotalAmount)
		case EffectDebit:
			totals.Debits = totals.Debits.Add(txn.TotalAmount)
		}
	}
	totals.Net = totals.Credits.Sub(totals.Debits)
	return totals
}

// BookSummary aggregates persisted balances across parties.
type BookSummary struct {
	TotalReceivable decimal.Decimal // Sum of positive balances
	TotalPayable    decimal.Decimal // Magnitude of the sum of negative balances
	PartyCount      int
}

// SummarizeParties reduces the active parties' persisted balances into the
// receivable/payable summary. Inactive parties are excluded. The identity
// TotalReceivable - TotalPayable == sum of included balances holds by
// construction.
func SummarizeParties(parties []domain.Party) BookSummary {
	summary := BookSummary{
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}
	for _, p := range parties {
		if !p.IsActive {
			continue
		}
		summary.PartyCount++
		if p.CurrentBalance.IsPositive() {
			summary.TotalReceivable = summary.TotalReceivable.Add(p.CurrentBalance)
		} else if p.CurrentBalance.IsNegative() {
			summary.TotalPayable = summary.TotalPayable.Add(p.CurrentBalance.Abs())
		}
	}
	return summary
}
