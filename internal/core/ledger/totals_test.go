package ledger_test

import (
	"testing"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputePartyTotals(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.SaleInvoice, 500, day(1)),
		txn(domain.PaymentOut, 200, day(2)),
		txn(domain.Estimate, 5000, day(3)), // counted, never summed
		txn(domain.PurchaseReturn, 100, day(4)),
	}

	totals := ledger.ComputePartyTotals(txns)

	assert.True(t, totals.Credits.Equal(decimal.NewFromInt(600)))
	assert.True(t, totals.Debits.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.Net.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 4, totals.TotalTransactions)
	assert.Equal(t, 0, totals.SkippedUnknown)
}

// A lone estimate counts as a transaction but contributes no money flow.
func TestComputePartyTotalsNonLedgerOnly(t *testing.T) {
	totals := ledger.ComputePartyTotals([]domain.Transaction{
		txn(domain.Estimate, 5000, day(1)),
	})

	assert.Equal(t, 1, totals.TotalTransactions)
	assert.True(t, totals.Credits.IsZero())
	assert.True(t, totals.Debits.IsZero())
	assert.True(t, totals.Net.IsZero())
}

func TestComputePartyTotalsSkipsUnknown(t *testing.T) {
	totals := ledger.ComputePartyTotals([]domain.Transaction{
		txn(domain.SaleInvoice, 500, day(1)),
		{TransactionID: "bad", TransactionType: "cheque", TotalAmount: decimal.NewFromInt(100)},
	})

	assert.Equal(t, 1, totals.TotalTransactions)
	assert.Equal(t, 1, totals.SkippedUnknown)
	assert.True(t, totals.Credits.Equal(decimal.NewFromInt(500)))
}

func TestComputePartyTotalsEmpty(t *testing.T) {
	totals := ledger.ComputePartyTotals(nil)
	assert.Equal(t, 0, totals.TotalTransactions)
	assert.True(t, totals.Net.IsZero())
}

// Party A at +2000 and party B at -500 give receivable 2000, payable 500.
func TestSummarizeParties(t *testing.T) {
	parties := []domain.Party{
		{PartyID: "a", CurrentBalance: decimal.NewFromInt(2000), IsActive: true},
		{PartyID: "b", CurrentBalance: decimal.NewFromInt(-500), IsActive: true},
	}

	summary := ledger.SummarizeParties(parties)

	assert.True(t, summary.TotalReceivable.Equal(decimal.NewFromInt(2000)))
	assert.True(t, summary.TotalPayable.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2, summary.PartyCount)
}

func TestSummarizePartiesExcludesInactive(t *testing.T) {
	parties := []domain.Party{
		{PartyID: "a", CurrentBalance: decimal.NewFromInt(2000), IsActive: true},
		{PartyID: "gone", CurrentBalance: decimal.NewFromInt(9999), IsActive: false},
	}

	summary := ledger.SummarizeParties(parties)

	assert.True(t, summary.TotalReceivable.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 1, summary.PartyCount)
}

// totalReceivable - totalPayable must equal the signed sum of active
// balances.
func TestSummarizePartiesIdentity(t *testing.T) {
	parties := []domain.Party{
		{PartyID: "a", CurrentBalance: decimal.NewFromInt(1250), IsActive: true},
		{PartyID: "b", CurrentBalance: decimal.NewFromInt(-300), IsActive: true},
		{PartyID: "c", CurrentBalance: decimal.Zero, IsActive: true},
		{PartyID: "d", CurrentBalance: decimal.NewFromInt(-75), IsActive: true},
	}

	signedSum := decimal.Zero
	for _, p := range parties {
		signedSum = signedSum.Add(p.CurrentBalance)
	}

	summary := ledger.SummarizeParties(parties)
	assert.True(t, summary.TotalReceivable.Sub(summary.TotalPayable).Equal(signedSum))
	assert.True(t, summary.TotalReceivable.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, summary.TotalPayable.GreaterThanOrEqual(decimal.Zero))
}
