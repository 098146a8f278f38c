package ledger_test

import (
	"testing"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every recognized type must map to exactly one effect and one category.
func TestClassifierExhaustiveness(t *testing.T) {
	tests := []struct {
		txnType  domain.TransactionType
		effect   ledger.Effect
		category domain.TransactionCategory
	}{
		{domain.SaleInvoice, ledger.EffectCredit, domain.CategorySale},
		{domain.PaymentIn, ledger.EffectCredit, domain.CategorySale},
		{domain.PurchaseReturn, ledger.EffectCredit, domain.CategoryPurchase},
		{domain.Purchase, ledger.EffectDebit, domain.CategoryPurchase},
		{domain.PaymentOut, ledger.EffectDebit, domain.CategoryPurchase},
		{domain.SaleReturn, ledger.EffectDebit, domain.CategorySale},
		{domain.Expense, ledger.EffectDebit, domain.CategoryPurchase},
		{domain.DeliveryChallan, ledger.EffectNone, domain.CategorySale},
		{domain.Estimate, ledger.EffectNone, domain.CategorySale},
		{domain.SaleOrder, ledger.EffectNone, domain.CategorySale},
		{domain.PurchaseOrder, ledger.EffectNone, domain.CategoryPurchase},
		{domain.P2PTransfer, ledger.EffectNone, domain.CategoryPurchase},
	}

	for _, tc := range tests {
		t.Run(string(tc.txnType), func(t *testing.T) {
			effect, err := ledger.EffectOf(tc.txnType)
			require.NoError(t, err)
			assert.Equal(t, tc.effect, effect)

			category, err := ledger.CategoryOf(tc.txnType)
			require.NoError(t, err)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestClassifierRejectsUnknownType(t *testing.T) {
	unknown := domain.TransactionType("bank_transfer")

	_, err := ledger.EffectOf(unknown)
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)

	_, err = ledger.CategoryOf(unknown)
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)

	_, err = ledger.SignedAmount(domain.Transaction{TransactionType: unknown, TotalAmount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)

	_, err = ledger.EffectOf("")
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)
}

func TestSignedAmount(t *testing.T) {
	total := decimal.NewFromInt(250)

	credit, err := ledger.SignedAmount(domain.Transaction{TransactionType: domain.SaleInvoice, TotalAmount: total})
	require.NoError(t, err)
	assert.True(t, credit.Equal(total))

	debit, err := ledger.SignedAmount(domain.Transaction{TransactionType: domain.Expense, TotalAmount: total})
	require.NoError(t, err)
	assert.True(t, debit.Equal(total.Neg()))

	none, err := ledger.SignedAmount(domain.Transaction{TransactionType: domain.SaleOrder, TotalAmount: total})
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestAffectsBalance(t *testing.T) {
	affects, err := ledger.AffectsBalance(domain.PaymentIn)
	require.NoError(t, err)
	assert.True(t, affects)

	affects, err = ledger.AffectsBalance(domain.Estimate)
	require.NoError(t, err)
	assert.False(t, affects)

	_, err = ledger.AffectsBalance("journal")
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)
}
