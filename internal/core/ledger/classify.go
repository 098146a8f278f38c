// Package ledger holds the pure bookkeeping rules of the application:
// classification of transaction types, running-balance replay and party
// level aggregation. Nothing in this package touches the database or the
// HTTP layer, which keeps the rules trivially testable.
package ledger

import (
	"errors"
	"fmt"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownTransactionType indicates a transaction type outside the known
// set. Callers must not silently default the classification.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Effect describes how a transaction type moves a party's balance.
type Effect int

const (
	// EffectNone marks document-only types (orders, estimates, challans)
	// that never move the ledger.
	EffectNone Effect = iota
	// EffectCredit increases the party balance (the party owes more).
	EffectCredit
	// EffectDebit decreases the party balance.
	EffectDebit
)

// EffectOf returns the ledger effect of a transaction type.
func EffectOf(t domain.TransactionType) (Effect, error) {
	switch t {
	case domain.SaleInvoice, domain.PaymentIn, domain.PurchaseReturn:
		return EffectCredit, nil
	case domain.Purchase, domain.PaymentOut, domain.SaleReturn, domain.Expense:
		return EffectDebit, nil
	case domain.DeliveryChallan, domain.Estimate, domain.SaleOrder, domain.PurchaseOrder, domain.P2PTransfer:
		return EffectNone, nil
	default:
		return EffectNone, fmt.Errorf("%w: %q", ErrUnknownTransactionType, t)
	}
}

// CategoryOf returns the reporting category (SALE or PURCHASE) of a
// transaction type. Every known type belongs to exactly one category.
func CategoryOf(t domain.TransactionType) (domain.TransactionCategory, error) {
	switch t {
	case domain.SaleInvoice, domain.SaleReturn, domain.SaleOrder, domain.PaymentIn, domain.DeliveryChallan, domain.Estimate:
		return domain.CategorySale, nil
	case domain.Purchase, domain.PurchaseReturn, domain.PurchaseOrder, domain.PaymentOut, domain.Expense, domain.P2PTransfer:
		return domain.CategoryPurchase, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, t)
	}
}

// AffectsBalance reports whether a transaction type moves the party ledger.
func AffectsBalance(t domain.TransactionType) (bool, error) {
	effect, err := EffectOf(t)
	if err != nil {
		return false, err
	}
	return effect != EffectNone, nil
}

// SignedAmount converts a transaction's total into its ledger delta:
// positive for credits, negative for debits, zero for document-only types.
func SignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	effect, err := EffectOf(txn.TransactionType)
	if err != nil {
		return decimal.Zero, err
	}
	switch effect {
	case EffectCredit:
		return txn.TotalAmount, nil
	case EffectDebit:
		return txn.TotalAmount.Neg(), nil
	default:
		return decimal.Zero, nil
	}
}
