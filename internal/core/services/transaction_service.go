package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/billingup/billingup-backend/internal/core/ledger"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(28)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

// transactionServiceImpl implements the TransactionSvcFacade interface
type transactionServiceImpl struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	partyRepo       portsrepo.PartyRepositoryReader
	cache           *cache.Store
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, partyRepo portsrepo.PartyRepositoryReader, cacheStore *cache.Store) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		transactionRepo: repo,
		partyRepo:       partyRepo,
		cache:           cacheStore,
	}
}

// Ensure transactionServiceImpl implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	// Reject unknown types up front rather than defaulting their balance
	// effect to zero.
	if _, err := ledger.EffectOf(req.Type); err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown transaction type: %s", req.Type))
	}

	items, err := validateTransactionItems(req.Items)
	if err != nil {
		return nil, err
	}
	subtotal, discount, tax, total, err := validateTransactionAmounts(req.Subtotal, req.DiscountAmount, req.TaxAmount)
	if err != nil {
		return nil, err
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusUnpaid
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		UserID:            userID,
		TransactionType:   req.Type,
		TransactionNumber: req.TransactionNumber,
		TransactionDate:   req.TransactionDate,
		Subtotal:          subtotal,
		DiscountAmount:    discount,
		TaxAmount:         tax,
		TotalAmount:       total,
		PaymentStatus:     paymentStatus,
		PaymentMode:       req.PaymentMode,
		Notes:             req.Notes,
		Items:             items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	balanceDelta := decimal.Zero
	if req.PartyID != "" {
		party, err := s.partyRepo.FindPartyByID(ctx, req.PartyID, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewBadRequestError("linked party not found")
			}
			return nil, err
		}
		// Snapshot the party details so documents keep their original
		// identity even after the party is renamed.
		txn.PartyID = party.PartyID
		txn.PartyName = party.Name
		txn.PartyPhone = party.Phone

		balanceDelta, err = ledger.SignedAmount(txn)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, balanceDelta); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Transactions, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	filter := portsrepo.TransactionListFilter{
		PartyID:  params.PartyID,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	}
	for _, typeStr := range params.Types {
		txnType := domain.TransactionType(typeStr)
		if _, err := ledger.EffectOf(txnType); err != nil {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown transaction type filter: %s", typeStr))
		}
		filter.Types = append(filter.Types, txnType)
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	items, err := validateTransactionItems(req.Items)
	if err != nil {
		return nil, err
	}
	subtotal, discount, tax, total, err := validateTransactionAmounts(req.Subtotal, req.DiscountAmount, req.TaxAmount)
	if err != nil {
		return nil, err
	}

	oldSigned, err := ledger.SignedAmount(*existing)
	if err != nil {
		return nil, apperrors.NewInternalServerError(fmt.Sprintf("stored transaction has unknown type %s", existing.TransactionType))
	}

	updated := *existing
	updated.TransactionNumber = req.TransactionNumber
	updated.TransactionDate = req.TransactionDate
	updated.Subtotal = subtotal
	updated.DiscountAmount = discount
	updated.TaxAmount = tax
	updated.TotalAmount = total
	if req.PaymentStatus != "" {
		updated.PaymentStatus = req.PaymentStatus
	}
	updated.PaymentMode = req.PaymentMode
	updated.Notes = req.Notes
	updated.Items = items
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	balanceDelta := decimal.Zero
	if updated.PartyID != "" {
		newSigned, err := ledger.SignedAmount(updated)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		balanceDelta = newSigned.Sub(oldSigned)
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, updated, balanceDelta); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.cache.InvalidateAll(userID, cache.Transactions, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for deletion",
				slog.String("transaction_id", transactionID))
		}
		return err
	}

	balanceDelta := decimal.Zero
	if existing.PartyID != "" {
		signed, err := ledger.SignedAmount(*existing)
		if err != nil {
			return apperrors.NewInternalServerError(fmt.Sprintf("stored transaction has unknown type %s", existing.TransactionType))
		}
		// Deleting a document reverses its effect on the party balance.
		balanceDelta = signed.Neg()
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, userID, existing.PartyID, balanceDelta); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.cache.InvalidateAll(userID, cache.Transactions, cache.Parties, cache.Reports)
	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID))
	return nil
}

// validateTransactionAmounts checks the document level amounts and returns
// them alongside the derived total: subtotal - discount + tax.
func validateTransactionAmounts(subtotal, discount, tax decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	zero := decimal.Zero
	if subtotal.IsNegative() {
		return zero, zero, zero, zero, apperrors.NewBadRequestError("subtotal cannot be negative")
	}
	if discount.IsNegative() {
		return zero, zero, zero, zero, apperrors.NewBadRequestError("discount cannot be negative")
	}
	if tax.IsNegative() {
		return zero, zero, zero, zero, apperrors.NewBadRequestError("tax cannot be negative")
	}
	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		return zero, zero, zero, zero, apperrors.NewBadRequestError("discount exceeds subtotal plus tax")
	}
	return subtotal, discount, tax, total, nil
}

// validateTransactionItems checks each line and computes its line total:
// quantity * unitPrice * (1 + taxRate/100).
func validateTransactionItems(reqItems []dto.TransactionItemRequest) ([]domain.TransactionItem, error) {
	if len(reqItems) == 0 {
		return nil, nil
	}
	hundred := decimal.NewFromInt(100)
	items := make([]domain.TransactionItem, len(reqItems))
	for i, reqItem := range reqItems {
		if !reqItem.Quantity.IsPositive() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		if reqItem.UnitPrice.IsNegative() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
		if reqItem.TaxRate.IsNegative() || reqItem.TaxRate.GreaterThan(maxTaxRate) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("item %d: tax rate must be between 0 and 28", i+1))
		}
		taxMultiplier := decimal.NewFromInt(1).Add(reqItem.TaxRate.Div(hundred))
		items[i] = domain.TransactionItem{
			ItemID:    reqItem.ItemID,
			Name:      reqItem.Name,
			Quantity:  reqItem.Quantity,
			UnitPrice: reqItem.UnitPrice,
			TaxRate:   reqItem.TaxRate,
			LineTotal: reqItem.Quantity.Mul(reqItem.UnitPrice).Mul(taxMultiplier),
		}
	}
	return items, nil
}
