package pgsql

import (
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	partyRepo := newPgxPartyRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, partyRepo)
	adjustmentRepo := newPgxAdjustmentRepository(dbPool, partyRepo)
	itemRepo := newPgxItemRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PartyRepo:       partyRepo,
		TransactionRepo: transactionRepo,
		AdjustmentRepo:  adjustmentRepo,
		ItemRepo:        itemRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
