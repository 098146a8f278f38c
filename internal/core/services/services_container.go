package services

import (
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/platform/cache"
	"github.com/billingup/billingup-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// One shared cache: writes to a collection invalidate every derived
	// read for that owner, regardless of which service produced it.
	cacheStore := cache.New(cfg.CacheTTL)

	container.Party = NewPartyService(repos.PartyRepo, cacheStore)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.PartyRepo, cacheStore)
	container.Adjustment = NewAdjustmentService(repos.AdjustmentRepo, repos.PartyRepo, cacheStore)
	container.Item = NewItemService(repos.ItemRepo, cacheStore)
	container.Statement = NewStatementService(repos.PartyRepo, repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, cacheStore)
	container.User = NewUserService(repos.UserRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
