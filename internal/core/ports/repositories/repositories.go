package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PartyRepo       PartyRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	AdjustmentRepo  AdjustmentRepositoryFacade
	ItemRepo        ItemRepositoryFacade
	UserRepo        UserRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
