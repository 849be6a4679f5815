package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CostRepo         CostRepositoryFacade
	ShippingRepo     ShippingRepositoryFacade
	RateSnapshotRepo RateSnapshotRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	UserRepo         UserRepositoryFacade
	QuoteAuditRepo   QuoteAuditWriter
}
