package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
)

// Compile-time checks that the pgx implementations satisfy their ports.
var (
	_ portsrepo.CostRepositoryFacade         = (*PgxCostRepository)(nil)
	_ portsrepo.ShippingRepositoryFacade     = (*PgxShippingRepository)(nil)
	_ portsrepo.RateSnapshotRepositoryFacade = (*PgxRateSnapshotRepository)(nil)
	_ portsrepo.CurrencyRepositoryFacade     = (*PgxCurrencyRepository)(nil)
	_ portsrepo.UserRepositoryFacade         = (*PgxUserRepository)(nil)
	_ portsrepo.QuoteAuditWriter             = (*PgxQuoteAuditRepository)(nil)
)

// NewRepositoryProvider creates all pgx repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CostRepo:         NewPgxCostRepository(pool),
		ShippingRepo:     NewPgxShippingRepository(pool),
		RateSnapshotRepo: NewPgxRateSnapshotRepository(pool),
		CurrencyRepo:     NewPgxCurrencyRepository(pool),
		UserRepo:         NewPgxUserRepository(pool),
		QuoteAuditRepo:   NewPgxQuoteAuditRepository(pool),
	}
}
