package repositories

import (
	"context"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
)

// CostReader defines read operations against the cost ledger.
type CostReader interface {
	// FindEffectiveCost returns the cost record with the latest RecordedOn
	// not after asOf for the (product, site) pair. A zero asOf means
	// "latest overall".
	FindEffectiveCost(ctx context.Context, productID string, siteID domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error)

	// ListCostHistory returns all records for the pair, newest first.
	ListCostHistory(ctx context.Context, productID string, siteID domain.ProductionSite) ([]domain.CostRecord, error)

	// ListProducts returns the distinct product IDs present in the ledger.
	ListProducts(ctx context.Context) ([]string, error)

	// ListLatestCosts returns the effective record per (product, site)
	// pair, used by the batch price-increase operation.
	ListLatestCosts(ctx context.Context) ([]domain.CostRecord, error)
}

// CostWriter defines write operations against the cost ledger.
// The ledger is append-only; there is no update operation.
type CostWriter interface {
	// SaveCostRecord appends a new cost record.
	SaveCostRecord(ctx context.Context, record domain.CostRecord) error

	// PurgeCostRecords deletes every record for the pair. This is the
	// explicit administrative purge, the only delete path.
	PurgeCostRecords(ctx context.Context, productID string, siteID domain.ProductionSite) (int64, error)
}

// CostRepositoryFacade combines all cost ledger repository interfaces.
type CostRepositoryFacade interface {
	CostReader
	CostWriter
}
