package repositories

import (
	"context"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ShippingReader defines read operations against the shipping rate table.
type ShippingReader interface {
	// FindShippingOptions returns every row for (destination, site).
	// Duplicate lanes are returned as-is; callers evaluate each.
	FindShippingOptions(ctx context.Context, destinationID string, siteID domain.ProductionSite) ([]domain.ShippingRecord, error)

	// FindShippingRecord returns rows matching the exact
	// (destination, site, carrier, vehicle) tuple.
	FindShippingRecord(ctx context.Context, destinationID string, route domain.RouteRef) ([]domain.ShippingRecord, error)

	// ListByDestination returns every row for a destination across sites.
	ListByDestination(ctx context.Context, destinationID string) ([]domain.ShippingRecord, error)

	// ListDestinations returns the distinct destination IDs.
	ListDestinations(ctx context.Context) ([]string, error)
}

// ShippingWriter defines write operations against the shipping rate table.
type ShippingWriter interface {
	// SaveShippingRecord inserts or updates a single row by its ID.
	SaveShippingRecord(ctx context.Context, record domain.ShippingRecord) error

	// ReplaceShippingRecords atomically replaces the full record set for a
	// destination, diffing by ShippingRecordID: present rows are upserted,
	// absent ones deleted.
	ReplaceShippingRecords(ctx context.Context, destinationID string, records []domain.ShippingRecord) error

	// ApplyBulkMarkup multiplies every unit rate by (1 + pct/100) and
	// returns the number of rows touched. Repeated applications compound.
	ApplyBulkMarkup(ctx context.Context, pct decimal.Decimal, updaterUserID string) (int64, error)
}

// ShippingRepositoryFacade combines all shipping table repository interfaces.
type ShippingRepositoryFacade interface {
	ShippingReader
	ShippingWriter
}
