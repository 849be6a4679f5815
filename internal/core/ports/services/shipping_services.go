package services

import (
	"context"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ShippingReaderSvc defines read operations over the shipping rate table.
type ShippingReaderSvc interface {
	// ListDestinations returns the distinct destination IDs.
	ListDestinations(ctx context.Context) ([]string, error)

	// ListShippingOptions returns every row for a destination, across all
	// sites.
	ListShippingOptions(ctx context.Context, destinationID string) ([]domain.ShippingRecord, error)
}

// ShippingWriterSvc defines write operations over the shipping rate table.
type ShippingWriterSvc interface {
	// SaveShippingRecord inserts or updates a single row.
	SaveShippingRecord(ctx context.Context, req dto.SaveShippingRecordRequest, updaterUserID string) (*domain.ShippingRecord, error)

	// ReplaceShippingRecords replaces the full record set for a
	// destination, diffing by record ID.
	ReplaceShippingRecords(ctx context.Context, destinationID string, req []dto.SaveShippingRecordRequest, updaterUserID string) ([]domain.ShippingRecord, error)

	// ApplyBulkMarkup multiplies every unit rate by (1 + pct/100).
	// Each application compounds on the rates as they stand.
	ApplyBulkMarkup(ctx context.Context, pct decimal.Decimal, updaterUserID string) (int64, error)
}

// ShippingSvcFacade combines all shipping table service interfaces.
type ShippingSvcFacade interface {
	ShippingReaderSvc
	ShippingWriterSvc
}
