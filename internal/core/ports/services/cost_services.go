package services

import (
	"context"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CostReaderSvc defines read operations over the cost ledger.
type CostReaderSvc interface {
	// EffectiveCost returns the record with the latest RecordedOn <= asOf
	// for the pair; zero asOf means latest overall.
	EffectiveCost(ctx context.Context, productID string, siteID domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error)

	// ListCostHistory returns all records for the pair, newest first.
	ListCostHistory(ctx context.Context, productID string, siteID domain.ProductionSite) ([]domain.CostRecord, error)

	// ListProducts returns the distinct product IDs known to the ledger.
	ListProducts(ctx context.Context) ([]string, error)
}

// CostWriterSvc defines write operations over the cost ledger.
type CostWriterSvc interface {
	// RecordCost appends a new cost record; existing records are never
	// mutated.
	RecordCost(ctx context.Context, req dto.CreateCostRecordRequest, creatorUserID string) (*domain.CostRecord, error)

	// BulkIncreaseCosts appends, per (product, site), a new record at
	// today's date with the current effective cost increased by pct.
	BulkIncreaseCosts(ctx context.Context, pct decimal.Decimal, creatorUserID string) (int, error)

	// PurgeCostRecords is the explicit administrative purge for a pair.
	PurgeCostRecords(ctx context.Context, productID string, siteID domain.ProductionSite) (int64, error)
}

// CostSvcFacade combines all cost ledger service interfaces.
type CostSvcFacade interface {
	CostReaderSvc
	CostWriterSvc
}
