package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// costService implements the cost ledger operations. The ledger is
// append-only: a price change is a new record, never an update.
type costService struct {
	repo portsrepo.CostRepositoryFacade
	now  func() time.Time
}

// CostOption customizes a costService.
type CostOption func(*costService)

// WithCostClock replaces the wall clock, for tests.
func WithCostClock(clock func() time.Time) CostOption {
	return func(s *costService) {
		s.now = clock
	}
}

// NewCostService creates a new cost ledger service.
func NewCostService(repo portsrepo.CostRepositoryFacade, opts ...CostOption) portssvc.CostSvcFacade {
	s := &costService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordCost appends a new cost record.
func (s *costService) RecordCost(ctx context.Context, req dto.CreateCostRecordRequest, creatorUserID string) (*domain.CostRecord, error) {
	site := domain.ProductionSite(req.SiteID)
	if !site.Valid() {
		return nil, fmt.Errorf("%w: unknown production site %q", apperrors.ErrValidation, req.SiteID)
	}
	if !req.UnitCost.IsPositive() {
		return nil, fmt.Errorf("%w: unit cost must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	record := domain.CostRecord{
		CostRecordID: uuid.NewString(),
		ProductID:    req.ProductID,
		SiteID:       site,
		UnitCost:     req.UnitCost,
		RecordedOn:   req.RecordedOn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.repo.SaveCostRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save cost record: %w", err)
	}
	return &record, nil
}

// EffectiveCost returns the record in effect at asOf for the pair.
func (s *costService) EffectiveCost(ctx context.Context, productID string, siteID domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error) {
	if !siteID.Valid() {
		return nil, fmt.Errorf("%w: unknown production site %q", apperrors.ErrValidation, siteID)
	}
	record, err := s.repo.FindEffectiveCost(ctx, productID, siteID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find effective cost: %w", err)
	}
	return record, nil
}

// ListCostHistory returns all records for the pair, newest first.
func (s *costService) ListCostHistory(ctx context.Context, productID string, siteID domain.ProductionSite) ([]domain.CostRecord, error) {
	if !siteID.Valid() {
		return nil, fmt.Errorf("%w: unknown production site %q", apperrors.ErrValidation, siteID)
	}
	records, err := s.repo.ListCostHistory(ctx, productID, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost history: %w", err)
	}
	return records, nil
}

// ListProducts returns the distinct product IDs known to the ledger.
func (s *costService) ListProducts(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// BulkIncreaseCosts appends, for every (product, site) pair, a new record at
// today's date with the current effective cost scaled by (1 + pct/100).
// Applying it twice compounds.
func (s *costService) BulkIncreaseCosts(ctx context.Context, pct decimal.Decimal, creatorUserID string) (int, error) {
	if pct.IsZero() {
		return 0, fmt.Errorf("%w: percentage must be non-zero", apperrors.ErrValidation)
	}

	latest, err := s.repo.ListLatestCosts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list current costs: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	factor := decimal.NewFromInt(1).Add(pct.Div(oneHundred))

	count := 0
	for _, current := range latest {
		record := domain.CostRecord{
			CostRecordID: uuid.NewString(),
			ProductID:    current.ProductID,
			SiteID:       current.SiteID,
			UnitCost:     current.UnitCost.Mul(factor),
			RecordedOn:   today,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.repo.SaveCostRecord(ctx, record); err != nil {
			return count, fmt.Errorf("failed to save increased cost for product %s at site %s: %w", current.ProductID, current.SiteID, err)
		}
		count++
	}
	return count, nil
}

// PurgeCostRecords deletes every record for the pair.
func (s *costService) PurgeCostRecords(ctx context.Context, productID string, siteID domain.ProductionSite) (int64, error) {
	if !siteID.Valid() {
		return 0, fmt.Errorf("%w: unknown production site %q", apperrors.ErrValidation, siteID)
	}
	deleted, err := s.repo.PurgeCostRecords(ctx, productID, siteID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cost records: %w", err)
	}
	return deleted, nil
}
