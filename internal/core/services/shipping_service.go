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

// shippingService implements the shipping rate table operations. Rates have
// no temporal dimension: edits overwrite, and only the current table exists.
type shippingService struct {
	repo portsrepo.ShippingRepositoryFacade
	now  func() time.Time
}

// ShippingOption customizes a shippingService.
type ShippingOption func(*shippingService)

// WithShippingClock replaces the wall clock, for tests.
func WithShippingClock(clock func() time.Time) ShippingOption {
	return func(s *shippingService) {
		s.now = clock
	}
}

// NewShippingService creates a new shipping rate table service.
func NewShippingService(repo portsrepo.ShippingRepositoryFacade, opts ...ShippingOption) portssvc.ShippingSvcFacade {
	s := &shippingService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListDestinations returns the distinct destination IDs.
func (s *shippingService) ListDestinations(ctx context.Context) ([]string, error) {
	destinations, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

// ListShippingOptions returns every row for a destination across all sites.
func (s *shippingService) ListShippingOptions(ctx context.Context, destinationID string) ([]domain.ShippingRecord, error) {
	records, err := s.repo.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping options: %w", err)
	}
	return records, nil
}

// SaveShippingRecord inserts or updates a single row.
func (s *shippingService) SaveShippingRecord(ctx context.Context, req dto.SaveShippingRecordRequest, updaterUserID string) (*domain.ShippingRecord, error) {
	record, err := s.recordFromRequest(req, req.DestinationID, updaterUserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveShippingRecord(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to save shipping record: %w", err)
	}
	return record, nil
}

// ReplaceShippingRecords replaces the full record set for a destination.
// Rows are matched by their stable record ID: present rows are upserted,
// rows absent from the request are deleted.
func (s *shippingService) ReplaceShippingRecords(ctx context.Context, destinationID string, reqs []dto.SaveShippingRecordRequest, updaterUserID string) ([]domain.ShippingRecord, error) {
	records := make([]domain.ShippingRecord, 0, len(reqs))
	for _, req := range reqs {
		record, err := s.recordFromRequest(req, destinationID, updaterUserID)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := s.repo.ReplaceShippingRecords(ctx, destinationID, records); err != nil {
		return nil, fmt.Errorf("failed to replace shipping records for destination %s: %w", destinationID, err)
	}
	return records, nil
}

// ApplyBulkMarkup scales every unit rate by (1 + pct/100). Repeated
// applications compound; nothing is rounded in storage.
func (s *shippingService) ApplyBulkMarkup(ctx context.Context, pct decimal.Decimal, updaterUserID string) (int64, error) {
	if pct.IsZero() {
		return 0, fmt.Errorf("%w: percentage must be non-zero", apperrors.ErrValidation)
	}
	affected, err := s.repo.ApplyBulkMarkup(ctx, pct, updaterUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to apply bulk markup: %w", err)
	}
	return affected, nil
}

// recordFromRequest validates a request row and converts it to its domain
// form, minting an ID for new rows. The destination comes from the caller,
// not the row, so replace-set requests cannot smuggle rows across
// destinations.
func (s *shippingService) recordFromRequest(req dto.SaveShippingRecordRequest, destinationID, updaterUserID string) (*domain.ShippingRecord, error) {
	site := domain.ProductionSite(req.SiteID)
	if !site.Valid() {
		return nil, fmt.Errorf("%w: unknown production site %q", apperrors.ErrValidation, req.SiteID)
	}
	vehicle := domain.VehicleType(req.VehicleType)
	if !vehicle.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", apperrors.ErrValidation, req.VehicleType)
	}
	if !req.UnitRate.IsPositive() {
		return nil, fmt.Errorf("%w: unit rate must be positive", apperrors.ErrValidation)
	}

	recordID := req.ShippingRecordID
	if recordID == "" {
		recordID = uuid.NewString()
	}
	now := s.now()
	return &domain.ShippingRecord{
		ShippingRecordID: recordID,
		DestinationID:    destinationID,
		SiteID:           site,
		CarrierID:        req.CarrierID,
		VehicleType:      vehicle,
		UnitRate:         req.UnitRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}, nil
}
