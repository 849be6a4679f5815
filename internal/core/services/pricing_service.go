package services

import (
	"context"
	"errors"
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

var oneHundred = decimal.NewFromInt(100)

// pricingService computes delivered sale prices across the fixed set of
// production sites. Missing data never aborts a quote: sites without a cost
// record or shipping rows appear as incomplete placeholder rows. The single
// hard failure is a pinned route whose data is absent.
type pricingService struct {
	costRepo     portsrepo.CostReader
	shippingRepo portsrepo.ShippingReader
	auditRepo    portsrepo.QuoteAuditWriter
	currencyRepo portsrepo.CurrencyReader
	resolver     portssvc.RateResolverSvcFacade
	now          func() time.Time
}

// PricingOption customizes a pricingService.
type PricingOption func(*pricingService)

// WithPricingClock replaces the wall clock, for tests.
func WithPricingClock(clock func() time.Time) PricingOption {
	return func(s *pricingService) {
		s.now = clock
	}
}

// NewPricingService creates the pricing engine.
func NewPricingService(
	costRepo portsrepo.CostReader,
	shippingRepo portsrepo.ShippingReader,
	auditRepo portsrepo.QuoteAuditWriter,
	currencyRepo portsrepo.CurrencyReader,
	resolver portssvc.RateResolverSvcFacade,
	opts ...PricingOption,
) portssvc.PricingSvcFacade {
	s := &pricingService{
		costRepo:     costRepo,
		shippingRepo: shippingRepo,
		auditRepo:    auditRepo,
		currencyRepo: currencyRepo,
		resolver:     resolver,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote resolves the applicable rate snapshot and prices the request.
func (s *pricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*domain.QuoteResult, error) {
	var asOf time.Time
	if req.AsOfDate != nil {
		asOf = *req.AsOfDate
	}
	snapshot := s.resolver.ResolveRate(ctx, asOf)
	return s.QuoteWithSnapshot(ctx, req, snapshot)
}

// QuoteWithSnapshot prices the request against an already resolved snapshot.
func (s *pricingService) QuoteWithSnapshot(ctx context.Context, req dto.QuoteRequest, snapshot domain.RateSnapshot) (*domain.QuoteResult, error) {
	codes, err := s.trackedCurrencyCodes(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	var asOf time.Time
	if req.AsOfDate != nil {
		asOf = *req.AsOfDate
	}

	if route := req.Route(); route != nil {
		return s.quotePinned(ctx, req, *route, snapshot, codes, asOf)
	}

	result := &domain.QuoteResult{Snapshot: snapshot}
	for _, site := range domain.ProductionSites() {
		cost, err := s.effectiveCostOrNil(ctx, req.ProductID, site, asOf)
		if err != nil {
			return nil, err
		}
		if cost == nil {
			result.Offers = append(result.Offers, placeholderOffer(site, nil, req.MarginPct))
			continue
		}

		rows, err := s.shippingRepo.FindShippingOptions(ctx, req.DestinationID, site)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to list shipping options for site %s: %w", site, err)
		}
		if len(rows) == 0 {
			result.Offers = append(result.Offers, placeholderOffer(site, cost, req.MarginPct))
			continue
		}

		for _, row := range rows {
			offer := buildOffer(cost.UnitCost, row, req.MarginPct, snapshot, codes)
			result.Offers = append(result.Offers, offer)
			if result.Best == nil || offer.SalePrice.LessThan(result.Best.SalePrice) {
				// Strict less-than keeps the first-encountered offer on
				// ties, so selection order is stable.
				best := offer
				result.Best = &best
			}
		}
	}
	return result, nil
}

// quotePinned prices exactly the requested route. Other sites are emitted as
// placeholder rows for comparison context only.
func (s *pricingService) quotePinned(ctx context.Context, req dto.QuoteRequest, route domain.RouteRef, snapshot domain.RateSnapshot, codes []string, asOf time.Time) (*domain.QuoteResult, error) {
	if !route.SiteID.Valid() {
		return nil, fmt.Errorf("%w: unknown production site %q", apperrors.ErrPinnedRouteUnavailable, route.SiteID)
	}

	cost, err := s.effectiveCostOrNil(ctx, req.ProductID, route.SiteID, asOf)
	if err != nil {
		return nil, err
	}
	if cost == nil {
		return nil, fmt.Errorf("%w: no cost record for product %s at site %s", apperrors.ErrPinnedRouteUnavailable, req.ProductID, route.SiteID)
	}

	rows, err := s.shippingRepo.FindShippingRecord(ctx, req.DestinationID, route)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up pinned shipping record: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no shipping rate for %s/%s/%s to %s", apperrors.ErrPinnedRouteUnavailable, route.SiteID, route.CarrierID, route.VehicleType, req.DestinationID)
	}

	pinned := buildOffer(cost.UnitCost, rows[0], req.MarginPct, snapshot, codes)
	result := &domain.QuoteResult{Snapshot: snapshot}
	for _, site := range domain.ProductionSites() {
		if site == route.SiteID {
			result.Offers = append(result.Offers, pinned)
			continue
		}
		siteCost, err := s.effectiveCostOrNil(ctx, req.ProductID, site, asOf)
		if err != nil {
			return nil, err
		}
		result.Offers = append(result.Offers, placeholderOffer(site, siteCost, req.MarginPct))
	}
	result.Best = &pinned
	return result, nil
}

// SaveQuote recomputes the request and appends the selected offer to the
// audit log.
func (s *pricingService) SaveQuote(ctx context.Context, req dto.QuoteRequest, requesterUserID string) (*domain.QuoteAuditRecord, error) {
	result, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Best == nil {
		return nil, fmt.Errorf("%w: no complete offer to save for product %s to %s", apperrors.ErrNotFound, req.ProductID, req.DestinationID)
	}

	record := domain.QuoteAuditRecord{
		QuoteAuditID:  uuid.NewString(),
		ProductID:     req.ProductID,
		DestinationID: req.DestinationID,
		MarginPct:     req.MarginPct,
		Offer:         *result.Best,
		RateAsOfDate:  result.Snapshot.AsOfDate,
		RequestedBy:   requesterUserID,
		CreatedAt:     s.now(),
	}
	if err := s.auditRepo.SaveQuoteRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save quote audit record: %w", err)
	}
	return &record, nil
}

// effectiveCostOrNil treats a missing cost record as nil, not an error.
func (s *pricingService) effectiveCostOrNil(ctx context.Context, productID string, site domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error) {
	cost, err := s.costRepo.FindEffectiveCost(ctx, productID, site, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up effective cost for site %s: %w", site, err)
	}
	return cost, nil
}

// trackedCurrencyCodes lists the foreign currencies quotes are converted
// into. Falls back to the snapshot's own codes when the catalog is empty.
func (s *pricingService) trackedCurrencyCodes(ctx context.Context, snapshot domain.RateSnapshot) ([]string, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked currencies: %w", err)
	}
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c.CurrencyCode == domain.BaseCurrencyCode {
			continue
		}
		codes = append(codes, c.CurrencyCode)
	}
	if len(codes) == 0 {
		for code := range snapshot.Rates {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// buildOffer prices a single cost + shipping row at the given margin, with
// per-kg and per-ton figures in the base currency and every tracked foreign
// currency the snapshot covers. All figures stay unrounded.
func buildOffer(unitCost decimal.Decimal, row domain.ShippingRecord, marginPct decimal.Decimal, snapshot domain.RateSnapshot, codes []string) domain.Offer {
	totalCost := unitCost.Add(row.UnitRate)
	salePrice := totalCost.Mul(decimal.NewFromInt(1).Add(marginPct.Div(oneHundred)))

	perKg := make(map[string]decimal.Decimal, len(codes)+1)
	perKg[domain.BaseCurrencyCode] = salePrice
	for _, code := range codes {
		rate, ok := snapshot.RateFor(code)
		if !ok || rate.IsZero() {
			continue
		}
		perKg[code] = salePrice.Div(rate)
	}
	perTon := make(map[string]decimal.Decimal, len(perKg))
	for code, v := range perKg {
		perTon[code] = domain.PerTon(v)
	}

	return domain.Offer{
		SiteID:                    row.SiteID,
		CarrierID:                 row.CarrierID,
		VehicleType:               row.VehicleType,
		UnitCost:                  unitCost,
		ShippingCost:              row.UnitRate,
		TotalCost:                 totalCost,
		MarginPct:                 marginPct,
		SalePrice:                 salePrice,
		SalePricePerTon:           domain.PerTon(salePrice),
		SalePriceByCurrency:       perKg,
		SalePriceByCurrencyPerTon: perTon,
		HasCompleteData:           true,
	}
}

// placeholderOffer is the incomplete row shown for a site with missing cost
// or shipping data. Known partial figures are carried for display.
func placeholderOffer(site domain.ProductionSite, cost *domain.CostRecord, marginPct decimal.Decimal) domain.Offer {
	offer := domain.Offer{
		SiteID:          site,
		MarginPct:       marginPct,
		HasCompleteData: false,
	}
	if cost != nil {
		offer.UnitCost = cost.UnitCost
	}
	return offer
}
