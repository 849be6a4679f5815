package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/core/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// --- Mock CostReader ---
type MockCostReader struct {
	mock.Mock
}

func (m *MockCostReader) FindEffectiveCost(ctx context.Context, productID string, siteID domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error) {
	args := m.Called(ctx, productID, siteID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostRecord), args.Error(1)
}

func (m *MockCostReader) ListCostHistory(ctx context.Context, productID string, siteID domain.ProductionSite) ([]domain.CostRecord, error) {
	args := m.Called(ctx, productID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostRecord), args.Error(1)
}

func (m *MockCostReader) ListProducts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCostReader) ListLatestCosts(ctx context.Context) ([]domain.CostRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostRecord), args.Error(1)
}

// --- Mock ShippingReader ---
type MockShippingReader struct {
	mock.Mock
}

func (m *MockShippingReader) FindShippingOptions(ctx context.Context, destinationID string, siteID domain.ProductionSite) ([]domain.ShippingRecord, error) {
	args := m.Called(ctx, destinationID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingRecord), args.Error(1)
}

func (m *MockShippingReader) FindShippingRecord(ctx context.Context, destinationID string, route domain.RouteRef) ([]domain.ShippingRecord, error) {
	args := m.Called(ctx, destinationID, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingRecord), args.Error(1)
}

func (m *MockShippingReader) ListByDestination(ctx context.Context, destinationID string) ([]domain.ShippingRecord, error) {
	args := m.Called(ctx, destinationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingRecord), args.Error(1)
}

func (m *MockShippingReader) ListDestinations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock QuoteAuditWriter ---
type MockQuoteAuditWriter struct {
	mock.Mock
}

func (m *MockQuoteAuditWriter) SaveQuoteRecord(ctx context.Context, record domain.QuoteAuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock CurrencyReader ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Stub resolver ---
type stubResolver struct {
	snapshot domain.RateSnapshot
}

func (s *stubResolver) ResolveRate(ctx context.Context, targetDate time.Time) domain.RateSnapshot {
	return s.snapshot
}

// --- Test Suite ---
type PricingServiceTestSuite struct {
	suite.Suite
	costRepo     *MockCostReader
	shippingRepo *MockShippingReader
	auditRepo    *MockQuoteAuditWriter
	currencyRepo *MockCurrencyReader
	resolver     *stubResolver
	service      portssvc.PricingSvcFacade
	now          time.Time
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.costRepo = new(MockCostReader)
	suite.shippingRepo = new(MockShippingReader)
	suite.auditRepo = new(MockQuoteAuditWriter)
	suite.currencyRepo = new(MockCurrencyReader)
	suite.now = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	suite.resolver = &stubResolver{snapshot: domain.RateSnapshot{
		AsOfDate: date(2025, 6, 18),
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromFloat(30.00),
		},
		FetchedAt: suite.now,
	}}
	suite.service = services.NewPricingService(
		suite.costRepo, suite.shippingRepo, suite.auditRepo, suite.currencyRepo, suite.resolver,
		services.WithPricingClock(func() time.Time { return suite.now }),
	)
	suite.currencyRepo.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "TRY"},
		{CurrencyCode: "USD"},
	}, nil).Maybe()
}

func costRecord(site domain.ProductionSite, cost string) *domain.CostRecord {
	return &domain.CostRecord{
		CostRecordID: "cost-" + string(site),
		ProductID:    "NTS-40",
		SiteID:       site,
		UnitCost:     decimal.RequireFromString(cost),
		RecordedOn:   date(2025, 6, 1),
	}
}

func shippingRow(site domain.ProductionSite, carrier, rate string) domain.ShippingRecord {
	return domain.ShippingRecord{
		ShippingRecordID: "ship-" + string(site) + "-" + carrier,
		DestinationID:    "BERLIN",
		SiteID:           site,
		CarrierID:        carrier,
		VehicleType:      domain.VehicleTIR,
		UnitRate:         decimal.RequireFromString(rate),
	}
}

func (suite *PricingServiceTestSuite) quoteRequest() dto.QuoteRequest {
	return dto.QuoteRequest{
		ProductID:     "NTS-40",
		DestinationID: "BERLIN",
		MarginPct:     decimal.NewFromInt(20),
	}
}

func (suite *PricingServiceTestSuite) TestQuote_WorkedExample() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteGebze, mock.Anything).Return(costRecord(domain.SiteGebze, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.shippingRepo.On("FindShippingOptions", ctx, "BERLIN", domain.SiteGebze).Return([]domain.ShippingRecord{shippingRow(domain.SiteGebze, "ACME", "2.00")}, nil)

	result, err := suite.service.Quote(ctx, suite.quoteRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Best)
	best := result.Best

	// cost 10.00 + shipping 2.00 = 12.00, +20% margin = 14.40 TRY/kg
	suite.True(best.SalePrice.Equal(decimal.RequireFromString("14.40")), "got %s", best.SalePrice)
	suite.True(best.SalePriceByCurrency["USD"].Equal(decimal.RequireFromString("0.48")), "got %s", best.SalePriceByCurrency["USD"])
	suite.True(best.SalePriceByCurrencyPerTon["USD"].Equal(decimal.RequireFromString("480")), "got %s", best.SalePriceByCurrencyPerTon["USD"])
	suite.True(best.SalePricePerTon.Equal(decimal.RequireFromString("14400")))
	suite.True(best.HasCompleteData)

	// The two siteless sites still appear, as incomplete placeholders.
	suite.Len(result.Offers, 3)
	incomplete := 0
	for _, o := range result.Offers {
		if !o.HasCompleteData {
			incomplete++
		}
	}
	suite.Equal(2, incomplete)
}

func (suite *PricingServiceTestSuite) TestQuote_PicksCheapestCompleteOffer() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteGebze, mock.Anything).Return(costRecord(domain.SiteGebze, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteTrabzon, mock.Anything).Return(costRecord(domain.SiteTrabzon, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteAdana, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.shippingRepo.On("FindShippingOptions", ctx, "BERLIN", domain.SiteGebze).Return([]domain.ShippingRecord{shippingRow(domain.SiteGebze, "ACME", "2.00")}, nil)
	suite.shippingRepo.On("FindShippingOptions", ctx, "BERLIN", domain.SiteTrabzon).Return([]domain.ShippingRecord{shippingRow(domain.SiteTrabzon, "NORD", "1.50")}, nil)

	result, err := suite.service.Quote(ctx, suite.quoteRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Best)
	suite.Equal(domain.SiteTrabzon, result.Best.SiteID)
	suite.True(result.Best.SalePrice.Equal(decimal.RequireFromString("13.80")))
	suite.Len(result.Offers, 3)
}

func (suite *PricingServiceTestSuite) TestQuote_TieKeepsFirstOffer() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteGebze, mock.Anything).Return(costRecord(domain.SiteGebze, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	// Duplicate lanes at the same rate: both evaluated, first one wins.
	suite.shippingRepo.On("FindShippingOptions", ctx, "BERLIN", domain.SiteGebze).Return([]domain.ShippingRecord{
		shippingRow(domain.SiteGebze, "ACME", "2.00"),
		shippingRow(domain.SiteGebze, "NORD", "2.00"),
	}, nil)

	result, err := suite.service.Quote(ctx, suite.quoteRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Best)
	suite.Equal("ACME", result.Best.CarrierID)
}

func (suite *PricingServiceTestSuite) TestQuote_NoCompleteOffers() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)

	result, err := suite.service.Quote(ctx, suite.quoteRequest())

	suite.Require().NoError(err, "missing data is a displayable result, not an error")
	suite.Nil(result.Best)
	suite.Len(result.Offers, 3)
	for _, o := range result.Offers {
		suite.False(o.HasCompleteData)
	}
}

func (suite *PricingServiceTestSuite) TestQuote_PinnedRoute() {
	ctx := context.Background()
	req := suite.quoteRequest()
	req.PinnedRoute = &dto.PinnedRouteRequest{SiteID: "TR15", CarrierID: "NORD", VehicleType: "TIR"}

	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteTrabzon, mock.Anything).Return(costRecord(domain.SiteTrabzon, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.shippingRepo.On("FindShippingRecord", ctx, "BERLIN", domain.RouteRef{
		SiteID: domain.SiteTrabzon, CarrierID: "NORD", VehicleType: domain.VehicleTIR,
	}).Return([]domain.ShippingRecord{shippingRow(domain.SiteTrabzon, "NORD", "3.00")}, nil)

	result, err := suite.service.Quote(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.Best)
	suite.Equal(domain.SiteTrabzon, result.Best.SiteID)
	suite.Equal("NORD", result.Best.CarrierID)
	suite.True(result.Best.SalePrice.Equal(decimal.RequireFromString("15.60")))
	// Other sites only appear as context placeholders.
	suite.Len(result.Offers, 3)
	complete := 0
	for _, o := range result.Offers {
		if o.HasCompleteData {
			complete++
		}
	}
	suite.Equal(1, complete)
}

func (suite *PricingServiceTestSuite) TestQuote_PinnedRouteMissingShippingFails() {
	ctx := context.Background()
	req := suite.quoteRequest()
	req.PinnedRoute = &dto.PinnedRouteRequest{SiteID: "TR15", CarrierID: "NORD", VehicleType: "TIR"}

	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteTrabzon, mock.Anything).Return(costRecord(domain.SiteTrabzon, "10.00"), nil)
	suite.shippingRepo.On("FindShippingRecord", ctx, "BERLIN", mock.Anything).Return([]domain.ShippingRecord{}, nil)

	_, err := suite.service.Quote(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPinnedRouteUnavailable)
}

func (suite *PricingServiceTestSuite) TestQuote_PinnedRouteMissingCostFails() {
	ctx := context.Background()
	req := suite.quoteRequest()
	req.PinnedRoute = &dto.PinnedRouteRequest{SiteID: "TR16", CarrierID: "NORD", VehicleType: "TIR"}

	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteAdana, mock.Anything).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Quote(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPinnedRouteUnavailable)
}

func (suite *PricingServiceTestSuite) TestSaveQuote_Success() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteGebze, mock.Anything).Return(costRecord(domain.SiteGebze, "10.00"), nil)
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	suite.shippingRepo.On("FindShippingOptions", ctx, "BERLIN", domain.SiteGebze).Return([]domain.ShippingRecord{shippingRow(domain.SiteGebze, "ACME", "2.00")}, nil)
	suite.auditRepo.On("SaveQuoteRecord", ctx, mock.AnythingOfType("domain.QuoteAuditRecord")).Return(nil).Once()

	record, err := suite.service.SaveQuote(ctx, suite.quoteRequest(), "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.QuoteAuditID)
	suite.Equal("user-1", record.RequestedBy)
	suite.Equal("NTS-40", record.ProductID)
	suite.True(record.Offer.SalePrice.Equal(decimal.RequireFromString("14.40")))
	suite.Equal(suite.now, record.CreatedAt)
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestSaveQuote_NoCompleteOfferFails() {
	ctx := context.Background()
	suite.costRepo.On("FindEffectiveCost", ctx, "NTS-40", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.SaveQuote(ctx, suite.quoteRequest(), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.auditRepo.AssertNotCalled(suite.T(), "SaveQuoteRecord", mock.Anything, mock.Anything)
}

func TestPricingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
