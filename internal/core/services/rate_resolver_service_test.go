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
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Fetch(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- In-memory rate cache ---
// Mirrors the storage semantics: historical snapshots are append-only
// (second store of a date is a no-op), latest-good is a single overwritten slot.
type fakeRateCache struct {
	byDate     map[string]domain.RateSnapshot
	latestGood *domain.RateSnapshot
}

func newFakeRateCache() *fakeRateCache {
	return &fakeRateCache{byDate: make(map[string]domain.RateSnapshot)}
}

func (f *fakeRateCache) FindSnapshotByDate(ctx context.Context, asOfDate time.Time) (*domain.RateSnapshot, error) {
	if s, ok := f.byDate[asOfDate.Format(time.DateOnly)]; ok {
		return &s, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRateCache) FindLatestGoodSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	if f.latestGood == nil {
		return nil, apperrors.ErrNotFound
	}
	s := *f.latestGood
	return &s, nil
}

func (f *fakeRateCache) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	key := snapshot.AsOfDate.Format(time.DateOnly)
	if _, ok := f.byDate[key]; !ok {
		f.byDate[key] = snapshot
	}
	return nil
}

func (f *fakeRateCache) SaveLatestGoodSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	f.latestGood = &snapshot
	return nil
}

// --- Test Suite ---
type RateResolverServiceTestSuite struct {
	suite.Suite
	cache  *fakeRateCache
	source *MockRateSource
	now    time.Time
}

func (suite *RateResolverServiceTestSuite) SetupTest() {
	suite.cache = newFakeRateCache()
	suite.source = new(MockRateSource)
	// A Wednesday.
	suite.now = time.Date(2025, 6, 18, 10, 30, 0, 0, time.UTC)
}

func (suite *RateResolverServiceTestSuite) newResolver(lookbackDays, maxAttempts int) services.RateResolverConfig {
	return services.RateResolverConfig{LookbackDays: lookbackDays, MaxFetchAttempts: maxAttempts}
}

func (suite *RateResolverServiceTestSuite) resolver(cfg services.RateResolverConfig) portssvc.RateResolverSvcFacade {
	return services.NewRateResolverService(suite.cache, suite.source, cfg,
		services.WithResolverClock(func() time.Time { return suite.now }))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(30.00),
		"EUR": decimal.NewFromFloat(32.00),
		"CHF": decimal.NewFromFloat(34.00),
	}
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_ExactDateCacheHit() {
	ctx := context.Background()
	target := date(2025, 6, 17)
	suite.cache.byDate[target.Format(time.DateOnly)] = domain.RateSnapshot{
		AsOfDate: target,
		Rates:    testRates(),
	}

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, target)

	suite.Equal(target, snapshot.AsOfDate)
	suite.False(snapshot.IsFallback)
	suite.source.AssertNotCalled(suite.T(), "Fetch", mock.Anything, mock.Anything)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_FetchSuccessIsStored() {
	ctx := context.Background()
	target := date(2025, 6, 17)
	suite.source.On("Fetch", ctx, target).Return(testRates(), nil).Once()

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, target)

	suite.Equal(target, snapshot.AsOfDate)
	suite.False(snapshot.IsFallback)
	suite.True(snapshot.Rates["USD"].Equal(decimal.NewFromFloat(30.00)))

	stored, ok := suite.cache.byDate[target.Format(time.DateOnly)]
	suite.True(ok)
	suite.False(stored.IsFallback)
	suite.Require().NotNil(suite.cache.latestGood)
	suite.Equal(target, suite.cache.latestGood.AsOfDate)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_SecondResolveServedFromCache() {
	ctx := context.Background()
	target := date(2025, 6, 17)
	suite.source.On("Fetch", ctx, target).Return(testRates(), nil).Once()

	resolver := suite.resolver(suite.newResolver(15, 10))
	first := resolver.ResolveRate(ctx, target)
	second := resolver.ResolveRate(ctx, target)

	suite.Equal(first.AsOfDate, second.AsOfDate)
	suite.False(second.IsFallback)
	suite.source.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_WeekendNeverFetched() {
	ctx := context.Background()
	saturday := date(2025, 6, 14)
	friday := date(2025, 6, 13)
	suite.source.On("Fetch", ctx, friday).Return(testRates(), nil).Once()

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, saturday)

	suite.Equal(friday, snapshot.AsOfDate)
	suite.True(snapshot.IsFallback)
	// The Saturday itself must not have been fetched.
	suite.source.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_EarlierDayCacheHitTaggedFallback() {
	ctx := context.Background()
	monday := date(2025, 6, 16)
	friday := date(2025, 6, 13)
	suite.cache.byDate[friday.Format(time.DateOnly)] = domain.RateSnapshot{
		AsOfDate: friday,
		Rates:    testRates(),
	}
	suite.source.On("Fetch", ctx, monday).Return(nil, apperrors.ErrNoRateData).Once()

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, monday)

	suite.Equal(friday, snapshot.AsOfDate)
	suite.True(snapshot.IsFallback, "an earlier-day hit must be tagged fallback for this request")
	// The stored entry keeps its own flag untouched.
	suite.False(suite.cache.byDate[friday.Format(time.DateOnly)].IsFallback)
	suite.source.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_AttemptBudgetThenLatestGood() {
	ctx := context.Background()
	lastGood := domain.RateSnapshot{AsOfDate: date(2025, 5, 30), Rates: testRates()}
	suite.cache.latestGood = &lastGood
	suite.source.On("Fetch", ctx, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNoRateData)

	snapshot := suite.resolver(suite.newResolver(15, 3)).ResolveRate(ctx, date(2025, 6, 18))

	suite.Equal(lastGood.AsOfDate, snapshot.AsOfDate)
	suite.True(snapshot.IsFallback)
	suite.source.AssertNumberOfCalls(suite.T(), "Fetch", 3)
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_ExhaustedUsesBuiltInDefaults() {
	ctx := context.Background()
	suite.source.On("Fetch", ctx, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNoRateData)

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, date(2025, 6, 18))

	suite.True(snapshot.IsFallback)
	suite.True(snapshot.AsOfDate.IsZero())
	suite.True(snapshot.Rates["USD"].Equal(decimal.NewFromFloat(36.50)))
	suite.True(snapshot.Rates["EUR"].Equal(decimal.NewFromFloat(38.20)))
	suite.True(snapshot.Rates["CHF"].Equal(decimal.NewFromFloat(41.10)))
}

func (suite *RateResolverServiceTestSuite) TestResolveRate_ZeroDateMeansToday() {
	ctx := context.Background()
	today := date(2025, 6, 18)
	suite.source.On("Fetch", ctx, today).Return(testRates(), nil).Once()

	snapshot := suite.resolver(suite.newResolver(15, 10)).ResolveRate(ctx, time.Time{})

	suite.Equal(today, snapshot.AsOfDate)
	suite.False(snapshot.IsFallback)
}

func TestRateResolverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateResolverServiceTestSuite))
}
