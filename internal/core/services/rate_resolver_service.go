package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
)

// RateResolverConfig bounds the backward search over calendar days.
// The search stops at whichever limit is hit first.
type RateResolverConfig struct {
	LookbackDays     int // absolute calendar-day window behind the target date
	MaxFetchAttempts int // attempted business-day fetches; weekends do not count
}

// rateResolverService resolves the rate snapshot for a calendar date.
// It has no error path: every request ends in a usable snapshot.
type rateResolverService struct {
	cache  portsrepo.RateSnapshotRepositoryFacade
	source portsrepo.RateSource
	cfg    RateResolverConfig
	now    func() time.Time
	logger *slog.Logger
}

// RateResolverOption customizes a rateResolverService.
type RateResolverOption func(*rateResolverService)

// WithResolverClock replaces the wall clock, for tests.
func WithResolverClock(clock func() time.Time) RateResolverOption {
	return func(s *rateResolverService) {
		s.now = clock
	}
}

// WithResolverLogger replaces the default logger.
func WithResolverLogger(logger *slog.Logger) RateResolverOption {
	return func(s *rateResolverService) {
		s.logger = logger
	}
}

// NewRateResolverService creates the exchange rate resolver. The cache is an
// injected collaborator (not ambient state) so the resolver can be tested
// with a fake clock and fake source.
func NewRateResolverService(cache portsrepo.RateSnapshotRepositoryFacade, source portsrepo.RateSource, cfg RateResolverConfig, opts ...RateResolverOption) portssvc.RateResolverSvcFacade {
	s := &rateResolverService{
		cache:  cache,
		source: source,
		cfg:    cfg,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveRate walks backward from targetDate until it finds a snapshot:
// cache hit, successful fetch, last known good, then built-in defaults.
// Only a snapshot dated exactly targetDate comes back without the fallback
// flag (unless it was itself stored as a fallback).
func (s *rateResolverService) ResolveRate(ctx context.Context, targetDate time.Time) domain.RateSnapshot {
	if targetDate.IsZero() {
		targetDate = s.now()
	}
	targetDate = dateOnly(targetDate)

	attempts := 0
	for offset := 0; offset <= s.cfg.LookbackDays; offset++ {
		day := targetDate.AddDate(0, 0, -offset)

		cached, err := s.cache.FindSnapshotByDate(ctx, day)
		if err == nil && cached != nil {
			return cached.WithFallback(cached.IsFallback || offset != 0)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("rate cache lookup failed, continuing search",
				slog.Time("date", day), slog.String("error", err.Error()))
		}

		// Weekends have no published rates; skipping them does not
		// consume the fetch budget.
		if isWeekend(day) {
			continue
		}
		if attempts >= s.cfg.MaxFetchAttempts {
			break
		}
		attempts++

		rates, err := s.source.Fetch(ctx, day)
		if err != nil {
			s.logger.Debug("rate source had no data for date",
				slog.Time("date", day), slog.String("error", err.Error()))
			continue
		}

		snapshot := domain.RateSnapshot{
			AsOfDate:   day,
			Rates:      rates,
			IsFallback: offset != 0,
			FetchedAt:  s.now(),
		}
		// Cache writes are best-effort: a storage hiccup must never block
		// a quote.
		if err := s.cache.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("failed to store rate snapshot",
				slog.Time("date", day), slog.String("error", err.Error()))
		}
		if err := s.cache.SaveLatestGoodSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("failed to store latest good snapshot",
				slog.Time("date", day), slog.String("error", err.Error()))
		}
		return snapshot
	}

	lastGood, err := s.cache.FindLatestGoodSnapshot(ctx)
	if err == nil && lastGood != nil {
		return lastGood.WithFallback(true)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("latest good snapshot lookup failed",
			slog.String("error", err.Error()))
	}

	s.logger.Warn("rate search exhausted with nothing stored, using built-in default rates",
		slog.Time("target_date", targetDate),
		slog.Int("attempts", attempts))
	return domain.DefaultRateSnapshot(s.now())
}

// dateOnly normalizes t to midnight UTC, the cache's key precision.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
