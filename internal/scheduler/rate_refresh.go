// Package scheduler runs background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
)

// RateRefreshConfig holds the scheduling knobs for the daily rate refresh.
type RateRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// RateRefreshService pre-resolves the current day's exchange rate snapshot on
// a cron schedule so that quote requests during business hours are served from
// the snapshot store instead of waiting on the upstream source.
type RateRefreshService struct {
	scheduler *gocron.Scheduler
	config    RateRefreshConfig
	resolver  portssvc.RateResolverSvcFacade
	logger    *slog.Logger

	refreshRunning      bool
	refreshMutex        sync.Mutex
	lastRefreshStarted  time.Time
	lastRefreshFinished time.Time
}

// NewRateRefreshService creates a rate refresh service. The scheduler is not
// started until Start is called.
func NewRateRefreshService(resolver portssvc.RateResolverSvcFacade, config RateRefreshConfig, logger *slog.Logger) *RateRefreshService {
	return &RateRefreshService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    config,
		resolver:  resolver,
		logger:    logger,
	}
}

// Start registers the cron job and launches the scheduler. The scheduler is
// stopped when ctx is cancelled.
func (s *RateRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Rate refresh scheduler disabled by configuration")
		return nil
	}

	s.logger.Info("Starting rate refresh scheduler", slog.String("cron", s.config.CronSchedule))

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshRates(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rate refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.logger.Info("Stopping rate refresh scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRefresh kicks off a refresh outside the cron schedule.
func (s *RateRefreshService) TriggerManualRefresh(ctx context.Context) {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		s.logger.Info("Rate refresh already in progress, ignoring manual trigger")
		return
	}
	s.refreshMutex.Unlock()

	go s.refreshRates(ctx)
}

func (s *RateRefreshService) refreshRates(ctx context.Context) {
	startTime := time.Now()

	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		s.logger.Info("Rate refresh already in progress, skipping this run")
		return
	}
	s.refreshRunning = true
	s.lastRefreshStarted = startTime
	s.refreshMutex.Unlock()

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.lastRefreshFinished = time.Now()
		s.refreshMutex.Unlock()
	}()

	// Resolving with a zero date targets the current day. The resolver
	// persists whatever it finds, so a successful run warms both the
	// per-date snapshot and the latest-good slot.
	snapshot := s.resolver.ResolveRate(ctx, time.Time{})

	s.logger.Info("Rate refresh completed",
		slog.String("as_of_date", snapshot.AsOfDate.Format(time.DateOnly)),
		slog.Bool("is_fallback", snapshot.IsFallback),
		slog.String("duration", time.Since(startTime).String()),
	)
}

// Status reports the current scheduler state.
func (s *RateRefreshService) Status() map[string]any {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	return map[string]any{
		"refresh_running":          s.refreshRunning,
		"cron_schedule":            s.config.CronSchedule,
		"enabled":                  s.config.Enabled,
		"last_refresh_started_at":  s.lastRefreshStarted,
		"last_refresh_finished_at": s.lastRefreshFinished,
	}
}
