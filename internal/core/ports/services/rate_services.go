package services

import (
	"context"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
)

// RateResolverSvcFacade resolves the exchange-rate snapshot for a calendar
// date. ResolveRate has no error path: it always returns a usable snapshot,
// falling back across prior business days, then to the last known good
// snapshot, then to a built-in default. Staleness is signalled only through
// the snapshot's IsFallback flag.
type RateResolverSvcFacade interface {
	// ResolveRate returns the snapshot in effect for targetDate.
	// A zero targetDate means "today".
	ResolveRate(ctx context.Context, targetDate time.Time) domain.RateSnapshot
}
