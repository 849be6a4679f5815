package repositories

import (
	"context"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSnapshotReader defines read operations against the historical rate cache.
type RateSnapshotReader interface {
	// FindSnapshotByDate returns the snapshot stored for the exact date.
	FindSnapshotByDate(ctx context.Context, asOfDate time.Time) (*domain.RateSnapshot, error)

	// FindLatestGoodSnapshot returns the unkeyed last-known-good snapshot.
	FindLatestGoodSnapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

// RateSnapshotWriter defines write operations against the rate cache.
// The historical cache is append-only: storing a date twice is a no-op,
// never an overwrite.
type RateSnapshotWriter interface {
	// SaveSnapshot persists a snapshot keyed by its AsOfDate. Idempotent.
	SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error

	// SaveLatestGoodSnapshot overwrites the single last-known-good slot.
	SaveLatestGoodSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// RateSnapshotRepositoryFacade combines the rate cache interfaces.
type RateSnapshotRepositoryFacade interface {
	RateSnapshotReader
	RateSnapshotWriter
}

// RateSource is the external daily exchange-rate feed. Any transport-level
// failure surfaces as apperrors.ErrNoRateData, never as a crash.
type RateSource interface {
	// Fetch returns the rates published for the given calendar date, as
	// base currency units per one unit of foreign currency.
	Fetch(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error)
}
