package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
	"github.com/ntsmobil/freight_pricing_app/internal/utils/mapping"
)

// PgxRateSnapshotRepository implements the rate cache ports using pgxpool.
// The historical table is append-only: a date, once populated, is never
// overwritten. The latest-good slot is a separate single-row table.
type PgxRateSnapshotRepository struct {
	BaseRepository
}

// NewPgxRateSnapshotRepository creates a new PgxRateSnapshotRepository.
func NewPgxRateSnapshotRepository(db *pgxpool.Pool) *PgxRateSnapshotRepository {
	return &PgxRateSnapshotRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanRateSnapshot(row pgx.Row) (*domain.RateSnapshot, error) {
	var m models.RateSnapshot
	if err := row.Scan(&m.AsOfDate, &m.Rates, &m.IsFallback, &m.FetchedAt); err != nil {
		return nil, err
	}
	snapshot, err := mapping.ToDomainRateSnapshot(m)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SaveSnapshot stores a snapshot keyed by its date. ON CONFLICT DO NOTHING
// makes the write idempotent and keeps the first stored snapshot immutable.
func (r *PgxRateSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	m, err := mapping.ToModelRateSnapshot(snapshot)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode rate snapshot", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO rate_snapshots (as_of_date, rates, is_fallback, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (as_of_date) DO NOTHING`,
		m.AsOfDate, m.Rates, m.IsFallback, m.FetchedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert rate snapshot", err)
	}
	return nil
}

// FindSnapshotByDate returns the snapshot stored for the exact date.
func (r *PgxRateSnapshotRepository) FindSnapshotByDate(ctx context.Context, asOfDate time.Time) (*domain.RateSnapshot, error) {
	snapshot, err := scanRateSnapshot(r.Pool.QueryRow(ctx, `
		SELECT as_of_date, rates, is_fallback, fetched_at
		FROM rate_snapshots WHERE as_of_date = $1`,
		asOfDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate snapshot for date " + asOfDate.Format(time.DateOnly))
		}
		return nil, apperrors.NewAppError(500, "failed to query rate snapshot", err)
	}
	return snapshot, nil
}

// SaveLatestGoodSnapshot overwrites the single last-known-good slot.
func (r *PgxRateSnapshotRepository) SaveLatestGoodSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	m, err := mapping.ToModelRateSnapshot(snapshot)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode rate snapshot", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO latest_rate_snapshot (slot, as_of_date, rates, is_fallback, fetched_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE SET
			as_of_date = EXCLUDED.as_of_date,
			rates = EXCLUDED.rates,
			is_fallback = EXCLUDED.is_fallback,
			fetched_at = EXCLUDED.fetched_at`,
		m.AsOfDate, m.Rates, m.IsFallback, m.FetchedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert latest good snapshot", err)
	}
	return nil
}

// FindLatestGoodSnapshot returns the unkeyed last-known-good snapshot.
func (r *PgxRateSnapshotRepository) FindLatestGoodSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshot, err := scanRateSnapshot(r.Pool.QueryRow(ctx, `
		SELECT as_of_date, rates, is_fallback, fetched_at
		FROM latest_rate_snapshot WHERE slot = 1`,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate snapshot stored yet")
		}
		return nil, apperrors.NewAppError(500, "failed to query latest good snapshot", err)
	}
	return snapshot, nil
}
