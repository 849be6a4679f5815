package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
	"github.com/ntsmobil/freight_pricing_app/internal/utils/mapping"
)

const shippingRecordColumns = `shipping_record_id, destination_id, site_id, carrier_id, vehicle_type, unit_rate, created_at, created_by, last_updated_at, last_updated_by`

// PgxShippingRepository implements the shipping rate table ports using
// pgxpool. Rates carry no history; writes overwrite the current table.
type PgxShippingRepository struct {
	BaseRepository
}

// NewPgxShippingRepository creates a new PgxShippingRepository.
func NewPgxShippingRepository(db *pgxpool.Pool) *PgxShippingRepository {
	return &PgxShippingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanShippingRecord(row pgx.Row) (*domain.ShippingRecord, error) {
	var m models.ShippingRecord
	err := row.Scan(
		&m.ShippingRecordID, &m.DestinationID, &m.SiteID, &m.CarrierID, &m.VehicleType,
		&m.UnitRate, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	record := mapping.ToDomainShippingRecord(m)
	return &record, nil
}

func (r *PgxShippingRepository) queryRecords(ctx context.Context, query string, args ...any) ([]domain.ShippingRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query shipping records", err)
	}
	defer rows.Close()

	var records []domain.ShippingRecord
	for rows.Next() {
		record, err := scanShippingRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan shipping record", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate shipping records", err)
	}
	return records, nil
}

// FindShippingOptions returns every row for (destination, site), duplicates
// included.
func (r *PgxShippingRepository) FindShippingOptions(ctx context.Context, destinationID string, siteID domain.ProductionSite) ([]domain.ShippingRecord, error) {
	return r.queryRecords(ctx, `
		SELECT `+shippingRecordColumns+` FROM shipping_records
		WHERE destination_id = $1 AND site_id = $2
		ORDER BY carrier_id, vehicle_type, created_at`,
		destinationID, string(siteID),
	)
}

// FindShippingRecord returns rows matching the exact route tuple.
func (r *PgxShippingRepository) FindShippingRecord(ctx context.Context, destinationID string, route domain.RouteRef) ([]domain.ShippingRecord, error) {
	return r.queryRecords(ctx, `
		SELECT `+shippingRecordColumns+` FROM shipping_records
		WHERE destination_id = $1 AND site_id = $2 AND carrier_id = $3 AND vehicle_type = $4
		ORDER BY created_at`,
		destinationID, string(route.SiteID), route.CarrierID, string(route.VehicleType),
	)
}

// ListByDestination returns every row for a destination across sites.
func (r *PgxShippingRepository) ListByDestination(ctx context.Context, destinationID string) ([]domain.ShippingRecord, error) {
	return r.queryRecords(ctx, `
		SELECT `+shippingRecordColumns+` FROM shipping_records
		WHERE destination_id = $1
		ORDER BY site_id, carrier_id, vehicle_type`,
		destinationID,
	)
}

// ListDestinations returns the distinct destination IDs.
func (r *PgxShippingRepository) ListDestinations(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT destination_id FROM shipping_records ORDER BY destination_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query destinations", err)
	}
	defer rows.Close()

	var destinations []string
	for rows.Next() {
		var destinationID string
		if err := rows.Scan(&destinationID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan destination id", err)
		}
		destinations = append(destinations, destinationID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate destinations", err)
	}
	return destinations, nil
}

func upsertShippingRecord(ctx context.Context, tx pgx.Tx, m models.ShippingRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO shipping_records (`+shippingRecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (shipping_record_id) DO UPDATE SET
			destination_id = EXCLUDED.destination_id,
			site_id = EXCLUDED.site_id,
			carrier_id = EXCLUDED.carrier_id,
			vehicle_type = EXCLUDED.vehicle_type,
			unit_rate = EXCLUDED.unit_rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		m.ShippingRecordID, m.DestinationID, m.SiteID, m.CarrierID, m.VehicleType,
		m.UnitRate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return err
}

// SaveShippingRecord inserts or updates a single row by its ID.
func (r *PgxShippingRepository) SaveShippingRecord(ctx context.Context, record domain.ShippingRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := upsertShippingRecord(ctx, tx, mapping.ToModelShippingRecord(record)); err != nil {
		return apperrors.NewAppError(500, "failed to upsert shipping record", err)
	}
	return r.Commit(ctx, tx)
}

// ReplaceShippingRecords makes the stored set for a destination match the
// given one in a single transaction: rows in the set are upserted, stored
// rows whose IDs are absent are deleted.
func (r *PgxShippingRepository) ReplaceShippingRecords(ctx context.Context, destinationID string, records []domain.ShippingRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	keepIDs := make([]string, 0, len(records))
	for _, record := range records {
		keepIDs = append(keepIDs, record.ShippingRecordID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM shipping_records
		WHERE destination_id = $1 AND shipping_record_id != ALL($2)`,
		destinationID, keepIDs,
	); err != nil {
		return apperrors.NewAppError(500, "failed to delete removed shipping records", err)
	}

	for _, record := range records {
		if err := upsertShippingRecord(ctx, tx, mapping.ToModelShippingRecord(record)); err != nil {
			return apperrors.NewAppError(500, "failed to upsert shipping record "+record.ShippingRecordID, err)
		}
	}
	return r.Commit(ctx, tx)
}

// ApplyBulkMarkup scales every unit rate by (1 + pct/100) in one statement.
// Values stay unrounded in storage; repeated applications compound.
func (r *PgxShippingRepository) ApplyBulkMarkup(ctx context.Context, pct decimal.Decimal, updaterUserID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE shipping_records
		SET unit_rate = unit_rate * (1 + $1::numeric / 100),
			last_updated_at = $2,
			last_updated_by = $3`,
		pct, time.Now().UTC(), updaterUserID,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to apply bulk markup", err)
	}
	return tag.RowsAffected(), nil
}
