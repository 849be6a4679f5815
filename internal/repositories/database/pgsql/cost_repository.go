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

const costRecordColumns = `cost_record_id, product_id, site_id, unit_cost, recorded_on, created_at, created_by, last_updated_at, last_updated_by`

// PgxCostRepository implements the cost ledger ports using pgxpool.
// The ledger is append-only: there is no UPDATE statement in this file.
type PgxCostRepository struct {
	BaseRepository
}

// NewPgxCostRepository creates a new PgxCostRepository.
func NewPgxCostRepository(db *pgxpool.Pool) *PgxCostRepository {
	return &PgxCostRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanCostRecord(row pgx.Row) (*domain.CostRecord, error) {
	var m models.CostRecord
	err := row.Scan(
		&m.CostRecordID, &m.ProductID, &m.SiteID, &m.UnitCost, &m.RecordedOn,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	record := mapping.ToDomainCostRecord(m)
	return &record, nil
}

// SaveCostRecord appends a new cost record.
func (r *PgxCostRepository) SaveCostRecord(ctx context.Context, record domain.CostRecord) error {
	m := mapping.ToModelCostRecord(record)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO cost_records (`+costRecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.CostRecordID, m.ProductID, m.SiteID, m.UnitCost, m.RecordedOn,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cost record", err)
	}
	return nil
}

// FindEffectiveCost returns the record with the latest recorded_on not after
// asOf. Insertion order is irrelevant; only the recorded date decides.
// A zero asOf means "latest overall".
func (r *PgxCostRepository) FindEffectiveCost(ctx context.Context, productID string, siteID domain.ProductionSite, asOf time.Time) (*domain.CostRecord, error) {
	query := `SELECT ` + costRecordColumns + ` FROM cost_records WHERE product_id = $1 AND site_id = $2`
	args := []any{productID, string(siteID)}
	if !asOf.IsZero() {
		query += ` AND recorded_on <= $3`
		args = append(args, asOf)
	}
	query += ` ORDER BY recorded_on DESC, created_at DESC LIMIT 1`

	record, err := scanCostRecord(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no cost record for product " + productID + " at site " + string(siteID))
		}
		return nil, apperrors.NewAppError(500, "failed to query effective cost", err)
	}
	return record, nil
}

// ListCostHistory returns all records for the pair, newest first.
func (r *PgxCostRepository) ListCostHistory(ctx context.Context, productID string, siteID domain.ProductionSite) ([]domain.CostRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+costRecordColumns+` FROM cost_records
		WHERE product_id = $1 AND site_id = $2
		ORDER BY recorded_on DESC, created_at DESC`,
		productID, string(siteID),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost history", err)
	}
	defer rows.Close()

	var records []domain.CostRecord
	for rows.Next() {
		record, err := scanCostRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost record", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate cost records", err)
	}
	return records, nil
}

// ListProducts returns the distinct product IDs present in the ledger.
func (r *PgxCostRepository) ListProducts(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT product_id FROM cost_records ORDER BY product_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product id", err)
		}
		products = append(products, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate products", err)
	}
	return products, nil
}

// ListLatestCosts returns the effective record per (product, site) pair.
func (r *PgxCostRepository) ListLatestCosts(ctx context.Context) ([]domain.CostRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT ON (product_id, site_id) `+costRecordColumns+`
		FROM cost_records
		ORDER BY product_id, site_id, recorded_on DESC, created_at DESC`,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest costs", err)
	}
	defer rows.Close()

	var records []domain.CostRecord
	for rows.Next() {
		record, err := scanCostRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost record", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate cost records", err)
	}
	return records, nil
}

// PurgeCostRecords deletes every record for the pair and reports how many
// rows went away. This is the only delete path into the ledger.
func (r *PgxCostRepository) PurgeCostRecords(ctx context.Context, productID string, siteID domain.ProductionSite) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM cost_records WHERE product_id = $1 AND site_id = $2`,
		productID, string(siteID),
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge cost records", err)
	}
	return tag.RowsAffected(), nil
}
