package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
)

// PgxQuoteAuditRepository appends finalized quotes to the audit log. The
// engine never reads this table back; it exists for traceability.
type PgxQuoteAuditRepository struct {
	BaseRepository
}

// NewPgxQuoteAuditRepository creates a new PgxQuoteAuditRepository.
func NewPgxQuoteAuditRepository(db *pgxpool.Pool) *PgxQuoteAuditRepository {
	return &PgxQuoteAuditRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveQuoteRecord appends one audit row. The selected offer is stored as a
// JSONB document so the full priced breakdown survives schema evolution.
func (r *PgxQuoteAuditRepository) SaveQuoteRecord(ctx context.Context, record domain.QuoteAuditRecord) error {
	offer, err := json.Marshal(record.Offer)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode quote offer", err)
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO quote_audit (
			quote_audit_id, product_id, destination_id, margin_pct, offer,
			rate_as_of_date, requested_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.QuoteAuditID, record.ProductID, record.DestinationID, record.MarginPct,
		offer, record.RateAsOfDate, record.RequestedBy, record.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert quote audit record", err)
	}
	return nil
}
