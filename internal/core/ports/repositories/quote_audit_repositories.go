package repositories

import (
	"context"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
)

// QuoteAuditWriter appends finalized quotes to the audit log. The log is
// write-only from the engine's perspective; nothing here reads it back.
type QuoteAuditWriter interface {
	// SaveQuoteRecord appends one audit row.
	SaveQuoteRecord(ctx context.Context, record domain.QuoteAuditRecord) error
}
