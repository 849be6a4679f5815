package services

import (
	"context"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// PricingSvcFacade is the caller-facing quote API. Quote never fails for
// "no data" conditions; it returns a structured result with incomplete rows
// so callers can render a full comparison table. The single hard error is
// apperrors.ErrPinnedRouteUnavailable for a pinned route with missing data.
type PricingSvcFacade interface {
	// Quote resolves the applicable rate snapshot and prices the request.
	Quote(ctx context.Context, req dto.QuoteRequest) (*domain.QuoteResult, error)

	// QuoteWithSnapshot prices the request against an already resolved
	// snapshot (what-if and display flows).
	QuoteWithSnapshot(ctx context.Context, req dto.QuoteRequest, snapshot domain.RateSnapshot) (*domain.QuoteResult, error)

	// SaveQuote recomputes the request, then appends the selected offer
	// plus request metadata to the audit log.
	SaveQuote(ctx context.Context, req dto.QuoteRequest, requesterUserID string) (*domain.QuoteAuditRecord, error)
}
