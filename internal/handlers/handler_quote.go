package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
	"github.com/ntsmobil/freight_pricing_app/internal/middleware"
	"github.com/ntsmobil/freight_pricing_app/internal/platform/config"
)

// quoteHandler handles quote computation and persistence requests.
type quoteHandler struct {
	pricingService portssvc.PricingSvcFacade
	cfg            *config.Config
}

func newQuoteHandler(ps portssvc.PricingSvcFacade, cfg *config.Config) *quoteHandler {
	return &quoteHandler{pricingService: ps, cfg: cfg}
}

// registerQuoteRoutes registers routes related to quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade, cfg *config.Config) {
	h := newQuoteHandler(pricingService, cfg)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.computeQuote)
		quotes.POST("/save", h.saveQuote)
	}
}

// bindQuoteRequest binds and applies the margin bounds, which are an API
// contract, not an engine rule.
func (h *quoteHandler) bindQuoteRequest(c *gin.Context) (dto.QuoteRequest, bool) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return req, false
	}
	if req.MarginPct.LessThan(h.cfg.MarginMinPct) || req.MarginPct.GreaterThan(h.cfg.MarginMaxPct) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "marginPct must be between " + h.cfg.MarginMinPct.String() + " and " + h.cfg.MarginMaxPct.String(),
		})
		return req, false
	}
	return req, true
}

// computeQuote godoc
// @Summary Compute a delivered price quote
// @Description Prices a product to a destination across every production site, returning all evaluated offers and the cheapest complete one. A pinned route restricts pricing to that exact site/carrier/vehicle.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Quote parameters"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Pinned route has no data"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) computeQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := h.bindQuoteRequest(c)
	if !ok {
		return
	}

	logger.Info("Received quote request",
		slog.String("product_id", req.ProductID),
		slog.String("destination_id", req.DestinationID),
		slog.Any("margin_pct", req.MarginPct),
		slog.Bool("pinned", req.PinnedRoute != nil),
	)

	result, err := h.pricingService.Quote(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPinnedRouteUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to compute quote", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute quote"})
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(result))
}

// saveQuote godoc
// @Summary Save a finalized quote
// @Description Recomputes the quote and appends the selected offer to the audit log.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Quote parameters"
// @Success 201 {object} dto.SavedQuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No complete offer to save"
// @Failure 422 {object} ErrorResponse "Pinned route has no data"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes/save [post]
func (h *quoteHandler) saveQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := h.bindQuoteRequest(c)
	if !ok {
		return
	}

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.pricingService.SaveQuote(c.Request.Context(), req, requesterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPinnedRouteUnavailable):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to save quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save quote"})
		}
		return
	}

	logger.Info("Quote saved", slog.String("quote_audit_id", record.QuoteAuditID))
	c.JSON(http.StatusCreated, dto.ToSavedQuoteResponse(record))
}
