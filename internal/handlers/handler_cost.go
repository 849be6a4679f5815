package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
	"github.com/ntsmobil/freight_pricing_app/internal/middleware"
)

// costHandler handles cost ledger requests.
type costHandler struct {
	costService portssvc.CostSvcFacade
}

func newCostHandler(cs portssvc.CostSvcFacade) *costHandler {
	return &costHandler{costService: cs}
}

// registerCostRoutes registers routes related to the cost ledger.
func registerCostRoutes(rg *gin.RouterGroup, costService portssvc.CostSvcFacade) {
	h := newCostHandler(costService)

	rg.GET("/products", h.listProducts)

	costs := rg.Group("/cost-records")
	{
		costs.POST("", h.createCostRecord)
		costs.POST("/bulk-increase", h.bulkIncrease)
		costs.GET("/:productID/:siteID", h.listCostHistory)
		costs.GET("/:productID/:siteID/effective", h.getEffectiveCost)
		costs.DELETE("/:productID/:siteID", h.purgeCostRecords)
	}
}

// listProducts godoc
// @Summary List known products
// @Description Returns the distinct product IDs present in the cost ledger.
// @Tags costs
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /products [get]
func (h *costHandler) listProducts(c *gin.Context) {
	products, err := h.costService.ListProducts(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list products"})
		return
	}
	if products == nil {
		products = []string{}
	}
	c.JSON(http.StatusOK, products)
}

// createCostRecord godoc
// @Summary Append a cost record
// @Description Appends a new per-kg cost record for a (product, site) pair. Existing records are never modified.
// @Tags costs
// @Accept json
// @Produce json
// @Param record body dto.CreateCostRecordRequest true "Cost record details"
// @Success 201 {object} dto.CostRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-records [post]
func (h *costHandler) createCostRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCostRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.costService.RecordCost(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to record cost", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record cost"})
		return
	}

	logger.Info("Cost record created", slog.String("cost_record_id", record.CostRecordID))
	c.JSON(http.StatusCreated, dto.ToCostRecordResponse(record))
}

// bulkIncrease godoc
// @Summary Apply a percentage increase to all current costs
// @Description Appends a new record per (product, site) with the effective cost scaled by the given percentage. Repeated applications compound.
// @Tags costs
// @Accept json
// @Produce json
// @Param change body dto.BulkIncreaseRequest true "Percentage change"
// @Success 200 {object} dto.BulkChangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-records/bulk-increase [post]
func (h *costHandler) bulkIncrease(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkIncreaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	count, err := h.costService.BulkIncreaseCosts(c.Request.Context(), req.Pct, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to apply bulk cost increase", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply bulk cost increase"})
		return
	}

	logger.Info("Bulk cost increase applied", slog.Int("records", count), slog.Any("pct", req.Pct))
	c.JSON(http.StatusOK, dto.BulkChangeResponse{Affected: int64(count), Pct: req.Pct})
}

// listCostHistory godoc
// @Summary List cost history
// @Description Returns every cost record for a (product, site) pair, newest first.
// @Tags costs
// @Produce json
// @Param productID path string true "Product ID"
// @Param siteID path string true "Production site code"
// @Success 200 {array} dto.CostRecordResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-records/{productID}/{siteID} [get]
func (h *costHandler) listCostHistory(c *gin.Context) {
	records, err := h.costService.ListCostHistory(c.Request.Context(), c.Param("productID"), domain.ProductionSite(c.Param("siteID")))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list cost history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list cost history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListCostRecordResponse(records))
}

// getEffectiveCost godoc
// @Summary Get the effective cost
// @Description Returns the cost record in effect at the given as-of date (query param asOf, YYYY-MM-DD; defaults to latest).
// @Tags costs
// @Produce json
// @Param productID path string true "Product ID"
// @Param siteID path string true "Production site code"
// @Param asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} dto.CostRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-records/{productID}/{siteID}/effective [get]
func (h *costHandler) getEffectiveCost(c *gin.Context) {
	var asOf time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be formatted YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	record, err := h.costService.EffectiveCost(c.Request.Context(), c.Param("productID"), domain.ProductionSite(c.Param("siteID")), asOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No cost record found"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get effective cost", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get effective cost"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCostRecordResponse(record))
}

// purgeCostRecords godoc
// @Summary Purge cost records
// @Description Deletes every cost record for a (product, site) pair. This is the only delete path into the ledger.
// @Tags costs
// @Produce json
// @Param productID path string true "Product ID"
// @Param siteID path string true "Production site code"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /cost-records/{productID}/{siteID} [delete]
func (h *costHandler) purgeCostRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deleted, err := h.costService.PurgeCostRecords(c.Request.Context(), c.Param("productID"), domain.ProductionSite(c.Param("siteID")))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to purge cost records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge cost records"})
		return
	}
	logger.Info("Cost records purged", slog.Int64("deleted", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
