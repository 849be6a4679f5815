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
)

// shippingHandler handles shipping rate table requests.
type shippingHandler struct {
	shippingService portssvc.ShippingSvcFacade
}

func newShippingHandler(ss portssvc.ShippingSvcFacade) *shippingHandler {
	return &shippingHandler{shippingService: ss}
}

// registerShippingRoutes registers routes related to the shipping rate table.
func registerShippingRoutes(rg *gin.RouterGroup, shippingService portssvc.ShippingSvcFacade) {
	h := newShippingHandler(shippingService)

	rg.GET("/destinations", h.listDestinations)

	shipping := rg.Group("/shipping-records")
	{
		shipping.POST("", h.saveShippingRecord)
		shipping.POST("/bulk-markup", h.bulkMarkup)
		shipping.GET("/:destinationID", h.listShippingOptions)
		shipping.PUT("/:destinationID", h.replaceShippingRecords)
	}
}

// listDestinations godoc
// @Summary List destinations
// @Description Returns the distinct destination cities in the shipping rate table.
// @Tags shipping
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /destinations [get]
func (h *shippingHandler) listDestinations(c *gin.Context) {
	destinations, err := h.shippingService.ListDestinations(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list destinations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list destinations"})
		return
	}
	if destinations == nil {
		destinations = []string{}
	}
	c.JSON(http.StatusOK, destinations)
}

// listShippingOptions godoc
// @Summary List shipping options for a destination
// @Description Returns every shipping rate row for a destination, across all production sites.
// @Tags shipping
// @Produce json
// @Param destinationID path string true "Destination city"
// @Success 200 {array} dto.ShippingRecordResponse
// @Security BearerAuth
// @Router /shipping-records/{destinationID} [get]
func (h *shippingHandler) listShippingOptions(c *gin.Context) {
	records, err := h.shippingService.ListShippingOptions(c.Request.Context(), c.Param("destinationID"))
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list shipping options", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list shipping options"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListShippingRecordResponse(records))
}

// saveShippingRecord godoc
// @Summary Create or update a shipping rate row
// @Description Upserts one row by its ID; an empty ID creates a new row.
// @Tags shipping
// @Accept json
// @Produce json
// @Param record body dto.SaveShippingRecordRequest true "Shipping record details"
// @Success 201 {object} dto.ShippingRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipping-records [post]
func (h *shippingHandler) saveShippingRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveShippingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.shippingService.SaveShippingRecord(c.Request.Context(), req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to save shipping record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save shipping record"})
		return
	}

	logger.Info("Shipping record saved", slog.String("shipping_record_id", record.ShippingRecordID))
	c.JSON(http.StatusCreated, dto.ToShippingRecordResponse(record))
}

// replaceShippingRecords godoc
// @Summary Replace the record set for a destination
// @Description Makes the stored set match the request exactly: rows are matched by ID, present ones upserted, absent ones deleted. Atomic.
// @Tags shipping
// @Accept json
// @Produce json
// @Param destinationID path string true "Destination city"
// @Param records body dto.ReplaceShippingRecordsRequest true "Desired record set"
// @Success 200 {array} dto.ShippingRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipping-records/{destinationID} [put]
func (h *shippingHandler) replaceShippingRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReplaceShippingRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	destinationID := c.Param("destinationID")
	records, err := h.shippingService.ReplaceShippingRecords(c.Request.Context(), destinationID, req.Records, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to replace shipping records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to replace shipping records"})
		return
	}

	logger.Info("Shipping records replaced", slog.String("destination_id", destinationID), slog.Int("records", len(records)))
	c.JSON(http.StatusOK, dto.ToListShippingRecordResponse(records))
}

// bulkMarkup godoc
// @Summary Apply a percentage markup to all shipping rates
// @Description Scales every unit rate by the given percentage in one operation. Repeated applications compound.
// @Tags shipping
// @Accept json
// @Produce json
// @Param change body dto.BulkIncreaseRequest true "Percentage change"
// @Success 200 {object} dto.BulkChangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipping-records/bulk-markup [post]
func (h *shippingHandler) bulkMarkup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkIncreaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	affected, err := h.shippingService.ApplyBulkMarkup(c.Request.Context(), req.Pct, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to apply bulk markup", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply bulk markup"})
		return
	}

	logger.Info("Bulk markup applied", slog.Int64("affected", affected), slog.Any("pct", req.Pct))
	c.JSON(http.StatusOK, dto.BulkChangeResponse{Affected: affected, Pct: req.Pct})
}
