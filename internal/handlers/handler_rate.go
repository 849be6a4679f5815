package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// RateRefresher triggers an out-of-schedule snapshot refresh and reports
// the background refresh state.
type RateRefresher interface {
	TriggerManualRefresh(ctx context.Context)
	Status() map[string]any
}

// rateHandler exposes the exchange rate resolver.
type rateHandler struct {
	resolver  portssvc.RateResolverSvcFacade
	refresher RateRefresher
}

func newRateHandler(rs portssvc.RateResolverSvcFacade, refresher RateRefresher) *rateHandler {
	return &rateHandler{resolver: rs, refresher: refresher}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, resolver portssvc.RateResolverSvcFacade, refresher RateRefresher) {
	h := newRateHandler(resolver, refresher)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getTodayRates)
		rates.GET("/:date", h.getRatesForDate)
		rates.POST("/refresh", h.triggerRefresh)
	}
}

// getTodayRates godoc
// @Summary Get today's exchange rates
// @Description Resolves the snapshot in effect today, falling back across prior business days when needed.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RateSnapshotResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) getTodayRates(c *gin.Context) {
	snapshot := h.resolver.ResolveRate(c.Request.Context(), time.Time{})
	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snapshot))
}

// getRatesForDate godoc
// @Summary Get exchange rates for a date
// @Description Resolves the snapshot in effect for the given calendar date (YYYY-MM-DD). The response is never empty; stale or synthetic data is flagged via isFallback.
// @Tags rates
// @Produce json
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} dto.RateSnapshotResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/{date} [get]
func (h *rateHandler) getRatesForDate(c *gin.Context) {
	date, err := time.Parse(time.DateOnly, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted YYYY-MM-DD"})
		return
	}
	snapshot := h.resolver.ResolveRate(c.Request.Context(), date)
	c.JSON(http.StatusOK, dto.ToRateSnapshotResponse(snapshot))
}

// triggerRefresh godoc
// @Summary Trigger a rate refresh
// @Description Starts an out-of-schedule refresh of today's snapshot. The refresh runs in the background; the response reflects the scheduler state at the time of the trigger.
// @Tags rates
// @Produce json
// @Success 202 {object} map[string]any
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *rateHandler) triggerRefresh(c *gin.Context) {
	// The refresh must outlive the request, so it is detached from the
	// request context.
	h.refresher.TriggerManualRefresh(context.WithoutCancel(c.Request.Context()))
	c.JSON(http.StatusAccepted, h.refresher.Status())
}
