package dto

import (
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/utils"
	"github.com/shopspring/decimal"
)

// PinnedRouteRequest names an exact site/carrier/vehicle combination,
// bypassing automatic cheapest-selection.
type PinnedRouteRequest struct {
	SiteID      string `json:"siteID" binding:"required"`
	CarrierID   string `json:"carrierID" binding:"required"`
	VehicleType string `json:"vehicleType" binding:"required,vehicletype"`
}

// QuoteRequest defines the structure for requesting a delivered price quote.
// MarginPct bounds are enforced at this boundary (handler), not inside the
// pricing engine.
type QuoteRequest struct {
	ProductID     string              `json:"productID" binding:"required"`
	DestinationID string              `json:"destinationID" binding:"required"`
	MarginPct     decimal.Decimal     `json:"marginPct"`
	AsOfDate      *time.Time          `json:"asOfDate,omitempty"`
	PinnedRoute   *PinnedRouteRequest `json:"pinnedRoute,omitempty"`
}

// Route converts the pinned route into its domain form, or nil.
func (r QuoteRequest) Route() *domain.RouteRef {
	if r.PinnedRoute == nil {
		return nil
	}
	return &domain.RouteRef{
		SiteID:      domain.ProductionSite(r.PinnedRoute.SiteID),
		CarrierID:   r.PinnedRoute.CarrierID,
		VehicleType: domain.VehicleType(r.PinnedRoute.VehicleType),
	}
}

// OfferResponse is the presentation form of one offer. Base-currency cost
// figures are rounded to 2 decimal places, foreign per-kg prices to 4 and
// per-ton prices to 2; the engine's internal values stay unrounded.
type OfferResponse struct {
	SiteID           string            `json:"siteID"`
	SiteName         string            `json:"siteName"`
	CarrierID        string            `json:"carrierID"`
	VehicleType      string            `json:"vehicleType"`
	UnitCost         string            `json:"unitCost"`
	ShippingCost     string            `json:"shippingCost"`
	TotalCost        string            `json:"totalCost"`
	MarginPct        decimal.Decimal   `json:"marginPct"`
	SalePrice        string            `json:"salePrice"`
	SalePricePerTon  string            `json:"salePricePerTon"`
	PerKgByCurrency  map[string]string `json:"perKgByCurrency"`
	PerTonByCurrency map[string]string `json:"perTonByCurrency"`
	HasCompleteData  bool              `json:"hasCompleteData"`
}

// ToOfferResponse converts a domain Offer to its presentation form.
func ToOfferResponse(o domain.Offer) OfferResponse {
	perKg := make(map[string]string, len(o.SalePriceByCurrency))
	for code, v := range o.SalePriceByCurrency {
		perKg[code] = utils.FormatPerKg(v)
	}
	perTon := make(map[string]string, len(o.SalePriceByCurrencyPerTon))
	for code, v := range o.SalePriceByCurrencyPerTon {
		perTon[code] = utils.FormatPerTon(v)
	}
	return OfferResponse{
		SiteID:           string(o.SiteID),
		SiteName:         o.SiteID.Name(),
		CarrierID:        o.CarrierID,
		VehicleType:      string(o.VehicleType),
		UnitCost:         utils.FormatMoney(o.UnitCost),
		ShippingCost:     utils.FormatMoney(o.ShippingCost),
		TotalCost:        utils.FormatMoney(o.TotalCost),
		MarginPct:        o.MarginPct,
		SalePrice:        utils.FormatMoney(o.SalePrice),
		SalePricePerTon:  utils.FormatPerTon(o.SalePricePerTon),
		PerKgByCurrency:  perKg,
		PerTonByCurrency: perTon,
		HasCompleteData:  o.HasCompleteData,
	}
}

// QuoteResponse is the full quote outcome: every evaluated option plus the
// selected best offer (absent when no complete offer exists).
type QuoteResponse struct {
	Best   *OfferResponse       `json:"best,omitempty"`
	Offers []OfferResponse      `json:"offers"`
	Rate   RateSnapshotResponse `json:"rate"`
}

// ToQuoteResponse converts a domain QuoteResult to its presentation form.
func ToQuoteResponse(result *domain.QuoteResult) QuoteResponse {
	offers := make([]OfferResponse, len(result.Offers))
	for i, o := range result.Offers {
		offers[i] = ToOfferResponse(o)
	}
	resp := QuoteResponse{
		Offers: offers,
		Rate:   ToRateSnapshotResponse(result.Snapshot),
	}
	if result.Best != nil {
		best := ToOfferResponse(*result.Best)
		resp.Best = &best
	}
	return resp
}

// SavedQuoteResponse acknowledges an audit-log write.
type SavedQuoteResponse struct {
	QuoteAuditID  string        `json:"quoteAuditID"`
	ProductID     string        `json:"productID"`
	DestinationID string        `json:"destinationID"`
	Offer         OfferResponse `json:"offer"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ToSavedQuoteResponse converts a domain QuoteAuditRecord to its presentation form.
func ToSavedQuoteResponse(rec *domain.QuoteAuditRecord) SavedQuoteResponse {
	return SavedQuoteResponse{
		QuoteAuditID:  rec.QuoteAuditID,
		ProductID:     rec.ProductID,
		DestinationID: rec.DestinationID,
		Offer:         ToOfferResponse(rec.Offer),
		CreatedAt:     rec.CreatedAt,
	}
}
