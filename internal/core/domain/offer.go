package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is one fully or partially priced option for a specific
// site/carrier/vehicle combination. All per-kg figures are unrounded;
// presentation rounding happens at the DTO layer only.
type Offer struct {
	SiteID      ProductionSite `json:"siteID"`
	CarrierID   string         `json:"carrierID"`
	VehicleType VehicleType    `json:"vehicleType"`

	UnitCost     decimal.Decimal `json:"unitCost"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	MarginPct    decimal.Decimal `json:"marginPct"`

	SalePrice                 decimal.Decimal            `json:"salePrice"` // base currency, per kg
	SalePricePerTon           decimal.Decimal            `json:"salePricePerTon"`
	SalePriceByCurrency       map[string]decimal.Decimal `json:"salePriceByCurrency"`       // per kg
	SalePriceByCurrencyPerTon map[string]decimal.Decimal `json:"salePriceByCurrencyPerTon"` // per ton

	// HasCompleteData is false for placeholder rows emitted when cost or
	// shipping data is missing for a site; such rows are kept for display.
	HasCompleteData bool `json:"hasCompleteData"`
}

// PerTon converts a per-kilogram figure to per-ton.
func PerTon(perKg decimal.Decimal) decimal.Decimal {
	return perKg.Mul(decimal.NewFromInt(1000))
}

// QuoteResult is the full outcome of one quote computation: every evaluated
// option (including incomplete placeholders) plus the selected best offer.
// Best is nil when no complete offer exists; that is a displayable result,
// not an error.
type QuoteResult struct {
	Best     *Offer       `json:"best"`
	Offers   []Offer      `json:"offers"`
	Snapshot RateSnapshot `json:"snapshot"`
}

// QuoteAuditRecord is the append-only trace written when a caller saves a
// finalized quote. It is write-only from the engine's perspective.
type QuoteAuditRecord struct {
	QuoteAuditID  string          `json:"quoteAuditID"` // Primary Key (UUID)
	ProductID     string          `json:"productID"`
	DestinationID string          `json:"destinationID"`
	MarginPct     decimal.Decimal `json:"marginPct"`
	Offer         Offer           `json:"offer"`
	RateAsOfDate  time.Time       `json:"rateAsOfDate"`
	RequestedBy   string          `json:"requestedBy"` // UserID reference
	CreatedAt     time.Time       `json:"createdAt"`
}
