package domain

import "github.com/shopspring/decimal"

// VehicleType classifies the truck used for a shipping lane.
type VehicleType string

const (
	VehicleTIR    VehicleType = "TIR"
	VehicleKamyon VehicleType = "KAMYON"
)

// Valid reports whether v is a known vehicle type.
func (v VehicleType) Valid() bool {
	return v == VehicleTIR || v == VehicleKamyon
}

// ShippingRecord is one row of the shipping rate table. Rates are base
// currency per kilogram and have no temporal dimension; edits overwrite.
// Duplicate (destination, site, carrier, vehicle) rows are tolerated and
// each is evaluated during quoting.
type ShippingRecord struct {
	ShippingRecordID string          `json:"shippingRecordID"` // Primary Key (UUID)
	DestinationID    string          `json:"destinationID"`    // destination city
	SiteID           ProductionSite  `json:"siteID"`
	CarrierID        string          `json:"carrierID"`
	VehicleType      VehicleType     `json:"vehicleType"`
	UnitRate         decimal.Decimal `json:"unitRate"`
	AuditFields
}

// RouteRef pins a quote to an exact site/carrier/vehicle combination.
type RouteRef struct {
	SiteID      ProductionSite `json:"siteID"`
	CarrierID   string         `json:"carrierID"`
	VehicleType VehicleType    `json:"vehicleType"`
}
