package models

import "github.com/shopspring/decimal"

// ShippingRecord is one shipping rate table row.
type ShippingRecord struct {
	ShippingRecordID string          `json:"shippingRecordID" db:"shipping_record_id"`
	DestinationID    string          `json:"destinationID" db:"destination_id"`
	SiteID           string          `json:"siteID" db:"site_id"`
	CarrierID        string          `json:"carrierID" db:"carrier_id"`
	VehicleType      string          `json:"vehicleType" db:"vehicle_type"`
	UnitRate         decimal.Decimal `json:"unitRate" db:"unit_rate"`
	AuditFields
}
