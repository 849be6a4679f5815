package dto

import (
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveShippingRecordRequest defines the structure for creating or updating a
// shipping rate row. An empty ShippingRecordID means "new row".
type SaveShippingRecordRequest struct {
	ShippingRecordID string          `json:"shippingRecordID"`
	DestinationID    string          `json:"destinationID" binding:"required"`
	SiteID           string          `json:"siteID" binding:"required"`
	CarrierID        string          `json:"carrierID" binding:"required"`
	VehicleType      string          `json:"vehicleType" binding:"required,vehicletype"`
	UnitRate         decimal.Decimal `json:"unitRate" binding:"required"`
}

// ReplaceShippingRecordsRequest carries the full desired record set for one
// destination; rows absent from it are deleted.
type ReplaceShippingRecordsRequest struct {
	Records []SaveShippingRecordRequest `json:"records" binding:"required,dive"`
}

// ShippingRecordResponse defines the API response for one shipping rate row.
type ShippingRecordResponse struct {
	ShippingRecordID string          `json:"shippingRecordID"`
	DestinationID    string          `json:"destinationID"`
	SiteID           string          `json:"siteID"`
	SiteName         string          `json:"siteName"`
	CarrierID        string          `json:"carrierID"`
	VehicleType      string          `json:"vehicleType"`
	UnitRate         decimal.Decimal `json:"unitRate"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToShippingRecordResponse converts a domain ShippingRecord to its response form.
func ToShippingRecordResponse(r *domain.ShippingRecord) ShippingRecordResponse {
	return ShippingRecordResponse{
		ShippingRecordID: r.ShippingRecordID,
		DestinationID:    r.DestinationID,
		SiteID:           string(r.SiteID),
		SiteName:         r.SiteID.Name(),
		CarrierID:        r.CarrierID,
		VehicleType:      string(r.VehicleType),
		UnitRate:         r.UnitRate,
		LastUpdatedAt:    r.LastUpdatedAt,
		LastUpdatedBy:    r.LastUpdatedBy,
	}
}

// ToListShippingRecordResponse converts a slice of shipping records.
func ToListShippingRecordResponse(records []domain.ShippingRecord) []ShippingRecordResponse {
	responses := make([]ShippingRecordResponse, len(records))
	for i := range records {
		responses[i] = ToShippingRecordResponse(&records[i])
	}
	return responses
}
