package mapping

import (
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
)

// ToModelShippingRecord converts a domain ShippingRecord to a model ShippingRecord.
func ToModelShippingRecord(d domain.ShippingRecord) models.ShippingRecord {
	return models.ShippingRecord{
		ShippingRecordID: d.ShippingRecordID,
		DestinationID:    d.DestinationID,
		SiteID:           string(d.SiteID),
		CarrierID:        d.CarrierID,
		VehicleType:      string(d.VehicleType),
		UnitRate:         d.UnitRate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShippingRecord converts a model ShippingRecord to a domain ShippingRecord.
func ToDomainShippingRecord(m models.ShippingRecord) domain.ShippingRecord {
	return domain.ShippingRecord{
		ShippingRecordID: m.ShippingRecordID,
		DestinationID:    m.DestinationID,
		SiteID:           domain.ProductionSite(m.SiteID),
		CarrierID:        m.CarrierID,
		VehicleType:      domain.VehicleType(m.VehicleType),
		UnitRate:         m.UnitRate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
