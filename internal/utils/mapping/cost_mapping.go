package mapping

import (
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
)

// ToModelCostRecord converts a domain CostRecord to a model CostRecord.
func ToModelCostRecord(d domain.CostRecord) models.CostRecord {
	return models.CostRecord{
		CostRecordID: d.CostRecordID,
		ProductID:    d.ProductID,
		SiteID:       string(d.SiteID),
		UnitCost:     d.UnitCost,
		RecordedOn:   d.RecordedOn,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostRecord converts a model CostRecord to a domain CostRecord.
func ToDomainCostRecord(m models.CostRecord) domain.CostRecord {
	return domain.CostRecord{
		CostRecordID: m.CostRecordID,
		ProductID:    m.ProductID,
		SiteID:       domain.ProductionSite(m.SiteID),
		UnitCost:     m.UnitCost,
		RecordedOn:   m.RecordedOn,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
