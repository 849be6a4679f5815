package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostRecord is one append-only entry in the cost ledger for a
// (product, site) pair. Unit costs are base currency per kilogram.
// A price change appends a new record; records are never updated in place.
type CostRecord struct {
	CostRecordID string          `json:"costRecordID"` // Primary Key (UUID)
	ProductID    string          `json:"productID"`
	SiteID       ProductionSite  `json:"siteID"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	RecordedOn   time.Time       `json:"recordedOn"` // date precision
	AuditFields
}
