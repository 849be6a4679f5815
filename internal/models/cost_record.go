package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostRecord is one cost ledger row. Rows are append-only.
type CostRecord struct {
	CostRecordID string          `json:"costRecordID" db:"cost_record_id"`
	ProductID    string          `json:"productID" db:"product_id"`
	SiteID       string          `json:"siteID" db:"site_id"`
	UnitCost     decimal.Decimal `json:"unitCost" db:"unit_cost"`
	RecordedOn   time.Time       `json:"recordedOn" db:"recorded_on"`
	AuditFields
}
