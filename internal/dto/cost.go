package dto

import (
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCostRecordRequest defines the structure for appending a cost record.
type CreateCostRecordRequest struct {
	ProductID  string          `json:"productID" binding:"required"`
	SiteID     string          `json:"siteID" binding:"required"`
	UnitCost   decimal.Decimal `json:"unitCost" binding:"required"`
	RecordedOn time.Time       `json:"recordedOn" binding:"required"`
}

// CostRecordResponse defines the API response for one cost ledger entry.
type CostRecordResponse struct {
	CostRecordID string          `json:"costRecordID"`
	ProductID    string          `json:"productID"`
	SiteID       string          `json:"siteID"`
	SiteName     string          `json:"siteName"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	RecordedOn   string          `json:"recordedOn"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToCostRecordResponse converts a domain CostRecord to CostRecordResponse.
func ToCostRecordResponse(r *domain.CostRecord) CostRecordResponse {
	return CostRecordResponse{
		CostRecordID: r.CostRecordID,
		ProductID:    r.ProductID,
		SiteID:       string(r.SiteID),
		SiteName:     r.SiteID.Name(),
		UnitCost:     r.UnitCost,
		RecordedOn:   r.RecordedOn.Format(time.DateOnly),
		CreatedAt:    r.CreatedAt,
		CreatedBy:    r.CreatedBy,
	}
}

// ToListCostRecordResponse converts a slice of cost records.
func ToListCostRecordResponse(records []domain.CostRecord) []CostRecordResponse {
	responses := make([]CostRecordResponse, len(records))
	for i := range records {
		responses[i] = ToCostRecordResponse(&records[i])
	}
	return responses
}

// BulkIncreaseRequest applies a percentage increase across records.
// Zero is rejected; negative values are allowed (price cuts).
type BulkIncreaseRequest struct {
	Pct decimal.Decimal `json:"pct" binding:"required"`
}

// BulkChangeResponse reports how many rows a bulk operation touched.
type BulkChangeResponse struct {
	Affected int64           `json:"affected"`
	Pct      decimal.Decimal `json:"pct"`
}
