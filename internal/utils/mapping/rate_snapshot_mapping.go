package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelRateSnapshot converts a domain RateSnapshot to its row form,
// serializing the rate map to the JSONB document.
func ToModelRateSnapshot(d domain.RateSnapshot) (models.RateSnapshot, error) {
	rates, err := json.Marshal(d.Rates)
	if err != nil {
		return models.RateSnapshot{}, fmt.Errorf("failed to marshal rate map: %w", err)
	}
	return models.RateSnapshot{
		AsOfDate:   d.AsOfDate,
		Rates:      rates,
		IsFallback: d.IsFallback,
		FetchedAt:  d.FetchedAt,
	}, nil
}

// ToDomainRateSnapshot converts a row back to a domain RateSnapshot.
func ToDomainRateSnapshot(m models.RateSnapshot) (domain.RateSnapshot, error) {
	rates := map[string]decimal.Decimal{}
	if len(m.Rates) > 0 {
		if err := json.Unmarshal(m.Rates, &rates); err != nil {
			return domain.RateSnapshot{}, fmt.Errorf("failed to unmarshal rate map: %w", err)
		}
	}
	return domain.RateSnapshot{
		AsOfDate:   m.AsOfDate,
		Rates:      rates,
		IsFallback: m.IsFallback,
		FetchedAt:  m.FetchedAt,
	}, nil
}
