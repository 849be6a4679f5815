package dto

import (
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/utils"
)

// RateSnapshotResponse is the presentation form of a rate snapshot.
// AsOfDate is "default" for the built-in sentinel snapshot.
type RateSnapshotResponse struct {
	AsOfDate   string            `json:"asOfDate"`
	Rates      map[string]string `json:"rates"`
	IsFallback bool              `json:"isFallback"`
	FetchedAt  time.Time         `json:"fetchedAt"`
}

// ToRateSnapshotResponse converts a domain RateSnapshot to its presentation form.
func ToRateSnapshotResponse(s domain.RateSnapshot) RateSnapshotResponse {
	rates := make(map[string]string, len(s.Rates))
	for code, v := range s.Rates {
		rates[code] = utils.FormatPerKg(v)
	}
	asOf := "default"
	if !s.AsOfDate.IsZero() {
		asOf = s.AsOfDate.Format(time.DateOnly)
	}
	return RateSnapshotResponse{
		AsOfDate:   asOf,
		Rates:      rates,
		IsFallback: s.IsFallback,
		FetchedAt:  s.FetchedAt,
	}
}
