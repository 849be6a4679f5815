package models

import "time"

// RateSnapshot is one historical rate cache row, keyed by the calendar date
// it represents. Rates is the JSONB currency->rate document as stored.
type RateSnapshot struct {
	AsOfDate   time.Time `json:"asOfDate" db:"as_of_date"`
	Rates      []byte    `json:"rates" db:"rates"`
	IsFallback bool      `json:"isFallback" db:"is_fallback"`
	FetchedAt  time.Time `json:"fetchedAt" db:"fetched_at"`
}
