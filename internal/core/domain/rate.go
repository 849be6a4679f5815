package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrencyCode is the currency costs and shipping rates are recorded in.
const BaseCurrencyCode = "TRY"

// RateSnapshot holds the exchange rates in effect for one calendar date.
// Rates are quoted as base currency units per one unit of foreign currency
// (the feed's selling-rate convention), so a foreign sale price is
// salePrice / rate. Snapshots are immutable once stored; the historical
// cache keys them by AsOfDate and never overwrites a populated date.
type RateSnapshot struct {
	AsOfDate   time.Time                  `json:"asOfDate"` // zero for the built-in default
	Rates      map[string]decimal.Decimal `json:"rates"`
	IsFallback bool                       `json:"isFallback"`
	FetchedAt  time.Time                  `json:"fetchedAt"`
}

// RateFor returns the base-currency price of one unit of code.
// The base currency itself always maps to 1.
func (s RateSnapshot) RateFor(code string) (decimal.Decimal, bool) {
	if code == BaseCurrencyCode {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.Rates[code]
	return rate, ok
}

// WithFallback returns a copy of s tagged with the given fallback flag,
// leaving the stored snapshot untouched.
func (s RateSnapshot) WithFallback(fallback bool) RateSnapshot {
	s.IsFallback = fallback
	return s
}

// DefaultRateSnapshot is the hardcoded last-resort snapshot, used only when
// the entire lookback window fails and no prior snapshot was ever stored.
// The zero AsOfDate marks it as synthetic.
func DefaultRateSnapshot(fetchedAt time.Time) RateSnapshot {
	return RateSnapshot{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromFloat(36.50),
			"EUR": decimal.NewFromFloat(38.20),
			"CHF": decimal.NewFromFloat(41.10),
		},
		IsFallback: true,
		FetchedAt:  fetchedAt,
	}
}
