package utils

import "github.com/shopspring/decimal"

// Presentation rounding only. The pricing engine keeps full precision; these
// helpers are applied at the DTO boundary, never before arithmetic.

// FormatMoney renders a base-currency cost figure with 2 decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}

// FormatPerKg renders a per-kilogram price with 4 decimal places, the
// precision used for foreign-currency kg prices and exchange rates.
func FormatPerKg(amount decimal.Decimal) string {
	return amount.Round(4).StringFixed(4)
}

// FormatPerTon renders a per-ton price with 2 decimal places.
func FormatPerTon(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
