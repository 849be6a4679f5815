package models

// Currency represents a tracked currency row.
type Currency struct {
	CurrencyCode string `json:"currencyCode" db:"currency_code"`
	Symbol       string `json:"symbol" db:"symbol"`
	Name         string `json:"name" db:"name"`
	AuditFields
}
