package services

import (
	"context"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for the tracked currency set.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all tracked currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for the tracked currency set.
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new tracked currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
