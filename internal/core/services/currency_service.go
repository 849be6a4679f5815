package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// currencyService provides currency catalog related services.
type currencyService struct {
	repo portsrepo.CurrencyRepositoryFacade
	now  func() time.Time
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{repo: repo, now: time.Now}
}

// CreateCurrency adds a currency to the tracked set.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(req.CurrencyCode)
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	now := s.now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.repo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.repo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all tracked currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.repo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
