package services

import (
	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, source portsrepo.RateSource) *portssvc.ServiceContainer {
	resolver := NewRateResolverService(repos.RateSnapshotRepo, source, RateResolverConfig{
		LookbackDays:     cfg.RateLookbackDays,
		MaxFetchAttempts: cfg.RateMaxFetchAttempts,
	})
	return &portssvc.ServiceContainer{
		Pricing:      NewPricingService(repos.CostRepo, repos.ShippingRepo, repos.QuoteAuditRepo, repos.CurrencyRepo, resolver),
		RateResolver: resolver,
		Cost:         NewCostService(repos.CostRepo),
		Shipping:     NewShippingService(repos.ShippingRepo),
		Currency:     NewCurrencyService(repos.CurrencyRepo),
		User:         NewUserService(repos.UserRepo),
	}
}
