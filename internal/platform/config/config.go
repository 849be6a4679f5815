package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exchange rate resolution
	RateSourceBaseURL     string
	RateFetchTimeout      time.Duration
	RateLookbackDays      int
	RateMaxFetchAttempts  int
	RateRefreshCron       string
	RateRefreshEnabled    bool
	RateTrackedCurrencies []string

	// Quote margin bounds, enforced at the API boundary
	MarginMinPct decimal.Decimal
	MarginMaxPct decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "freight-pricing-app")
	viper.SetDefault("RATE_SOURCE_BASE_URL", "https://www.tcmb.gov.tr")
	viper.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("RATE_LOOKBACK_DAYS", 15)
	viper.SetDefault("RATE_MAX_FETCH_ATTEMPTS", 10)
	viper.SetDefault("RATE_REFRESH_CRON", "0 9 * * *")
	viper.SetDefault("RATE_REFRESH_ENABLED", true)
	viper.SetDefault("RATE_TRACKED_CURRENCIES", "USD,EUR,CHF")
	viper.SetDefault("MARGIN_MIN_PCT", "-100")
	viper.SetDefault("MARGIN_MAX_PCT", "1000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)

	cfg.RateSourceBaseURL = strings.TrimRight(viper.GetString("RATE_SOURCE_BASE_URL"), "/")
	cfg.RateFetchTimeout = durationOrDefault("RATE_FETCH_TIMEOUT", 10*time.Second)
	cfg.RateLookbackDays = viper.GetInt("RATE_LOOKBACK_DAYS")
	if cfg.RateLookbackDays <= 0 {
		cfg.RateLookbackDays = 15
	}
	cfg.RateMaxFetchAttempts = viper.GetInt("RATE_MAX_FETCH_ATTEMPTS")
	if cfg.RateMaxFetchAttempts <= 0 {
		cfg.RateMaxFetchAttempts = 10
	}
	cfg.RateRefreshCron = viper.GetString("RATE_REFRESH_CRON")
	cfg.RateRefreshEnabled = viper.GetBool("RATE_REFRESH_ENABLED")
	cfg.RateTrackedCurrencies = splitCodes(viper.GetString("RATE_TRACKED_CURRENCIES"))

	cfg.MarginMinPct = decimalOrDefault("MARGIN_MIN_PCT", decimal.NewFromInt(-100))
	cfg.MarginMaxPct = decimalOrDefault("MARGIN_MAX_PCT", decimal.NewFromInt(1000))

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func decimalOrDefault(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitCodes(raw string) []string {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
