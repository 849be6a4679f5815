package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	_ "github.com/ntsmobil/freight_pricing_app/cmd/docs"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/core/services"
	"github.com/ntsmobil/freight_pricing_app/internal/handlers"
	"github.com/ntsmobil/freight_pricing_app/internal/middleware"
	"github.com/ntsmobil/freight_pricing_app/internal/platform/config"
	"github.com/ntsmobil/freight_pricing_app/internal/repositories/database/pgsql"
	"github.com/ntsmobil/freight_pricing_app/internal/repositories/ratesource"
	"github.com/ntsmobil/freight_pricing_app/internal/scheduler"
	"github.com/ntsmobil/freight_pricing_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Freight Pricing API
// @version 1.0
// @description Exchange rate resolution and cheapest-route freight pricing backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	// Repositories and outbound adapters
	repos := pgsql.NewRepositoryProvider(dbPool)
	rateSource := ratesource.NewTCMBClient(cfg.RateSourceBaseURL, cfg.RateFetchTimeout, cfg.RateTrackedCurrencies)

	// Services
	serviceContainer := services.NewServiceContainer(cfg, repos, rateSource)

	// Background refresh of the day's exchange rates
	rateRefresh := scheduler.NewRateRefreshService(serviceContainer.RateResolver, scheduler.RateRefreshConfig{
		CronSchedule: cfg.RateRefreshCron,
		Enabled:      cfg.RateRefreshEnabled,
	}, logger)
	if err := rateRefresh.Start(ctx); err != nil {
		logger.Error("Failed to start rate refresh scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registerCustomValidators(logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateRefresh)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server starts.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations.
	// Using pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}

// registerCustomValidators adds request binding validators that the standard
// tag set does not cover.
func registerCustomValidators(logger *slog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Error("Failed to access gin's validator engine")
		os.Exit(1)
	}
	err := v.RegisterValidation("vehicletype", func(fl validator.FieldLevel) bool {
		return domain.VehicleType(fl.Field().String()).Valid()
	})
	if err != nil {
		logger.Error("Failed to register vehicletype validator", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
