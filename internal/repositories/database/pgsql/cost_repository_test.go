package pgsql_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/repositories/database/pgsql"
)

func (s *PgsqlRepositorySuite) insertCostRecord(repo *pgsql.PgxCostRepository, productID string, site domain.ProductionSite, unitCost string, recordedOn, createdAt time.Time) domain.CostRecord {
	record := domain.CostRecord{
		CostRecordID: uuid.NewString(),
		ProductID:    productID,
		SiteID:       site,
		UnitCost:     decimal.RequireFromString(unitCost),
		RecordedOn:   recordedOn,
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			CreatedBy:     "tester",
			LastUpdatedAt: createdAt,
			LastUpdatedBy: "tester",
		},
	}
	s.Require().NoError(repo.SaveCostRecord(context.Background(), record))
	return record
}

// The effective cost is decided by recorded_on, not by when rows were
// written. Records here arrive newest first to make sure insertion order
// plays no part.
func (s *PgsqlRepositorySuite) TestFindEffectiveCostIgnoresInsertionOrder() {
	repo := pgsql.NewPgxCostRepository(s.pool)
	ctx := context.Background()
	now := time.Now().UTC()

	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	january := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	s.insertCostRecord(repo, "PROD-001", domain.SiteGebze, "12.00", june, now)
	s.insertCostRecord(repo, "PROD-001", domain.SiteGebze, "9.50", january, now.Add(time.Second))
	s.insertCostRecord(repo, "PROD-001", domain.SiteGebze, "10.75", march, now.Add(2*time.Second))

	latest, err := repo.FindEffectiveCost(ctx, "PROD-001", domain.SiteGebze, time.Time{})
	s.Require().NoError(err)
	s.True(latest.UnitCost.Equal(decimal.RequireFromString("12.00")), "zero asOf must resolve the newest recorded date")

	asOfApril := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	effective, err := repo.FindEffectiveCost(ctx, "PROD-001", domain.SiteGebze, asOfApril)
	s.Require().NoError(err)
	s.True(effective.UnitCost.Equal(decimal.RequireFromString("10.75")), "asOf must pick the latest recorded date not after it")
	s.Equal(march.Format(time.DateOnly), effective.RecordedOn.Format(time.DateOnly))
}

func (s *PgsqlRepositorySuite) TestFindEffectiveCostBeforeAllRecords() {
	repo := pgsql.NewPgxCostRepository(s.pool)
	ctx := context.Background()
	now := time.Now().UTC()

	s.insertCostRecord(repo, "PROD-002", domain.SiteTrabzon, "7.00",
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), now)

	_, err := repo.FindEffectiveCost(ctx, "PROD-002", domain.SiteTrabzon,
		time.Date(2025, 5, 19, 0, 0, 0, 0, time.UTC))
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// Two records on the same recorded date are ordered by creation time, so a
// same-day correction wins over the entry it corrects.
func (s *PgsqlRepositorySuite) TestFindEffectiveCostSameDayCorrectionWins() {
	repo := pgsql.NewPgxCostRepository(s.pool)
	ctx := context.Background()

	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	noon := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	// The correction is written first to keep insertion order out of it.
	s.insertCostRecord(repo, "PROD-003", domain.SiteAdana, "8.40", day, noon)
	s.insertCostRecord(repo, "PROD-003", domain.SiteAdana, "8.00", day, morning)

	effective, err := repo.FindEffectiveCost(ctx, "PROD-003", domain.SiteAdana, time.Time{})
	s.Require().NoError(err)
	s.True(effective.UnitCost.Equal(decimal.RequireFromString("8.40")))
}
