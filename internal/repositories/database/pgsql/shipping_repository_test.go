package pgsql_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	"github.com/ntsmobil/freight_pricing_app/internal/repositories/database/pgsql"
)

func (s *PgsqlRepositorySuite) insertShippingRecord(repo *pgsql.PgxShippingRepository, destinationID string, site domain.ProductionSite, carrierID string, vehicle domain.VehicleType, unitRate string) domain.ShippingRecord {
	now := time.Now().UTC()
	record := domain.ShippingRecord{
		ShippingRecordID: uuid.NewString(),
		DestinationID:    destinationID,
		SiteID:           site,
		CarrierID:        carrierID,
		VehicleType:      vehicle,
		UnitRate:         decimal.RequireFromString(unitRate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "tester",
			LastUpdatedAt: now,
			LastUpdatedBy: "tester",
		},
	}
	s.Require().NoError(repo.SaveShippingRecord(context.Background(), record))
	return record
}

// Applying a markup twice compounds: 10% then 10% yields 21%, not 20%.
func (s *PgsqlRepositorySuite) TestApplyBulkMarkupCompounds() {
	repo := pgsql.NewPgxShippingRepository(s.pool)
	ctx := context.Background()

	first := s.insertShippingRecord(repo, "BERLIN", domain.SiteGebze, "ACME", domain.VehicleTIR, "100")
	second := s.insertShippingRecord(repo, "BERLIN", domain.SiteTrabzon, "NORTHSTAR", domain.VehicleKamyon, "40")

	affected, err := repo.ApplyBulkMarkup(ctx, decimal.NewFromInt(10), "tester")
	s.Require().NoError(err)
	s.Equal(int64(2), affected)

	affected, err = repo.ApplyBulkMarkup(ctx, decimal.NewFromInt(10), "tester")
	s.Require().NoError(err)
	s.Equal(int64(2), affected)

	records, err := repo.ListByDestination(ctx, "BERLIN")
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	ratesByID := make(map[string]decimal.Decimal, len(records))
	for _, record := range records {
		ratesByID[record.ShippingRecordID] = record.UnitRate
	}
	s.True(ratesByID[first.ShippingRecordID].Equal(decimal.RequireFromString("121")),
		"got %s", ratesByID[first.ShippingRecordID])
	s.True(ratesByID[second.ShippingRecordID].Equal(decimal.RequireFromString("48.4")),
		"got %s", ratesByID[second.ShippingRecordID])
}

func (s *PgsqlRepositorySuite) TestApplyBulkMarkupEmptyTable() {
	repo := pgsql.NewPgxShippingRepository(s.pool)

	affected, err := repo.ApplyBulkMarkup(context.Background(), decimal.NewFromInt(5), "tester")
	s.Require().NoError(err)
	s.Equal(int64(0), affected)
}
