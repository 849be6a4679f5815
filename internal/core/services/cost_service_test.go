package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/core/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
)

// --- Mock CostRepository ---
type MockCostRepository struct {
	MockCostReader
}

func (m *MockCostRepository) SaveCostRecord(ctx context.Context, record domain.CostRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCostRepository) PurgeCostRecords(ctx context.Context, productID string, siteID domain.ProductionSite) (int64, error) {
	args := m.Called(ctx, productID, siteID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type CostServiceTestSuite struct {
	suite.Suite
	repo    *MockCostRepository
	service portssvc.CostSvcFacade
	now     time.Time
}

func (suite *CostServiceTestSuite) SetupTest() {
	suite.repo = new(MockCostRepository)
	suite.now = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewCostService(suite.repo,
		services.WithCostClock(func() time.Time { return suite.now }))
}

func (suite *CostServiceTestSuite) TestRecordCost_Success() {
	ctx := context.Background()
	req := dto.CreateCostRecordRequest{
		ProductID:  "NTS-40",
		SiteID:     "TR14",
		UnitCost:   decimal.RequireFromString("10.00"),
		RecordedOn: date(2025, 6, 1),
	}
	suite.repo.On("SaveCostRecord", ctx, mock.AnythingOfType("domain.CostRecord")).Return(nil).Once()

	record, err := suite.service.RecordCost(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.CostRecordID)
	suite.Equal(domain.SiteGebze, record.SiteID)
	suite.Equal("user-1", record.CreatedBy)
	suite.Equal(suite.now, record.CreatedAt)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *CostServiceTestSuite) TestRecordCost_UnknownSite() {
	ctx := context.Background()
	req := dto.CreateCostRecordRequest{
		ProductID:  "NTS-40",
		SiteID:     "TR99",
		UnitCost:   decimal.RequireFromString("10.00"),
		RecordedOn: date(2025, 6, 1),
	}

	_, err := suite.service.RecordCost(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "SaveCostRecord", mock.Anything, mock.Anything)
}

func (suite *CostServiceTestSuite) TestRecordCost_NonPositiveCost() {
	ctx := context.Background()
	req := dto.CreateCostRecordRequest{
		ProductID:  "NTS-40",
		SiteID:     "TR14",
		UnitCost:   decimal.Zero,
		RecordedOn: date(2025, 6, 1),
	}

	_, err := suite.service.RecordCost(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CostServiceTestSuite) TestBulkIncreaseCosts_AppendsScaledRecords() {
	ctx := context.Background()
	suite.repo.On("ListLatestCosts", ctx).Return([]domain.CostRecord{
		*costRecord(domain.SiteGebze, "10.00"),
		*costRecord(domain.SiteTrabzon, "20.00"),
	}, nil).Once()

	var saved []domain.CostRecord
	suite.repo.On("SaveCostRecord", ctx, mock.AnythingOfType("domain.CostRecord")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(domain.CostRecord))
		}).Return(nil).Twice()

	count, err := suite.service.BulkIncreaseCosts(ctx, decimal.NewFromInt(10), "user-1")

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.Require().Len(saved, 2)
	suite.True(saved[0].UnitCost.Equal(decimal.RequireFromString("11.00")), "got %s", saved[0].UnitCost)
	suite.True(saved[1].UnitCost.Equal(decimal.RequireFromString("22.00")), "got %s", saved[1].UnitCost)
	for _, r := range saved {
		// New ledger entries at today's date; the originals stay untouched.
		suite.Equal(date(2025, 6, 18), r.RecordedOn)
		suite.NotEqual("cost-"+string(r.SiteID), r.CostRecordID)
	}
}

func (suite *CostServiceTestSuite) TestBulkIncreaseCosts_ZeroPct() {
	ctx := context.Background()

	_, err := suite.service.BulkIncreaseCosts(ctx, decimal.Zero, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "ListLatestCosts", mock.Anything)
}

func (suite *CostServiceTestSuite) TestEffectiveCost_PassesAsOfThrough() {
	ctx := context.Background()
	asOf := date(2025, 6, 10)
	want := costRecord(domain.SiteGebze, "10.00")
	suite.repo.On("FindEffectiveCost", ctx, "NTS-40", domain.SiteGebze, asOf).Return(want, nil).Once()

	got, err := suite.service.EffectiveCost(ctx, "NTS-40", domain.SiteGebze, asOf)

	suite.Require().NoError(err)
	suite.Equal(want, got)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *CostServiceTestSuite) TestPurgeCostRecords() {
	ctx := context.Background()
	suite.repo.On("PurgeCostRecords", ctx, "NTS-40", domain.SiteGebze).Return(int64(4), nil).Once()

	deleted, err := suite.service.PurgeCostRecords(ctx, "NTS-40", domain.SiteGebze)

	suite.Require().NoError(err)
	suite.Equal(int64(4), deleted)
}

func TestCostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CostServiceTestSuite))
}
