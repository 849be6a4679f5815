package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	"github.com/ntsmobil/freight_pricing_app/internal/core/domain"
	portssvc "github.com/ntsmobil/freight_pricing_app/internal/core/ports/services"
	"github.com/ntsmobil/freight_pricing_app/internal/core/services"
	"github.com/ntsmobil/freight_pricing_app/internal/dto"
	"github.com/ntsmobil/freight_pricing_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	repo    *MockUserRepository
	service portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.repo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.repo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "pricing-ops", Password: "s3cret!", Name: "Pricing Ops"}
	suite.repo.On("FindUserByUsername", ctx, "pricing-ops").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.repo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEqual("s3cret!", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("s3cret!", saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "pricing-ops", Password: "s3cret!", Name: "Pricing Ops"}
	suite.repo.On("FindUserByUsername", ctx, "pricing-ops").Return(&domain.User{UserID: "existing"}, nil).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.repo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
