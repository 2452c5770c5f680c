package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/core/services"
	"github.com/teamdesk/team_desk_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "alice@example.com" &&
			u.Name == "Alice" &&
			u.AuthProvider == services.AuthProviderLocal &&
			u.PasswordHash != "" &&
			u.PasswordHash != "Sup3rSecret!" &&
			u.CreatedBy == u.UserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, "Alice", " Alice@Example.COM ", "Sup3rSecret!")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("alice@example.com", user.Email)
	suite.True(utils.CheckPasswordHash("Sup3rSecret!", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ShortPassword() {
	ctx := context.Background()

	user, err := suite.service.CreateUser(ctx, "Alice", "alice@example.com", "short")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "alice@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, "Alice", "alice@example.com", "Sup3rSecret!")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- FindOrCreateOAuthUser Tests ---

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_ExistingProviderIdentity() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub-123", Email: "alice@example.com", Name: "Alice"}
	existing := &domain.User{UserID: uuid.NewString(), Email: "alice@example.com", AuthProvider: "google"}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "google", "google-sub-123").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, info, "google")

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_LinksLocalAccount() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub-123", Email: "Alice@Example.com", Name: "Alice"}
	local := &domain.User{UserID: uuid.NewString(), Email: "alice@example.com", AuthProvider: services.AuthProviderLocal}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "google", "google-sub-123").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(local, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == local.UserID &&
			u.AuthProvider == "google" &&
			u.ProviderUserID != nil && *u.ProviderUserID == "google-sub-123"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, info, "google")

	suite.Require().NoError(err)
	suite.Equal(local.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_CreatesNewUser() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{ID: "google-sub-456", Email: "bob@example.com", Name: "Bob"}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "google", "google-sub-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "bob@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "bob@example.com" &&
			u.Name == "Bob" &&
			u.AuthProvider == "google" &&
			u.ProviderUserID != nil && *u.ProviderUserID == "google-sub-456" &&
			u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, info, "google")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUserName Tests ---

func (suite *UserServiceTestSuite) TestUpdateUserName_SelfOnly() {
	ctx := context.Background()

	user, err := suite.service.UpdateUserName(ctx, uuid.NewString(), uuid.NewString(), "New Name")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUserName_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Old Name", Email: "alice@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == "New Name" && u.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUserName(ctx, userID, userID, "New Name")

	suite.Require().NoError(err)
	suite.Equal("New Name", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---

func (suite *UserServiceTestSuite) TestDeleteUser_SelfOnly() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, uuid.NewString(), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Refresh Token Tests ---

func (suite *UserServiceTestSuite) TestStoreRefreshToken_HashesBeforeStoring() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, utils.HashRefreshToken("raw-token"), expiry).Return(nil).Once()

	err := suite.service.StoreRefreshToken(ctx, userID, "raw-token", expiry)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
