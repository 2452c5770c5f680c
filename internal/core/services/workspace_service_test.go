package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/core/services"
)

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	mockUserRepo      *MockUserRepository
	service           portssvc.WorkspaceSvcFacade
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewWorkspaceService(suite.mockWorkspaceRepo, suite.mockUserRepo)
}

// --- ProvisionDefaultWorkspace Tests ---

func (suite *WorkspaceServiceTestSuite) TestProvisionDefaultWorkspace_CreatesWorkspaceAndOwner() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Alice", Email: "alice@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockWorkspaceRepo.On("FindDefaultWorkspaceByCreator", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWorkspaceRepo.On("SaveWorkspaceWithOwner", ctx,
		mock.MatchedBy(func(w domain.Workspace) bool {
			return w.IsDefault && w.Name == "Alice's Workspace" && w.CreatedBy == userID
		}),
		mock.MatchedBy(func(m domain.Membership) bool {
			return m.UserID == userID && m.Role == domain.RoleOwner
		}),
	).Return(nil).Once()

	workspace, err := suite.service.ProvisionDefaultWorkspace(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(workspace)
	suite.True(workspace.IsDefault)
	suite.Equal("Alice's Workspace", workspace.Name)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestProvisionDefaultWorkspace_Idempotent() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Alice", Email: "alice@example.com"}
	existing := &domain.Workspace{WorkspaceID: uuid.NewString(), Name: "Alice's Workspace", IsDefault: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Twice()
	suite.mockWorkspaceRepo.On("FindDefaultWorkspaceByCreator", ctx, userID).Return(existing, nil).Twice()

	first, err := suite.service.ProvisionDefaultWorkspace(ctx, userID)
	suite.Require().NoError(err)
	second, err := suite.service.ProvisionDefaultWorkspace(ctx, userID)
	suite.Require().NoError(err)

	// Same workspace both times, no save ever issued
	suite.Equal(first.WorkspaceID, second.WorkspaceID)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "SaveWorkspaceWithOwner", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestProvisionDefaultWorkspace_ConcurrentRace() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Alice", Email: "alice@example.com"}
	winner := &domain.Workspace{WorkspaceID: uuid.NewString(), IsDefault: true}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	// Lookup misses, save loses the race, second lookup returns the winner
	suite.mockWorkspaceRepo.On("FindDefaultWorkspaceByCreator", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWorkspaceRepo.On("SaveWorkspaceWithOwner", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockWorkspaceRepo.On("FindDefaultWorkspaceByCreator", ctx, userID).Return(winner, nil).Once()

	workspace, err := suite.service.ProvisionDefaultWorkspace(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(winner.WorkspaceID, workspace.WorkspaceID)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestProvisionDefaultWorkspace_NameFallsBackToEmailLocalPart() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "", Email: "bob@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockWorkspaceRepo.On("FindDefaultWorkspaceByCreator", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWorkspaceRepo.On("SaveWorkspaceWithOwner", ctx, mock.MatchedBy(func(w domain.Workspace) bool {
		return w.Name == "bob's Workspace"
	}), mock.Anything).Return(nil).Once()

	workspace, err := suite.service.ProvisionDefaultWorkspace(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal("bob's Workspace", workspace.Name)
}

// --- CreateWorkspace Tests ---

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockWorkspaceRepo.On("SaveWorkspaceWithOwner", ctx,
		mock.MatchedBy(func(w domain.Workspace) bool {
			return w.Name == "Marketing" && !w.IsDefault && w.CreatedBy == creatorID
		}),
		mock.MatchedBy(func(m domain.Membership) bool {
			return m.UserID == creatorID && m.Role == domain.RoleOwner
		}),
	).Return(nil).Once()

	workspace, err := suite.service.CreateWorkspace(ctx, "Marketing", "Campaign planning", creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(workspace)
	suite.Equal("Marketing", workspace.Name)
	suite.NotEmpty(workspace.WorkspaceID)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_EmptyName() {
	ctx := context.Background()

	workspace, err := suite.service.CreateWorkspace(ctx, "   ", "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(workspace)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "SaveWorkspaceWithOwner", mock.Anything, mock.Anything, mock.Anything)
}

// --- FindWorkspaceByID Tests ---

func (suite *WorkspaceServiceTestSuite) TestFindWorkspaceByID_NonMemberForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	workspaceID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: workspaceID, Name: "Ops"}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(workspace, nil).Once()
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, userID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.FindWorkspaceByID(ctx, userID, workspaceID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *WorkspaceServiceTestSuite) TestFindWorkspaceByID_NotFound() {
	ctx := context.Background()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.FindWorkspaceByID(ctx, uuid.NewString(), workspaceID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListUserWorkspaces Tests ---

func (suite *WorkspaceServiceTestSuite) TestListUserWorkspaces_EmptyIsNotAnError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockWorkspaceRepo.On("ListWorkspacesByUserID", ctx, userID).Return(nil, nil).Once()

	workspaces, err := suite.service.ListUserWorkspaces(ctx, userID)

	suite.Require().NoError(err)
	suite.NotNil(workspaces)
	suite.Empty(workspaces)
}

// --- AddUserToWorkspace Tests ---

func (suite *WorkspaceServiceTestSuite) TestAddUserToWorkspace_NonOwnerForbidden() {
	ctx := context.Background()
	addingUserID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspaceID := uuid.NewString()

	member := &domain.Membership{WorkspaceID: workspaceID, UserID: addingUserID, Role: domain.RoleMember}
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, addingUserID).Return(member, nil).Once()

	membership, err := suite.service.AddUserToWorkspace(ctx, addingUserID, targetUserID, workspaceID, domain.RoleMember)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAddUserToWorkspace_SelfAddWithoutMembershipForbidden() {
	ctx := context.Background()
	strangerID := uuid.NewString()
	workspaceID := uuid.NewString()

	// A user with no membership cannot grant themselves one, whatever role
	// they ask for. Joining a workspace goes through invitation acceptance.
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, strangerID).Return(nil, apperrors.ErrNotFound).Once()

	membership, err := suite.service.AddUserToWorkspace(ctx, strangerID, strangerID, workspaceID, domain.RoleOwner)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAddUserToWorkspace_MemberSelfPromotionForbidden() {
	ctx := context.Background()
	memberID := uuid.NewString()
	workspaceID := uuid.NewString()

	member := &domain.Membership{WorkspaceID: workspaceID, UserID: memberID, Role: domain.RoleMember}
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, memberID).Return(member, nil).Once()

	membership, err := suite.service.AddUserToWorkspace(ctx, memberID, memberID, workspaceID, domain.RoleOwner)

	suite.Require().Error(err)
	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "AddMembership", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAddUserToWorkspace_ReAddReturnsExistingRole() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspaceID := uuid.NewString()

	ownerMembership := &domain.Membership{WorkspaceID: workspaceID, UserID: ownerID, Role: domain.RoleOwner}
	existing := &domain.Membership{WorkspaceID: workspaceID, UserID: targetUserID, Role: domain.RoleOwner}

	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, ownerID).Return(ownerMembership, nil).Once()
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(&domain.Workspace{WorkspaceID: workspaceID}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetUserID).Return(&domain.User{UserID: targetUserID}, nil).Once()
	// Repo returns the persisted membership untouched, even though the
	// caller asked for MEMBER
	suite.mockWorkspaceRepo.On("AddMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == targetUserID && m.Role == domain.RoleMember
	})).Return(existing, nil).Once()

	membership, err := suite.service.AddUserToWorkspace(ctx, ownerID, targetUserID, workspaceID, domain.RoleMember)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleOwner, membership.Role)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

// --- RemoveUserFromWorkspace Tests ---

func (suite *WorkspaceServiceTestSuite) TestRemoveUserFromWorkspace_SelfLeaveAllowed() {
	ctx := context.Background()
	userID := uuid.NewString()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("RemoveMembership", ctx, workspaceID, userID).Return(nil).Once()

	err := suite.service.RemoveUserFromWorkspace(ctx, userID, userID, workspaceID)

	suite.Require().NoError(err)
	// No role lookup needed for self-removal
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "FindMembership", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestRemoveUserFromWorkspace_LastMemberRefused() {
	ctx := context.Background()
	userID := uuid.NewString()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("RemoveMembership", ctx, workspaceID, userID).Return(apperrors.ErrInvariantViolation).Once()

	err := suite.service.RemoveUserFromWorkspace(ctx, userID, userID, workspaceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvariantViolation)
}

func (suite *WorkspaceServiceTestSuite) TestRemoveUserFromWorkspace_MemberCannotRemoveOthers() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspaceID := uuid.NewString()

	member := &domain.Membership{WorkspaceID: workspaceID, UserID: requesterID, Role: domain.RoleMember}
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, requesterID).Return(member, nil).Once()

	err := suite.service.RemoveUserFromWorkspace(ctx, requesterID, targetUserID, workspaceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "RemoveMembership", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateUserWorkspaceRole Tests ---

func (suite *WorkspaceServiceTestSuite) TestUpdateUserWorkspaceRole_OwnerOnly() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspaceID := uuid.NewString()

	member := &domain.Membership{WorkspaceID: workspaceID, UserID: requesterID, Role: domain.RoleMember}
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, requesterID).Return(member, nil).Once()

	err := suite.service.UpdateUserWorkspaceRole(ctx, requesterID, targetUserID, workspaceID, domain.RoleOwner)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "UpdateMembershipRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestUpdateUserWorkspaceRole_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	targetUserID := uuid.NewString()
	workspaceID := uuid.NewString()

	owner := &domain.Membership{WorkspaceID: workspaceID, UserID: ownerID, Role: domain.RoleOwner}
	suite.mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, ownerID).Return(owner, nil).Once()
	suite.mockWorkspaceRepo.On("UpdateMembershipRole", ctx, workspaceID, targetUserID, domain.RoleOwner).Return(nil).Once()

	err := suite.service.UpdateUserWorkspaceRole(ctx, ownerID, targetUserID, workspaceID, domain.RoleOwner)

	suite.Require().NoError(err)
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}

func TestListWorkspaceUsers_NonMemberForbidden(t *testing.T) {
	ctx := context.Background()
	mockWorkspaceRepo := new(MockWorkspaceRepository)
	mockUserRepo := new(MockUserRepository)
	service := services.NewWorkspaceService(mockWorkspaceRepo, mockUserRepo)

	workspaceID := uuid.NewString()
	userID := uuid.NewString()

	mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(&domain.Workspace{WorkspaceID: workspaceID}, nil).Once()
	mockWorkspaceRepo.On("FindMembership", ctx, workspaceID, userID).Return(nil, apperrors.ErrNotFound).Once()

	members, err := service.ListWorkspaceUsers(ctx, userID, workspaceID)

	assert.Error(t, err)
	assert.Nil(t, members)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
