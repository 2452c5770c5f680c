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
)

type InvitationServiceTestSuite struct {
	suite.Suite
	mockInvitationRepo *MockInvitationRepository
	mockProjectRepo    *MockProjectRepository
	mockUserRepo       *MockUserRepository
	mockAuthorizer     *MockAuthorizer
	service            portssvc.InvitationSvcFacade
}

func (suite *InvitationServiceTestSuite) SetupTest() {
	suite.mockInvitationRepo = new(MockInvitationRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewInvitationService(
		suite.mockInvitationRepo,
		suite.mockProjectRepo,
		suite.mockUserRepo,
		suite.mockAuthorizer,
	)
}

// --- Invite Tests ---

func (suite *InvitationServiceTestSuite) TestInvite_Success() {
	ctx := context.Background()
	inviterID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, inviterID, project, portssvc.ActionInviteMember).Return(nil).Once()
	suite.mockInvitationRepo.On("SaveInvitationSuperseding", ctx, mock.MatchedBy(func(inv domain.Invitation) bool {
		return inv.ProjectID == projectID &&
			inv.Email == "colleague@example.com" &&
			inv.Status == domain.InvitationPending &&
			inv.InvitedBy == inviterID
	})).Return(nil).Once()

	invitation, err := suite.service.Invite(ctx, inviterID, projectID, "Colleague@Example.com ")

	suite.Require().NoError(err)
	suite.Require().NotNil(invitation)
	suite.Equal(domain.InvitationPending, invitation.Status)
	suite.Equal("colleague@example.com", invitation.Email)
	suite.NotEmpty(invitation.InvitationID)
	suite.mockInvitationRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestInvite_InvalidEmail() {
	ctx := context.Background()
	inviterID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, inviterID, project, portssvc.ActionInviteMember).Return(nil).Once()

	invitation, err := suite.service.Invite(ctx, inviterID, projectID, "not-an-email")

	suite.Require().Error(err)
	suite.Nil(invitation)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "SaveInvitationSuperseding", mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestInvite_NotAuthorizedForbidden() {
	ctx := context.Background()
	inviterID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, inviterID, project, portssvc.ActionInviteMember).Return(apperrors.ErrForbidden).Once()

	invitation, err := suite.service.Invite(ctx, inviterID, projectID, "colleague@example.com")

	suite.Require().Error(err)
	suite.Nil(invitation)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "SaveInvitationSuperseding", mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestInvite_ProjectNotFound() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(nil, apperrors.ErrNotFound).Once()

	invitation, err := suite.service.Invite(ctx, uuid.NewString(), projectID, "colleague@example.com")

	suite.Require().Error(err)
	suite.Nil(invitation)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "AuthorizeProjectAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Accept Tests ---

func (suite *InvitationServiceTestSuite) TestAccept_Success() {
	ctx := context.Background()
	inviteeID := uuid.NewString()
	invitationID := uuid.NewString()
	projectID := uuid.NewString()
	workspaceID := uuid.NewString()

	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    projectID,
		Email:        "invitee@example.com",
		Status:       domain.InvitationPending,
		InvitedBy:    uuid.NewString(),
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, inviteeID).Return(&domain.User{UserID: inviteeID, Email: "Invitee@Example.com"}, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(&domain.Project{ProjectID: projectID, WorkspaceID: workspaceID}, nil).Once()
	suite.mockInvitationRepo.On("MarkAccepted", ctx, invitationID, inviteeID, mock.AnythingOfType("time.Time"), mock.MatchedBy(func(m domain.Membership) bool {
		return m.WorkspaceID == workspaceID && m.UserID == inviteeID && m.Role == domain.RoleMember
	})).Return(nil).Once()

	accepted, err := suite.service.Accept(ctx, inviteeID, invitationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(accepted)
	suite.Equal(domain.InvitationAccepted, accepted.Status)
	suite.Require().NotNil(accepted.AcceptedBy)
	suite.Equal(inviteeID, *accepted.AcceptedBy)
	suite.NotNil(accepted.ResolvedAt)
	suite.mockInvitationRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestAccept_TerminalInvitation() {
	ctx := context.Background()
	inviteeID := uuid.NewString()
	invitationID := uuid.NewString()

	now := time.Now()
	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    uuid.NewString(),
		Email:        "invitee@example.com",
		Status:       domain.InvitationRevoked,
		ResolvedAt:   &now,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()

	accepted, err := suite.service.Accept(ctx, inviteeID, invitationID)

	suite.Require().Error(err)
	suite.Nil(accepted)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "MarkAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestAccept_WrongAddresseeForbidden() {
	ctx := context.Background()
	inviteeID := uuid.NewString()
	invitationID := uuid.NewString()

	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    uuid.NewString(),
		Email:        "someone-else@example.com",
		Status:       domain.InvitationPending,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, inviteeID).Return(&domain.User{UserID: inviteeID, Email: "invitee@example.com"}, nil).Once()

	accepted, err := suite.service.Accept(ctx, inviteeID, invitationID)

	suite.Require().Error(err)
	suite.Nil(accepted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "MarkAccepted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestAccept_LostRaceReturnsInvalidState() {
	ctx := context.Background()
	inviteeID := uuid.NewString()
	invitationID := uuid.NewString()
	projectID := uuid.NewString()

	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    projectID,
		Email:        "invitee@example.com",
		Status:       domain.InvitationPending,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, inviteeID).Return(&domain.User{UserID: inviteeID, Email: "invitee@example.com"}, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(&domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}, nil).Once()
	suite.mockInvitationRepo.On("MarkAccepted", ctx, invitationID, inviteeID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.Membership")).
		Return(apperrors.ErrInvalidState).Once()

	accepted, err := suite.service.Accept(ctx, inviteeID, invitationID)

	suite.Require().Error(err)
	suite.Nil(accepted)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- Revoke Tests ---

func (suite *InvitationServiceTestSuite) TestRevoke_Success() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	invitationID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    projectID,
		Email:        "invitee@example.com",
		Status:       domain.InvitationPending,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, requesterID, project, portssvc.ActionInviteMember).Return(nil).Once()
	suite.mockInvitationRepo.On("MarkRevoked", ctx, invitationID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	revoked, err := suite.service.Revoke(ctx, requesterID, invitationID)

	suite.Require().NoError(err)
	suite.Require().NotNil(revoked)
	suite.Equal(domain.InvitationRevoked, revoked.Status)
	suite.NotNil(revoked.ResolvedAt)
	suite.mockInvitationRepo.AssertExpectations(suite.T())
}

func (suite *InvitationServiceTestSuite) TestRevoke_TerminalIsNoOp() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	invitationID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	acceptedBy := uuid.NewString()
	now := time.Now()
	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    projectID,
		Email:        "invitee@example.com",
		Status:       domain.InvitationAccepted,
		AcceptedBy:   &acceptedBy,
		ResolvedAt:   &now,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, requesterID, project, portssvc.ActionInviteMember).Return(nil).Once()

	result, err := suite.service.Revoke(ctx, requesterID, invitationID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvitationAccepted, result.Status)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "MarkRevoked", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvitationServiceTestSuite) TestRevoke_NotAuthorizedForbidden() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	invitationID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	invitation := &domain.Invitation{
		InvitationID: invitationID,
		ProjectID:    projectID,
		Status:       domain.InvitationPending,
	}

	suite.mockInvitationRepo.On("FindInvitationByID", ctx, invitationID).Return(invitation, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, requesterID, project, portssvc.ActionInviteMember).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.Revoke(ctx, requesterID, invitationID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvitationRepo.AssertNotCalled(suite.T(), "MarkRevoked", mock.Anything, mock.Anything, mock.Anything)
}

// --- ListProjectInvitations Tests ---

func (suite *InvitationServiceTestSuite) TestListProjectInvitations_Success() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}
	expected := []domain.Invitation{
		{InvitationID: uuid.NewString(), ProjectID: projectID, Status: domain.InvitationPending},
		{InvitationID: uuid.NewString(), ProjectID: projectID, Status: domain.InvitationRevoked},
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, requesterID, project, portssvc.ActionManageInvitations).Return(nil).Once()
	suite.mockInvitationRepo.On("ListInvitationsByProjectID", ctx, projectID).Return(expected, nil).Once()

	invitations, err := suite.service.ListProjectInvitations(ctx, requesterID, projectID)

	suite.Require().NoError(err)
	suite.Equal(expected, invitations)
}

func (suite *InvitationServiceTestSuite) TestListProjectInvitations_EmptyIsNotAnError() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, requesterID, project, portssvc.ActionManageInvitations).Return(nil).Once()
	suite.mockInvitationRepo.On("ListInvitationsByProjectID", ctx, projectID).Return(nil, nil).Once()

	invitations, err := suite.service.ListProjectInvitations(ctx, requesterID, projectID)

	suite.Require().NoError(err)
	suite.NotNil(invitations)
	suite.Empty(invitations)
}

func TestInvitationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}
