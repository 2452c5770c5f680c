package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/core/services"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	mockProjectRepo   *MockProjectRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	mockAuthorizer    *MockAuthorizer
	service           portssvc.ProjectSvcFacade
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewProjectService(suite.mockProjectRepo, suite.mockWorkspaceRepo, suite.mockAuthorizer)
}

// --- CreateProject Tests ---

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(&domain.Workspace{WorkspaceID: workspaceID}, nil).Once()
	suite.mockAuthorizer.On("AuthorizeWorkspaceAction", ctx, creatorID, workspaceID, portssvc.ActionCreateProject).Return(nil).Once()
	suite.mockProjectRepo.On("SaveProject", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.WorkspaceID == workspaceID && p.Name == "Website Redesign" && p.CreatedBy == creatorID
	})).Return(nil).Once()

	project, err := suite.service.CreateProject(ctx, creatorID, workspaceID, "Website Redesign", "Q3 refresh")

	suite.Require().NoError(err)
	suite.Require().NotNil(project)
	suite.Equal(workspaceID, project.WorkspaceID)
	suite.NotEmpty(project.ProjectID)
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestCreateProject_EmptyName() {
	ctx := context.Background()

	project, err := suite.service.CreateProject(ctx, uuid.NewString(), uuid.NewString(), "  ", "")

	suite.Require().Error(err)
	suite.Nil(project)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "SaveProject", mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_WorkspaceNotFound() {
	ctx := context.Background()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(nil, apperrors.ErrNotFound).Once()

	project, err := suite.service.CreateProject(ctx, uuid.NewString(), workspaceID, "Ops", "")

	suite.Require().Error(err)
	suite.Nil(project)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "AuthorizeWorkspaceAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_NonMemberForbidden() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	workspaceID := uuid.NewString()

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(&domain.Workspace{WorkspaceID: workspaceID}, nil).Once()
	suite.mockAuthorizer.On("AuthorizeWorkspaceAction", ctx, creatorID, workspaceID, portssvc.ActionCreateProject).Return(apperrors.ErrForbidden).Once()

	project, err := suite.service.CreateProject(ctx, creatorID, workspaceID, "Sneaky", "")

	suite.Require().Error(err)
	suite.Nil(project)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "SaveProject", mock.Anything, mock.Anything)
}

// --- GetProject Tests ---

func (suite *ProjectServiceTestSuite) TestGetProject_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString(), Name: "Docs"}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, userID, project, portssvc.ActionViewProject).Return(nil).Once()

	result, err := suite.service.GetProject(ctx, userID, projectID)

	suite.Require().NoError(err)
	suite.Equal(project, result)
}

func (suite *ProjectServiceTestSuite) TestGetProject_NonMemberForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, userID, project, portssvc.ActionViewProject).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.GetProject(ctx, userID, projectID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- ListUserProjects Tests ---

func (suite *ProjectServiceTestSuite) TestListUserProjects_EmptyIsNotAnError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockProjectRepo.On("ListProjectsByUserID", ctx, userID).Return(nil, nil).Once()

	projects, err := suite.service.ListUserProjects(ctx, userID)

	suite.Require().NoError(err)
	suite.NotNil(projects)
	suite.Empty(projects)
}

func (suite *ProjectServiceTestSuite) TestListUserProjects_ReturnsAllWorkspaces() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.Project{
		{ProjectID: uuid.NewString(), WorkspaceID: uuid.NewString(), Name: "Newest"},
		{ProjectID: uuid.NewString(), WorkspaceID: uuid.NewString(), Name: "Older"},
	}

	suite.mockProjectRepo.On("ListProjectsByUserID", ctx, userID).Return(expected, nil).Once()

	projects, err := suite.service.ListUserProjects(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, projects)
}

// --- ListWorkspaceProjects Tests ---

func (suite *ProjectServiceTestSuite) TestListWorkspaceProjects_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	workspaceID := uuid.NewString()
	expected := []domain.Project{{ProjectID: uuid.NewString(), WorkspaceID: workspaceID}}

	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, workspaceID).Return(&domain.Workspace{WorkspaceID: workspaceID}, nil).Once()
	suite.mockAuthorizer.On("AuthorizeWorkspaceAction", ctx, userID, workspaceID, portssvc.ActionViewProject).Return(nil).Once()
	suite.mockProjectRepo.On("ListProjectsByWorkspaceID", ctx, workspaceID).Return(expected, nil).Once()

	projects, err := suite.service.ListWorkspaceProjects(ctx, userID, workspaceID)

	suite.Require().NoError(err)
	suite.Equal(expected, projects)
}

// --- UpdateProject Tests ---

func (suite *ProjectServiceTestSuite) TestUpdateProject_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString(), Name: "Old"}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, userID, project, portssvc.ActionUpdateProject).Return(nil).Once()
	suite.mockProjectRepo.On("UpdateProject", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.Name == "New" && p.LastUpdatedBy == userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProject(ctx, userID, projectID, "New", "desc")

	suite.Require().NoError(err)
	suite.Equal("New", updated.Name)
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_Forbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	projectID := uuid.NewString()
	project := &domain.Project{ProjectID: projectID, WorkspaceID: uuid.NewString()}

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(project, nil).Once()
	suite.mockAuthorizer.On("AuthorizeProjectAction", ctx, userID, project, portssvc.ActionUpdateProject).Return(apperrors.ErrForbidden).Once()

	updated, err := suite.service.UpdateProject(ctx, userID, projectID, "New", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "UpdateProject", mock.Anything, mock.Anything)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
