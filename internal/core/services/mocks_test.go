package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
)

// --- Mock WorkspaceRepository (based on WorkspaceRepositoryFacade usage) ---
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	var ws []domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).([]domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) FindDefaultWorkspaceByCreator(ctx context.Context, userID string) (*domain.Workspace, error) {
	args := m.Called(ctx, userID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspaceWithOwner(ctx context.Context, workspace domain.Workspace, owner domain.Membership) error {
	args := m.Called(ctx, workspace, owner)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
	args := m.Called(ctx, membership)
	var ms *domain.Membership
	if args.Get(0) != nil {
		ms = args.Get(0).(*domain.Membership)
	}
	return ms, args.Error(1)
}

func (m *MockWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, workspaceID, userID)
	var ms *domain.Membership
	if args.Get(0) != nil {
		ms = args.Get(0).(*domain.Membership)
	}
	return ms, args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembershipsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	args := m.Called(ctx, workspaceID)
	var ms []domain.Membership
	if args.Get(0) != nil {
		ms = args.Get(0).([]domain.Membership)
	}
	return ms, args.Error(1)
}

func (m *MockWorkspaceRepository) RemoveMembership(ctx context.Context, workspaceID, userID string) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateMembershipRole(ctx context.Context, workspaceID, userID string, newRole domain.WorkspaceRole) error {
	args := m.Called(ctx, workspaceID, userID, newRole)
	return args.Error(0)
}

// --- Mock UserRepository (based on UserRepositoryFacade usage) ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deleterUserID string) error {
	args := m.Called(ctx, userID, deletedAt, deleterUserID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock ProjectRepository (based on ProjectRepositoryFacade usage) ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID)
	var ps []domain.Project
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Project)
	}
	return ps, args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByUserID(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	var ps []domain.Project
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Project)
	}
	return ps, args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// --- Mock InvitationRepository (based on InvitationRepositoryFacade usage) ---
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	args := m.Called(ctx, invitationID)
	var inv *domain.Invitation
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invitation)
	}
	return inv, args.Error(1)
}

func (m *MockInvitationRepository) ListInvitationsByProjectID(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	args := m.Called(ctx, projectID)
	var invs []domain.Invitation
	if args.Get(0) != nil {
		invs = args.Get(0).([]domain.Invitation)
	}
	return invs, args.Error(1)
}

func (m *MockInvitationRepository) SaveInvitationSuperseding(ctx context.Context, invitation domain.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) MarkAccepted(ctx context.Context, invitationID string, acceptedBy string, resolvedAt time.Time, membership domain.Membership) error {
	args := m.Called(ctx, invitationID, acceptedBy, resolvedAt, membership)
	return args.Error(0)
}

func (m *MockInvitationRepository) MarkRevoked(ctx context.Context, invitationID string, resolvedAt time.Time) error {
	args := m.Called(ctx, invitationID, resolvedAt)
	return args.Error(0)
}

// --- Mock TaskRepository (based on TaskRepositoryFacade usage) ---
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	var t *domain.Task
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.Task)
	}
	return t, args.Error(1)
}

func (m *MockTaskRepository) ListTasksByProjectID(ctx context.Context, projectID string) ([]domain.Task, error) {
	args := m.Called(ctx, projectID)
	var ts []domain.Task
	if args.Get(0) != nil {
		ts = args.Get(0).([]domain.Task)
	}
	return ts, args.Error(1)
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, updatedBy string) error {
	args := m.Called(ctx, taskID, status, updatedBy)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// --- Mock TaskNotifier (based on TaskNotifierSvc usage) ---
type MockTaskNotifier struct {
	mock.Mock
}

func (m *MockTaskNotifier) NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task, project *domain.Project) error {
	args := m.Called(ctx, assignee, task, project)
	return args.Error(0)
}

// --- Mock Authorizer (based on AuthorizerSvc usage) ---
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeWorkspaceAction(ctx context.Context, userID, workspaceID string, action portssvc.AuthzAction) error {
	args := m.Called(ctx, userID, workspaceID, action)
	return args.Error(0)
}

func (m *MockAuthorizer) AuthorizeProjectAction(ctx context.Context, userID string, project *domain.Project, action portssvc.AuthzAction) error {
	args := m.Called(ctx, userID, project, action)
	return args.Error(0)
}
