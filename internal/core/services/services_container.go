package services

import (
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/platform/config"
)

// NewServiceContainer wires all services from the repository provider and
// configuration. The authorization guard is shared by every service that
// gates an operation on membership state.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	authorizer := NewAuthorizerService(repos.WorkspaceRepo)

	userService := NewUserService(repos.UserRepo)
	workspaceService := NewWorkspaceService(repos.WorkspaceRepo, repos.UserRepo)
	projectService := NewProjectService(repos.ProjectRepo, repos.WorkspaceRepo, authorizer)
	invitationService := NewInvitationService(repos.InvitationRepo, repos.ProjectRepo, repos.UserRepo, authorizer)
	taskService := NewTaskService(repos.TaskRepo, repos.ProjectRepo, repos.WorkspaceRepo, repos.UserRepo, authorizer, NewLogTaskNotifier(cfg))

	return &portssvc.ServiceContainer{
		User:        userService,
		Token:       NewTokenService(cfg, userService),
		GoogleOAuth: NewGoogleOAuthHandlerService(cfg),
		Workspace:   workspaceService,
		Authorizer:  authorizer,
		Project:     projectService,
		Invitation:  invitationService,
		Task:        taskService,
	}
}
