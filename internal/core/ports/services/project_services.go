package services

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProject retrieves a project. The requesting user must hold a
	// membership in the project's workspace.
	GetProject(ctx context.Context, requestingUserID, projectID string) (*domain.Project, error)

	// ListWorkspaceProjects retrieves the projects of a workspace, ordered
	// by creation time ascending. Member-gated.
	ListWorkspaceProjects(ctx context.Context, requestingUserID, workspaceID string) ([]domain.Project, error)

	// ListUserProjects retrieves projects across every workspace the user
	// belongs to, newest first. This is the dashboard listing; a user with
	// no projects gets an empty slice, not an error.
	ListUserProjects(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject creates a project bound to the given workspace. The
	// creator must hold a membership in that workspace; creation has no
	// side effect on memberships.
	CreateProject(ctx context.Context, creatorUserID, workspaceID, name, description string) (*domain.Project, error)

	// UpdateProject renames or re-describes a project. Allowed for the
	// project's creator or a workspace OWNER.
	UpdateProject(ctx context.Context, requestingUserID, projectID, name, description string) (*domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
