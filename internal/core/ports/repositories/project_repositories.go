package repositories

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjectsByWorkspaceID retrieves all projects in a workspace,
	// ordered by creation time ascending.
	ListProjectsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Project, error)

	// ListProjectsByUserID retrieves projects across every workspace the
	// user belongs to, ordered by creation time descending (newest first).
	ListProjectsByUserID(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates a project's name and description.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
