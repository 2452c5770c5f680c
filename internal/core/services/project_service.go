package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
)

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	projectRepo   portsrepo.ProjectRepositoryFacade
	workspaceRepo portsrepo.WorkspaceReader
	authorizer    portssvc.AuthorizerSvc
}

// NewProjectService creates a new project service with the provided dependencies
func NewProjectService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	workspaceRepo portsrepo.WorkspaceReader,
	authorizer portssvc.AuthorizerSvc,
) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		authorizer:    authorizer,
	}
}

// Ensure projectService implements the ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject creates a project bound to the given workspace. The creator
// must already hold a membership there; creation never touches memberships.
// The server-side workspace filter in the UI is not the security boundary,
// this check is.
func (s *projectService) CreateProject(ctx context.Context, creatorUserID, workspaceID, name, description string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name must not be empty", apperrors.ErrValidation)
	}

	if _, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve workspace for project creation",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	if err := s.authorizer.AuthorizeWorkspaceAction(ctx, creatorUserID, workspaceID, portssvc.ActionCreateProject); err != nil {
		return nil, err
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project",
			slog.String("project_id", project.ProjectID),
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Project created successfully",
		slog.String("project_id", project.ProjectID),
		slog.String("workspace_id", workspaceID),
		slog.String("creator_id", creatorUserID))
	return &project, nil
}

// GetProject retrieves a project. Viewing requires a membership in the
// project's workspace.
func (s *projectService) GetProject(ctx context.Context, requestingUserID, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project by ID",
				slog.String("project_id", projectID))
		}
		return nil, err
	}

	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionViewProject); err != nil {
		return nil, err
	}

	return project, nil
}

// ListWorkspaceProjects retrieves a workspace's projects, oldest first.
func (s *projectService) ListWorkspaceProjects(ctx context.Context, requestingUserID, workspaceID string) ([]domain.Project, error) {
	if _, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeWorkspaceAction(ctx, requestingUserID, workspaceID, portssvc.ActionViewProject); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListProjectsByWorkspaceID(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects for workspace",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

// ListUserProjects retrieves the dashboard listing: projects across every
// workspace the user belongs to, newest first. A user with no memberships or
// no projects gets an empty slice, never an error.
func (s *projectService) ListUserProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjectsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if projects == nil {
		return []domain.Project{}, nil
	}

	s.LogDebug(ctx, "Projects listed successfully",
		slog.Int("count", len(projects)),
		slog.String("user_id", userID))
	return projects, nil
}

// UpdateProject renames or re-describes a project. Creator or workspace OWNER.
func (s *projectService) UpdateProject(ctx context.Context, requestingUserID, projectID, name, description string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name must not be empty", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionUpdateProject); err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project",
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Project updated successfully",
		slog.String("project_id", projectID))
	return project, nil
}
