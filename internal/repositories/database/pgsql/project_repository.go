package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

var FULL_PROJECT_SELECT_QUERY = `
SELECT
	p.project_id, p.workspace_id, p.name, p.description,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

// getProjects private func to get projects from the select query filters
func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	query := FULL_PROJECT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()
	projects, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Project])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Project{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect project rows", err)
	}

	return projects, nil
}

// SaveProject persists a new project
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			project_id, workspace_id, name, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.WorkspaceID,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("project already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation on workspace_id
				return apperrors.NewNotFoundError("workspace not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save project "+project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `WHERE p.project_id = $1`
	projects, err := r.getProjects(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &projects[0], nil
}

// ListProjectsByWorkspaceID returns a workspace's projects, oldest first.
func (r *PgxProjectRepository) ListProjectsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	query := `
		WHERE p.workspace_id = $1
		ORDER BY p.created_at ASC;
	`
	return r.getProjects(ctx, query, workspaceID)
}

// ListProjectsByUserID returns every project in every workspace the user is
// a member of, newest first. This feeds the cross-workspace dashboard.
func (r *PgxProjectRepository) ListProjectsByUserID(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `
		JOIN workspace_members wm ON p.workspace_id = wm.workspace_id
		WHERE wm.user_id = $1
		ORDER BY p.created_at DESC;
	`
	return r.getProjects(ctx, query, userID)
}

// UpdateProject updates a project's name and description
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE project_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project "+project.ProjectID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}
