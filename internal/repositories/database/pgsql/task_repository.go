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

type PgxTaskRepository struct {
	BaseRepository
}

// newPgxTaskRepository creates a new repository for task data.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTaskRepository implements portsrepo.TaskRepositoryFacade
var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

var FULL_TASK_SELECT_QUERY = `
SELECT
	t.task_id, t.project_id, t.parent_task_id, t.name, t.description,
	t.status, t.priority, t.assignee_id, t.due_date,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM tasks t
`

// getTasks private func to get tasks from the select query filters
func (r *PgxTaskRepository) getTasks(ctx context.Context, filterQuery string, args ...any) ([]domain.Task, error) {
	query := FULL_TASK_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	defer rows.Close()
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Task{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect task rows", err)
	}

	return tasks, nil
}

// SaveTask persists a new task
func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
		INSERT INTO tasks (
			task_id, project_id, parent_task_id, name, description,
			status, priority, assignee_id, due_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		task.TaskID,
		task.ProjectID,
		task.ParentTaskID,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.AssigneeID,
		task.DueDate,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("task already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation on project/parent/assignee
				return apperrors.NewNotFoundError("task reference not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save task "+task.TaskID, err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `WHERE t.task_id = $1`
	tasks, err := r.getTasks(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tasks[0], nil
}

// ListTasksByProjectID returns a project's tasks, oldest first. The board
// groups them into columns client-side.
func (r *PgxTaskRepository) ListTasksByProjectID(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `
		WHERE t.project_id = $1
		ORDER BY t.created_at ASC;
	`
	return r.getTasks(ctx, query, projectID)
}

// UpdateTask updates a task's mutable fields
func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, status = $4, priority = $5,
			assignee_id = $6, due_date = $7, last_updated_at = $8, last_updated_by = $9
		WHERE task_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		task.TaskID,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.AssigneeID,
		task.DueDate,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewNotFoundError("task reference not found")
		}
		return apperrors.NewAppError(500, "failed to update task "+task.TaskID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task not found")
	}
	return nil
}

// UpdateTaskStatus moves a task between board columns
func (r *PgxTaskRepository) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, updatedBy string) error {
	query := `
		UPDATE tasks
		SET status = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE task_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query, taskID, status, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to move task "+taskID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task not found")
	}
	return nil
}

// DeleteTask removes a task. The parent_task_id FK is ON DELETE SET NULL, so
// subtasks survive as top-level tasks.
func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1;`, taskID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete task "+taskID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("task not found")
	}
	return nil
}
