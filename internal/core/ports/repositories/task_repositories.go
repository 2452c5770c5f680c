package repositories

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// TaskReader defines read operations for task data
type TaskReader interface {
	// FindTaskByID retrieves a specific task by its ID.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListTasksByProjectID retrieves all tasks of a project, ordered by
	// creation time ascending, for the board view.
	ListTasksByProjectID(ctx context.Context, projectID string) ([]domain.Task, error)
}

// TaskWriter defines write operations for task data
type TaskWriter interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// UpdateTask updates a task's mutable fields (name, description,
	// status, priority, assignee, due date).
	UpdateTask(ctx context.Context, task domain.Task) error

	// UpdateTaskStatus moves a task between board columns without touching
	// the other fields.
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, updatedBy string) error

	// DeleteTask removes a task. Subtasks of the deleted task are detached,
	// not deleted.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskRepositoryFacade combines all task-related repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
