package services

import (
	"context"
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// TaskUpdate carries the mutable task fields for a full update. Nil pointers
// mean "keep the current value"; AssigneeID set to a pointer at the empty
// string clears the assignment.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
}

// TaskSvcFacade manages the kanban board of a project. Every operation is
// gated on membership in the project's workspace.
type TaskSvcFacade interface {
	// CreateTask creates a task on the project's board. The assignee, if
	// set, must be a member of the project's workspace.
	CreateTask(ctx context.Context, creatorUserID, projectID string, task domain.Task) (*domain.Task, error)

	// GetTask retrieves a single task.
	GetTask(ctx context.Context, requestingUserID, taskID string) (*domain.Task, error)

	// ListProjectTasks retrieves a project's tasks for the board view.
	ListProjectTasks(ctx context.Context, requestingUserID, projectID string) ([]domain.Task, error)

	// UpdateTask applies a partial update. A change of assignee triggers an
	// assignment notification.
	UpdateTask(ctx context.Context, requestingUserID, taskID string, update TaskUpdate) (*domain.Task, error)

	// MoveTask moves a task to another board column.
	MoveTask(ctx context.Context, requestingUserID, taskID string, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask removes a task from the board.
	DeleteTask(ctx context.Context, requestingUserID, taskID string) error
}

// TaskNotifierSvc delivers task assignment notifications.
type TaskNotifierSvc interface {
	// NotifyTaskAssigned informs the assignee that a task was assigned to
	// them. Delivery failure never fails the assignment itself.
	NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task, project *domain.Project) error
}
