package dto

import (
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// CreateTaskRequest defines data for creating a new task on a project board.
type CreateTaskRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status" binding:"omitempty,oneof=BACKLOG TODO IN_PROGRESS DONE"`
	Priority     string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH HIGHEST"`
	ParentTaskID *string    `json:"parentTaskID"`
	AssigneeID   *string    `json:"assigneeID"`
	DueDate      *time.Time `json:"dueDate"`
}

// UpdateTaskRequest defines the data allowed for updating a task.
// Using pointers to differentiate between omitted fields and zero-value
// fields; an empty assigneeID clears the assignment.
type UpdateTaskRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=BACKLOG TODO IN_PROGRESS DONE"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH HIGHEST"`
	AssigneeID  *string    `json:"assigneeID"`
	DueDate     *time.Time `json:"dueDate"`
}

// MoveTaskRequest defines the target column for a board move.
type MoveTaskRequest struct {
	Status string `json:"status" binding:"required,oneof=BACKLOG TODO IN_PROGRESS DONE"`
}

// TaskResponse defines data returned for a task.
type TaskResponse struct {
	TaskID        string     `json:"taskID"`
	ProjectID     string     `json:"projectID"`
	ParentTaskID  *string    `json:"parentTaskID,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	AssigneeID    *string    `json:"assigneeID,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"` // UserID
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"` // UserID
}

// ToTaskResponse converts domain.Task to DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:        t.TaskID,
		ProjectID:     t.ProjectID,
		ParentTaskID:  t.ParentTaskID,
		Name:          t.Name,
		Description:   t.Description,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		AssigneeID:    t.AssigneeID,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ListTasksResponse wraps a project's tasks for the board view.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ToListTasksResponse converts a slice of domain.Task to DTO.
func ToListTasksResponse(ts []domain.Task) ListTasksResponse {
	list := make([]TaskResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTaskResponse(&t)
	}
	return ListTasksResponse{Tasks: list}
}
