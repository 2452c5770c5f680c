package domain

import "time"

// TaskStatus is a kanban column. A task sits in exactly one column; moving
// it between columns is an ordinary status update, there is no terminal
// state.
type TaskStatus string

const (
	TaskBacklog    TaskStatus = "BACKLOG"
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// IsValid reports whether the status is one of the known columns.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskBacklog, TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// TaskPriority orders tasks within a column.
type TaskPriority string

const (
	PriorityLow     TaskPriority = "LOW"
	PriorityMedium  TaskPriority = "MEDIUM"
	PriorityHigh    TaskPriority = "HIGH"
	PriorityHighest TaskPriority = "HIGHEST"
)

// IsValid reports whether the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityHighest:
		return true
	}
	return false
}

// Task is a unit of work on a project's board. Tasks may nest one level or
// more through ParentTaskID (subtasks) and may be assigned to a member of
// the project's workspace.
type Task struct {
	TaskID       string       `json:"taskID"`    // Primary Key (UUID)
	ProjectID    string       `json:"projectID"` // FK -> projects.project_id
	ParentTaskID *string      `json:"parentTaskID,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	AssigneeID   *string      `json:"assigneeID,omitempty"` // FK -> users.user_id
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	AuditFields
}
