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

// taskService implements the TaskSvcFacade interface
type taskService struct {
	BaseService
	taskRepo    portsrepo.TaskRepositoryFacade
	projectRepo portsrepo.ProjectReader
	memberships portsrepo.MembershipManager
	userRepo    portsrepo.UserReader
	authorizer  portssvc.AuthorizerSvc
	notifier    portssvc.TaskNotifierSvc
}

// NewTaskService creates a new task service with the provided dependencies
func NewTaskService(
	taskRepo portsrepo.TaskRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	memberships portsrepo.MembershipManager,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizerSvc,
	notifier portssvc.TaskNotifierSvc,
) portssvc.TaskSvcFacade {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		memberships: memberships,
		userRepo:    userRepo,
		authorizer:  authorizer,
		notifier:    notifier,
	}
}

// Ensure taskService implements the TaskSvcFacade interface
var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// CreateTask creates a task on a project's board. Any member of the
// project's workspace may create tasks; the board has no per-task roles.
func (s *taskService) CreateTask(ctx context.Context, creatorUserID, projectID string, task domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(task.Name) == "" {
		return nil, fmt.Errorf("%w: task name must not be empty", apperrors.ErrValidation)
	}
	if task.Status == "" {
		task.Status = domain.TaskBacklog
	}
	if !task.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, task.Status)
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if !task.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown task priority %q", apperrors.ErrValidation, task.Priority)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeProjectAction(ctx, creatorUserID, project, portssvc.ActionViewProject); err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		if err := s.requireWorkspaceMember(ctx, project.WorkspaceID, *task.AssigneeID); err != nil {
			return nil, err
		}
	}
	if task.ParentTaskID != nil {
		parent, err := s.taskRepo.FindTaskByID(ctx, *task.ParentTaskID)
		if err != nil {
			return nil, err
		}
		if parent.ProjectID != projectID {
			return nil, fmt.Errorf("%w: parent task belongs to another project", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	task.TaskID = uuid.NewString()
	task.ProjectID = projectID
	task.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task",
			slog.String("project_id", projectID))
		return nil, err
	}

	if task.AssigneeID != nil {
		s.notifyAssignment(ctx, *task.AssigneeID, &task, project)
	}

	s.LogInfo(ctx, "Task created",
		slog.String("task_id", task.TaskID),
		slog.String("project_id", projectID),
		slog.String("status", string(task.Status)))
	return &task, nil
}

// GetTask retrieves a task. Member-gated through the project.
func (s *taskService) GetTask(ctx context.Context, requestingUserID, taskID string) (*domain.Task, error) {
	task, _, err := s.loadAuthorizedTask(ctx, requestingUserID, taskID)
	return task, err
}

// ListProjectTasks retrieves a project's tasks for the board, oldest first.
func (s *taskService) ListProjectTasks(ctx context.Context, requestingUserID, projectID string) ([]domain.Task, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionViewProject); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListTasksByProjectID(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks for project",
			slog.String("project_id", projectID))
		return nil, err
	}
	if tasks == nil {
		return []domain.Task{}, nil
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task. A change of assignee
// triggers an assignment notification; clearing the assignee does not.
func (s *taskService) UpdateTask(ctx context.Context, requestingUserID, taskID string, update portssvc.TaskUpdate) (*domain.Task, error) {
	task, project, err := s.loadAuthorizedTask(ctx, requestingUserID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("%w: task name must not be empty", apperrors.ErrValidation)
		}
		task.Name = *update.Name
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, *update.Status)
		}
		task.Status = *update.Status
	}
	if update.Priority != nil {
		if !update.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown task priority %q", apperrors.ErrValidation, *update.Priority)
		}
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	assigneeChanged := false
	if update.AssigneeID != nil {
		if *update.AssigneeID == "" {
			task.AssigneeID = nil
		} else {
			if err := s.requireWorkspaceMember(ctx, project.WorkspaceID, *update.AssigneeID); err != nil {
				return nil, err
			}
			assigneeChanged = task.AssigneeID == nil || *task.AssigneeID != *update.AssigneeID
			task.AssigneeID = update.AssigneeID
		}
	}

	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = requestingUserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task",
			slog.String("task_id", taskID))
		return nil, err
	}

	if assigneeChanged {
		s.notifyAssignment(ctx, *task.AssigneeID, task, project)
	}

	s.LogInfo(ctx, "Task updated", slog.String("task_id", taskID))
	return task, nil
}

// MoveTask moves a task to another board column.
func (s *taskService) MoveTask(ctx context.Context, requestingUserID, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, status)
	}

	task, _, err := s.loadAuthorizedTask(ctx, requestingUserID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateTaskStatus(ctx, taskID, status, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to move task",
				slog.String("task_id", taskID),
				slog.String("status", string(status)))
		}
		return nil, err
	}

	task.Status = status
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Task moved",
		slog.String("task_id", taskID),
		slog.String("status", string(status)))
	return task, nil
}

// DeleteTask removes a task from the board.
func (s *taskService) DeleteTask(ctx context.Context, requestingUserID, taskID string) error {
	if _, _, err := s.loadAuthorizedTask(ctx, requestingUserID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete task",
				slog.String("task_id", taskID))
		}
		return err
	}

	s.LogInfo(ctx, "Task deleted", slog.String("task_id", taskID))
	return nil
}

// loadAuthorizedTask resolves a task and its project and checks that the
// requesting user may see the board.
func (s *taskService) loadAuthorizedTask(ctx context.Context, requestingUserID, taskID string) (*domain.Task, *domain.Project, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find task by ID",
				slog.String("task_id", taskID))
		}
		return nil, nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionViewProject); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// requireWorkspaceMember checks that the would-be assignee belongs to the
// workspace, mapping a missing membership to a validation error.
func (s *taskService) requireWorkspaceMember(ctx context.Context, workspaceID, userID string) error {
	if _, err := s.memberships.FindMembership(ctx, workspaceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: assignee is not a member of the project's workspace", apperrors.ErrValidation)
		}
		return err
	}
	return nil
}

// notifyAssignment delivers the assignment notification on a best-effort
// basis. The task write has already committed; a delivery failure is logged
// and swallowed.
func (s *taskService) notifyAssignment(ctx context.Context, assigneeID string, task *domain.Task, project *domain.Project) {
	assignee, err := s.userRepo.FindUserByID(ctx, assigneeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve assignee for notification",
			slog.String("task_id", task.TaskID),
			slog.String("assignee_id", assigneeID))
		return
	}
	if err := s.notifier.NotifyTaskAssigned(ctx, assignee, task, project); err != nil {
		s.LogError(ctx, err, "Failed to send assignment notification",
			slog.String("task_id", task.TaskID),
			slog.String("assignee_id", assigneeID))
	}
}
