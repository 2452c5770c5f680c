package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
	"github.com/teamdesk/team_desk_app/internal/platform/config"
)

// logTaskNotifier writes assignment notifications to the structured log.
// It stands in for a real mail provider; swapping one in only means
// replacing this implementation behind TaskNotifierSvc.
type logTaskNotifier struct {
	BaseService
	cfg *config.Config
}

// NewLogTaskNotifier creates a notifier that logs assignment notifications
// instead of emailing them.
func NewLogTaskNotifier(cfg *config.Config) portssvc.TaskNotifierSvc {
	return &logTaskNotifier{cfg: cfg}
}

// Ensure logTaskNotifier implements the TaskNotifierSvc interface
var _ portssvc.TaskNotifierSvc = (*logTaskNotifier)(nil)

// NotifyTaskAssigned logs the notification that would be emailed to the
// assignee, including the deep link into the board.
func (n *logTaskNotifier) NotifyTaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task, project *domain.Project) error {
	taskURL := fmt.Sprintf("%s/projects/%s/board?taskId=%s", n.cfg.FrontendBaseURL, project.ProjectID, task.TaskID)

	n.LogInfo(ctx, "Task assignment notification",
		slog.String("to", assignee.Email),
		slog.String("assignee_name", assignee.Name),
		slog.String("subject", fmt.Sprintf("You've been assigned a new task: %q", task.Name)),
		slog.String("project_name", project.Name),
		slog.String("task_url", taskURL))
	return nil
}
