package services

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// AuthzAction identifies an operation submitted to the authorization guard.
type AuthzAction string

const (
	// ActionCreateProject requires any membership in the target workspace.
	ActionCreateProject AuthzAction = "project:create"
	// ActionViewProject requires any membership in the project's workspace.
	ActionViewProject AuthzAction = "project:view"
	// ActionInviteMember requires the project's creator or an OWNER role in
	// the project's workspace.
	ActionInviteMember AuthzAction = "project:invite"
	// ActionManageInvitations gates the invitation-management view; same
	// requirement as ActionInviteMember.
	ActionManageInvitations AuthzAction = "project:manage_invitations"
	// ActionUpdateProject requires the project's creator or an OWNER role.
	ActionUpdateProject AuthzAction = "project:update"
)

// AuthorizerSvc is the single decision point for "can user U perform action A
// on resource R". Every component consults it instead of scattering role
// checks across call sites. A denial is apperrors.ErrForbidden and carries no
// detail about the resource.
type AuthorizerSvc interface {
	// AuthorizeWorkspaceAction decides an action whose resource is a workspace.
	AuthorizeWorkspaceAction(ctx context.Context, userID, workspaceID string, action AuthzAction) error

	// AuthorizeProjectAction decides an action whose resource is a project.
	// The project is passed in full so creator-based rules need no extra read.
	AuthorizeProjectAction(ctx context.Context, userID string, project *domain.Project, action AuthzAction) error
}
