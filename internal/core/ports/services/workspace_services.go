package services

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID. The
	// requesting user must hold a membership in it.
	FindWorkspaceByID(ctx context.Context, requestingUserID, workspaceID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces the user belongs to, ordered
	// by creation time ascending. A user with no memberships gets an empty
	// slice, not an error.
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)

	// ListWorkspaceUsers retrieves all memberships of a workspace. Only
	// members of the workspace can access this data.
	ListWorkspaceUsers(ctx context.Context, requestingUserID, workspaceID string) ([]domain.Membership, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// ProvisionDefaultWorkspace ensures the user has their auto-created
	// workspace. Idempotent: a second call returns the same workspace and
	// creates no second membership. The workspace and its OWNER membership
	// are written atomically.
	ProvisionDefaultWorkspace(ctx context.Context, userID string) (*domain.Workspace, error)

	// CreateWorkspace persists a new workspace with the creator as OWNER.
	CreateWorkspace(ctx context.Context, name, description, creatorUserID string) (*domain.Workspace, error)
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	// AddUserToWorkspace adds a user to a workspace with a specific role.
	// The adding user must hold the OWNER role in the workspace. Adding an
	// existing member is a no-op that returns the existing membership
	// unchanged; a plain add never alters a role.
	AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.WorkspaceRole) (*domain.Membership, error)

	// RemoveUserFromWorkspace removes a user from a workspace. Only OWNERs
	// may remove others; the last membership of a workspace can never be
	// removed.
	RemoveUserFromWorkspace(ctx context.Context, requestingUserID, targetUserID, workspaceID string) error

	// UpdateUserWorkspaceRole changes a member's role. OWNER only.
	UpdateUserWorkspaceRole(ctx context.Context, requestingUserID, targetUserID, workspaceID string, newRole domain.WorkspaceRole) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
}
