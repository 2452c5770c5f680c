package repositories

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces a user belongs to,
	// ordered by creation time ascending.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error)

	// FindDefaultWorkspaceByCreator retrieves the auto-provisioned workspace
	// of a user, if one exists.
	FindDefaultWorkspaceByCreator(ctx context.Context, userID string) (*domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspaceWithOwner persists a new workspace together with its
	// creator's membership in a single transaction. Either both rows become
	// visible or neither does.
	SaveWorkspaceWithOwner(ctx context.Context, workspace domain.Workspace, owner domain.Membership) error
}

// MembershipManager defines operations for managing workspace memberships
type MembershipManager interface {
	// AddMembership inserts a membership. If the (workspace, user) pair
	// already exists the call is a no-op and the existing row is returned
	// with its original role.
	AddMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error)

	// FindMembership retrieves the membership of a user in a workspace.
	FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error)

	// ListMembershipsByWorkspaceID retrieves all memberships of a workspace.
	ListMembershipsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Membership, error)

	// RemoveMembership deletes a membership. It fails with
	// apperrors.ErrInvariantViolation if the removal would leave the
	// workspace with zero memberships.
	RemoveMembership(ctx context.Context, workspaceID, userID string) error

	// UpdateMembershipRole changes the role of an existing membership.
	UpdateMembershipRole(ctx context.Context, workspaceID, userID string, newRole domain.WorkspaceRole) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	MembershipManager
}

// WorkspaceRepositoryWithTx extends WorkspaceRepositoryFacade with transaction capabilities
type WorkspaceRepositoryWithTx interface {
	WorkspaceRepositoryFacade
	TransactionManager
}
