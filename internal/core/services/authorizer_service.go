package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
)

// authorizerService is the single decision point consulted by the workspace,
// project and invitation services. All it needs is membership reads; denials
// are apperrors.ErrForbidden with no resource detail attached.
type authorizerService struct {
	BaseService
	memberships portsrepo.MembershipManager
}

// NewAuthorizerService creates the authorization guard backed by membership data.
func NewAuthorizerService(memberships portsrepo.MembershipManager) portssvc.AuthorizerSvc {
	return &authorizerService{memberships: memberships}
}

var _ portssvc.AuthorizerSvc = (*authorizerService)(nil)

// AuthorizeWorkspaceAction decides an action whose resource is a workspace.
func (s *authorizerService) AuthorizeWorkspaceAction(ctx context.Context, userID, workspaceID string, action portssvc.AuthzAction) error {
	switch action {
	case portssvc.ActionCreateProject, portssvc.ActionViewProject:
		// Any membership in the workspace suffices.
		return s.requireMembership(ctx, userID, workspaceID, domain.RoleOwner, domain.RoleMember)
	default:
		s.LogDebug(ctx, "Unknown workspace action denied",
			slog.String("action", string(action)),
			slog.String("user_id", userID))
		return apperrors.ErrForbidden
	}
}

// AuthorizeProjectAction decides an action whose resource is a project.
func (s *authorizerService) AuthorizeProjectAction(ctx context.Context, userID string, project *domain.Project, action portssvc.AuthzAction) error {
	if project == nil {
		return apperrors.ErrForbidden
	}

	switch action {
	case portssvc.ActionViewProject:
		return s.requireMembership(ctx, userID, project.WorkspaceID, domain.RoleOwner, domain.RoleMember)
	case portssvc.ActionInviteMember, portssvc.ActionManageInvitations, portssvc.ActionUpdateProject:
		// The project's creator may always manage it; otherwise a workspace
		// OWNER role is required.
		if project.CreatedBy == userID {
			return nil
		}
		return s.requireMembership(ctx, userID, project.WorkspaceID, domain.RoleOwner)
	default:
		s.LogDebug(ctx, "Unknown project action denied",
			slog.String("action", string(action)),
			slog.String("user_id", userID))
		return apperrors.ErrForbidden
	}
}

// requireMembership checks that the user holds one of the allowed roles in
// the workspace. A missing membership and an insufficient role both map to
// ErrForbidden so callers cannot distinguish them.
func (s *authorizerService) requireMembership(ctx context.Context, userID, workspaceID string, allowed ...domain.WorkspaceRole) error {
	membership, err := s.memberships.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of workspace",
				slog.String("user_id", userID),
				slog.String("workspace_id", workspaceID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find workspace membership",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID))
		return err
	}

	for _, role := range allowed {
		if membership.Role == role {
			return nil
		}
	}

	s.LogDebug(ctx, "User does not have required role",
		slog.String("user_id", userID),
		slog.String("workspace_id", workspaceID),
		slog.String("user_role", string(membership.Role)))
	return apperrors.ErrForbidden
}
