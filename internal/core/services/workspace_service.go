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

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	userRepo      portsrepo.UserReader
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	userRepo portsrepo.UserReader,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// ProvisionDefaultWorkspace ensures the user has their auto-created workspace.
// Idempotent: a repeat call returns the existing workspace and creates no
// second membership. The workspace and its OWNER membership commit together;
// on failure neither row is left behind.
func (s *workspaceService) ProvisionDefaultWorkspace(ctx context.Context, userID string) (*domain.Workspace, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve user for default workspace",
				slog.String("user_id", userID))
		}
		return nil, err
	}

	existing, err := s.workspaceRepo.FindDefaultWorkspaceByCreator(ctx, userID)
	if err == nil {
		s.LogDebug(ctx, "Default workspace already provisioned",
			slog.String("workspace_id", existing.WorkspaceID),
			slog.String("user_id", userID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up default workspace",
			slog.String("user_id", userID))
		return nil, err
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        defaultWorkspaceName(user),
		IsDefault:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	owner := domain.Membership{
		WorkspaceID: workspace.WorkspaceID,
		UserID:      userID,
		Role:        domain.RoleOwner,
		JoinedAt:    now,
	}

	if err := s.workspaceRepo.SaveWorkspaceWithOwner(ctx, workspace, owner); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent provisioning won the race; the unique index on
			// default workspaces guarantees the winner is ours to return.
			return s.workspaceRepo.FindDefaultWorkspaceByCreator(ctx, userID)
		}
		s.LogError(ctx, err, "Failed to provision default workspace",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Default workspace provisioned",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("user_id", userID))
	return &workspace, nil
}

// defaultWorkspaceName derives the auto-provisioned workspace name from the
// user's display name, falling back to the email local part.
func defaultWorkspaceName(user *domain.User) string {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Email
		if at := strings.Index(name, "@"); at > 0 {
			name = name[:at]
		}
	}
	return fmt.Sprintf("%s's Workspace", name)
}

// CreateWorkspace creates a new workspace and makes the creator the initial OWNER.
func (s *workspaceService) CreateWorkspace(ctx context.Context, name, description, creatorUserID string) (*domain.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: workspace name must not be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	owner := domain.Membership{
		WorkspaceID: workspace.WorkspaceID,
		UserID:      creatorUserID,
		Role:        domain.RoleOwner,
		JoinedAt:    now,
	}

	if err := s.workspaceRepo.SaveWorkspaceWithOwner(ctx, workspace, owner); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID))
	return &workspace, nil
}

// FindWorkspaceByID retrieves a workspace by its ID. Member-gated.
func (s *workspaceService) FindWorkspaceByID(ctx context.Context, requestingUserID, workspaceID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace by ID",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	if _, err := s.workspaceRepo.FindMembership(ctx, workspaceID, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	return workspace, nil
}

// ListUserWorkspaces retrieves all workspaces a user belongs to, oldest first.
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if workspaces == nil {
		return []domain.Workspace{}, nil
	}

	s.LogDebug(ctx, "Workspaces listed successfully",
		slog.Int("count", len(workspaces)),
		slog.String("user_id", userID))
	return workspaces, nil
}

// ListWorkspaceUsers retrieves all memberships of a workspace. Member-gated.
func (s *workspaceService) ListWorkspaceUsers(ctx context.Context, requestingUserID, workspaceID string) ([]domain.Membership, error) {
	if _, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, requestingUserID, workspaceID, domain.RoleOwner, domain.RoleMember); err != nil {
		return nil, err
	}

	memberships, err := s.workspaceRepo.ListMembershipsByWorkspaceID(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace users",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return memberships, nil
}

// AddUserToWorkspace adds a user to a workspace with a specific role. OWNER
// only; the membership paths that bypass this check are creation
// (SaveWorkspaceWithOwner) and invitation acceptance (MarkAccepted), both of
// which write through the repository directly. Re-adding an existing member
// is a no-op; the existing membership is returned with its original role.
func (s *workspaceService) AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.WorkspaceRole) (*domain.Membership, error) {
	if err := s.requireRole(ctx, addingUserID, workspaceID, domain.RoleOwner); err != nil {
		s.LogDebug(ctx, "User not authorized to add members to workspace",
			slog.String("adding_user_id", addingUserID),
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	if _, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	membership, err := s.workspaceRepo.AddMembership(ctx, domain.Membership{
		WorkspaceID: workspaceID,
		UserID:      targetUserID,
		Role:        role,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to workspace",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "User added to workspace",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("role", string(membership.Role)))
	return membership, nil
}

// RemoveUserFromWorkspace removes a user from a workspace. Members may leave
// on their own; removing someone else requires the OWNER role. The repository
// refuses a removal that would leave the workspace without any membership.
func (s *workspaceService) RemoveUserFromWorkspace(ctx context.Context, requestingUserID, targetUserID, workspaceID string) error {
	if requestingUserID != targetUserID {
		if err := s.requireRole(ctx, requestingUserID, workspaceID, domain.RoleOwner); err != nil {
			return err
		}
	}

	if err := s.workspaceRepo.RemoveMembership(ctx, workspaceID, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			s.LogDebug(ctx, "Refused to remove last membership",
				slog.String("workspace_id", workspaceID),
				slog.String("target_user_id", targetUserID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to remove user from workspace",
				slog.String("workspace_id", workspaceID),
				slog.String("target_user_id", targetUserID))
		}
		return err
	}

	s.LogInfo(ctx, "User removed from workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID))
	return nil
}

// UpdateUserWorkspaceRole changes a member's role. OWNER only; a plain
// AddUserToWorkspace never changes roles.
func (s *workspaceService) UpdateUserWorkspaceRole(ctx context.Context, requestingUserID, targetUserID, workspaceID string, newRole domain.WorkspaceRole) error {
	if err := s.requireRole(ctx, requestingUserID, workspaceID, domain.RoleOwner); err != nil {
		return err
	}

	if err := s.workspaceRepo.UpdateMembershipRole(ctx, workspaceID, targetUserID, newRole); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update workspace role",
				slog.String("workspace_id", workspaceID),
				slog.String("target_user_id", targetUserID))
		}
		return err
	}

	s.LogInfo(ctx, "Workspace role updated",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(newRole)))
	return nil
}

// requireRole checks that the user holds one of the allowed roles in the
// workspace, mapping a missing membership to ErrForbidden.
func (s *workspaceService) requireRole(ctx context.Context, userID, workspaceID string, allowed ...domain.WorkspaceRole) error {
	membership, err := s.workspaceRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	for _, role := range allowed {
		if membership.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
