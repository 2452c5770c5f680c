package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
	portssvc "github.com/teamdesk/team_desk_app/internal/core/ports/services"
)

// invitationService implements the InvitationSvcFacade interface
type invitationService struct {
	BaseService
	invitationRepo portsrepo.InvitationRepositoryFacade
	projectRepo    portsrepo.ProjectReader
	userRepo       portsrepo.UserReader
	authorizer     portssvc.AuthorizerSvc
	validate       *validator.Validate
}

// NewInvitationService creates a new invitation service with the provided dependencies
func NewInvitationService(
	invitationRepo portsrepo.InvitationRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	userRepo portsrepo.UserReader,
	authorizer portssvc.AuthorizerSvc,
) portssvc.InvitationSvcFacade {
	return &invitationService{
		invitationRepo: invitationRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		authorizer:     authorizer,
		validate:       validator.New(),
	}
}

// Ensure invitationService implements the InvitationSvcFacade interface
var _ portssvc.InvitationSvcFacade = (*invitationService)(nil)

// Invite creates a pending invitation of an email address to a project.
// A prior pending invitation for the same email and project is superseded
// (flipped to REVOKED) in the same transaction, never duplicated.
func (s *invitationService) Invite(ctx context.Context, inviterUserID, projectID, email string) (*domain.Invitation, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve project for invitation",
				slog.String("project_id", projectID))
		}
		return nil, err
	}

	if err := s.authorizer.AuthorizeProjectAction(ctx, inviterUserID, project, portssvc.ActionInviteMember); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.NewValidationFailedError("invalid invitation email")
	}

	invitation := domain.Invitation{
		InvitationID: uuid.NewString(),
		ProjectID:    projectID,
		Email:        email,
		Status:       domain.InvitationPending,
		InvitedBy:    inviterUserID,
		CreatedAt:    time.Now(),
	}

	if err := s.invitationRepo.SaveInvitationSuperseding(ctx, invitation); err != nil {
		s.LogError(ctx, err, "Failed to save invitation",
			slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Invitation created",
		slog.String("invitation_id", invitation.InvitationID),
		slog.String("project_id", projectID))
	return &invitation, nil
}

// Accept resolves a pending invitation for the authenticated user. The
// status flip and the MEMBER membership insert commit or roll back together,
// so an accepted invitation without its membership is unreachable.
func (s *invitationService) Accept(ctx context.Context, inviteeUserID, invitationID string) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invitation",
				slog.String("invitation_id", invitationID))
		}
		return nil, err
	}

	if invitation.IsTerminal() {
		s.LogDebug(ctx, "Invitation no longer pending",
			slog.String("invitation_id", invitationID),
			slog.String("status", string(invitation.Status)))
		return nil, apperrors.ErrInvalidState
	}

	invitee, err := s.userRepo.FindUserByID(ctx, inviteeUserID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(invitee.Email, invitation.Email) {
		// Not the addressee. Nothing about the invitation is revealed.
		return nil, apperrors.ErrForbidden
	}

	project, err := s.projectRepo.FindProjectByID(ctx, invitation.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	membership := domain.Membership{
		WorkspaceID: project.WorkspaceID,
		UserID:      inviteeUserID,
		Role:        domain.RoleMember,
		JoinedAt:    now,
	}

	if err := s.invitationRepo.MarkAccepted(ctx, invitationID, inviteeUserID, now, membership); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// Lost a race against a concurrent accept or revoke.
			return nil, apperrors.ErrInvalidState
		}
		s.LogError(ctx, err, "Failed to accept invitation",
			slog.String("invitation_id", invitationID))
		return nil, err
	}

	invitation.Status = domain.InvitationAccepted
	invitation.AcceptedBy = &inviteeUserID
	invitation.ResolvedAt = &now

	s.LogInfo(ctx, "Invitation accepted",
		slog.String("invitation_id", invitationID),
		slog.String("workspace_id", project.WorkspaceID),
		slog.String("invitee_id", inviteeUserID))
	return invitation, nil
}

// Revoke withdraws a pending invitation. Revoking an already-terminal
// invitation is a no-op that returns it unchanged.
func (s *invitationService) Revoke(ctx context.Context, requestingUserID, invitationID string) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, invitation.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionInviteMember); err != nil {
		return nil, err
	}

	if invitation.IsTerminal() {
		return invitation, nil
	}

	now := time.Now()
	if err := s.invitationRepo.MarkRevoked(ctx, invitationID, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// A concurrent accept or revoke resolved it first; treat as no-op.
			return s.invitationRepo.FindInvitationByID(ctx, invitationID)
		}
		s.LogError(ctx, err, "Failed to revoke invitation",
			slog.String("invitation_id", invitationID))
		return nil, err
	}

	invitation.Status = domain.InvitationRevoked
	invitation.ResolvedAt = &now

	s.LogInfo(ctx, "Invitation revoked",
		slog.String("invitation_id", invitationID))
	return invitation, nil
}

// ListProjectInvitations retrieves a project's invitations for the
// management view, gated the same way as inviting.
func (s *invitationService) ListProjectInvitations(ctx context.Context, requestingUserID, projectID string) ([]domain.Invitation, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.AuthorizeProjectAction(ctx, requestingUserID, project, portssvc.ActionManageInvitations); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.ListInvitationsByProjectID(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invitations for project",
			slog.String("project_id", projectID))
		return nil, err
	}
	if invitations == nil {
		return []domain.Invitation{}, nil
	}
	return invitations, nil
}
