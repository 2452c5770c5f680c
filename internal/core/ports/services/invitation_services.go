package services

import (
	"context"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// InvitationSvcFacade manages the invitation lifecycle:
// PENDING -> ACCEPTED or PENDING -> REVOKED, both terminal.
type InvitationSvcFacade interface {
	// Invite creates a pending invitation of an email to a project. Allowed
	// for the project's creator or a workspace OWNER. A prior pending
	// invitation for the same email and project is superseded, not
	// duplicated.
	Invite(ctx context.Context, inviterUserID, projectID, email string) (*domain.Invitation, error)

	// Accept resolves a pending invitation. The accepting user's email must
	// match the invitation's. On success the invitation is ACCEPTED and a
	// MEMBER membership in the project's workspace exists; the two writes
	// are atomic.
	Accept(ctx context.Context, inviteeUserID, invitationID string) (*domain.Invitation, error)

	// Revoke withdraws a pending invitation. Same authorization as Invite.
	// A no-op if the invitation is already terminal.
	Revoke(ctx context.Context, requestingUserID, invitationID string) (*domain.Invitation, error)

	// ListProjectInvitations retrieves a project's invitations for the
	// management view. Same authorization as Invite.
	ListProjectInvitations(ctx context.Context, requestingUserID, projectID string) ([]domain.Invitation, error)
}
