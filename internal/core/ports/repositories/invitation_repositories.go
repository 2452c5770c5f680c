package repositories

import (
	"context"
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// InvitationReader defines read operations for invitation data
type InvitationReader interface {
	// FindInvitationByID retrieves a specific invitation by its ID.
	FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error)

	// ListInvitationsByProjectID retrieves all invitations for a project,
	// ordered by creation time descending.
	ListInvitationsByProjectID(ctx context.Context, projectID string) ([]domain.Invitation, error)
}

// InvitationWriter defines write operations for invitation data
type InvitationWriter interface {
	// SaveInvitationSuperseding inserts a new pending invitation and, in the
	// same transaction, marks any prior pending invitation for the same
	// (project, email) pair as revoked. At most one pending invitation per
	// target survives.
	SaveInvitationSuperseding(ctx context.Context, invitation domain.Invitation) error

	// MarkAccepted flips a pending invitation to accepted and inserts the
	// resulting membership in a single transaction. Both writes commit or
	// both roll back. Fails with apperrors.ErrInvalidState if the invitation
	// is no longer pending.
	MarkAccepted(ctx context.Context, invitationID string, acceptedBy string, resolvedAt time.Time, membership domain.Membership) error

	// MarkRevoked flips a pending invitation to revoked. Fails with
	// apperrors.ErrInvalidState if the invitation is no longer pending.
	MarkRevoked(ctx context.Context, invitationID string, resolvedAt time.Time) error
}

// InvitationRepositoryFacade combines all invitation-related repository interfaces
type InvitationRepositoryFacade interface {
	InvitationReader
	InvitationWriter
}

// InvitationRepositoryWithTx extends InvitationRepositoryFacade with transaction capabilities
type InvitationRepositoryWithTx interface {
	InvitationRepositoryFacade
	TransactionManager
}
