package domain

import "time"

// InvitationStatus is the lifecycle state of an invitation.
// PENDING is the only non-terminal state.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRevoked  InvitationStatus = "REVOKED"
)

// Invitation is a pending offer of workspace membership, addressed to an
// email and scoped to a project. Accepting it creates a MEMBER membership
// in the project's workspace.
type Invitation struct {
	InvitationID string           `json:"invitationID"` // Primary Key (UUID)
	ProjectID    string           `json:"projectID"`    // FK -> projects.project_id
	Email        string           `json:"email"`
	Status       InvitationStatus `json:"status"`
	InvitedBy    string           `json:"invitedBy"` // UserID of the inviter
	AcceptedBy   *string          `json:"acceptedBy,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	ResolvedAt   *time.Time       `json:"resolvedAt,omitempty"` // Set on accept/revoke
}

// IsTerminal reports whether the invitation can no longer transition.
func (i Invitation) IsTerminal() bool {
	return i.Status != InvitationPending
}
