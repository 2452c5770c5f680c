package dto

import (
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// CreateInvitationRequest defines data for inviting someone to a project.
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// InvitationResponse defines data returned for an invitation.
type InvitationResponse struct {
	InvitationID string                  `json:"invitationID"`
	ProjectID    string                  `json:"projectID"`
	Email        string                  `json:"email"`
	Status       domain.InvitationStatus `json:"status"`
	InvitedBy    string                  `json:"invitedBy"` // UserID
	AcceptedBy   *string                 `json:"acceptedBy,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	ResolvedAt   *time.Time              `json:"resolvedAt,omitempty"`
}

// ToInvitationResponse converts domain.Invitation to DTO.
func ToInvitationResponse(i *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: i.InvitationID,
		ProjectID:    i.ProjectID,
		Email:        i.Email,
		Status:       i.Status,
		InvitedBy:    i.InvitedBy,
		AcceptedBy:   i.AcceptedBy,
		CreatedAt:    i.CreatedAt,
		ResolvedAt:   i.ResolvedAt,
	}
}

// ListInvitationsResponse wraps a project's invitations.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// ToListInvitationsResponse converts a slice of domain.Invitation to DTO.
func ToListInvitationsResponse(is []domain.Invitation) ListInvitationsResponse {
	list := make([]InvitationResponse, len(is))
	for i, inv := range is {
		list[i] = ToInvitationResponse(&inv)
	}
	return ListInvitationsResponse{Invitations: list}
}
