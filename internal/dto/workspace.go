package dto

import (
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID   string    `json:"workspaceID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:   w.WorkspaceID,
		Name:          w.Name,
		Description:   w.Description,
		IsDefault:     w.IsDefault,
		CreatedAt:     w.CreatedAt,
		CreatedBy:     w.CreatedBy,
		LastUpdatedAt: w.LastUpdatedAt,
		LastUpdatedBy: w.LastUpdatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// --- Workspace Membership DTOs ---

// AddUserToWorkspaceRequest defines data for adding a user to a workspace.
type AddUserToWorkspaceRequest struct {
	UserID string               `json:"userID" binding:"required"`
	Role   domain.WorkspaceRole `json:"role" binding:"required,oneof=OWNER MEMBER"`
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.WorkspaceRole `json:"role" binding:"required,oneof=OWNER MEMBER"`
}

// MembershipResponse defines data returned about a workspace membership.
type MembershipResponse struct {
	WorkspaceID string               `json:"workspaceID"`
	UserID      string               `json:"userID"`
	UserName    string               `json:"userName,omitempty"`
	Role        domain.WorkspaceRole `json:"role"`
	JoinedAt    time.Time            `json:"joinedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

// ListMembershipsResponse wraps the members of a workspace.
type ListMembershipsResponse struct {
	Members []MembershipResponse `json:"members"`
}

// ToListMembershipsResponse converts a slice of domain.Membership to DTO.
func ToListMembershipsResponse(ms []domain.Membership) ListMembershipsResponse {
	list := make([]MembershipResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMembershipResponse(&m)
	}
	return ListMembershipsResponse{Members: list}
}
