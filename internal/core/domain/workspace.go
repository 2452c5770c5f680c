package domain

import "time"

// Workspace is the top-level tenant grouping. Every workspace has at least
// one membership (its creator) from the moment it becomes visible.
type Workspace struct {
	WorkspaceID string `json:"workspaceID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	// IsDefault marks the workspace auto-provisioned at signup.
	IsDefault   bool `json:"isDefault"`
	AuditFields      // Embed common audit fields
}

// WorkspaceRole defines the possible roles a user can have within a workspace.
type WorkspaceRole string

const (
	RoleOwner  WorkspaceRole = "OWNER"
	RoleMember WorkspaceRole = "MEMBER"
)

// Membership represents the join fact that a User belongs to a Workspace
// with a given role. Unique per (WorkspaceID, UserID).
type Membership struct {
	WorkspaceID string        `json:"workspaceID"` // FK -> workspaces.workspace_id
	UserID      string        `json:"userID"`      // FK -> users.user_id
	UserName    string        `json:"userName,omitempty"`
	Role        WorkspaceRole `json:"role"`
	JoinedAt    time.Time     `json:"joinedAt"`
}
