package domain

// Project belongs to exactly one Workspace. The creating user must hold a
// membership in that workspace at creation time.
type Project struct {
	ProjectID   string `json:"projectID"` // Primary Key (UUID)
	WorkspaceID string `json:"workspaceID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
