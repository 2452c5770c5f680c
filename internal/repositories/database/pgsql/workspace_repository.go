package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace and membership data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryWithTx {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryWithTx
var _ portsrepo.WorkspaceRepositoryWithTx = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.description, w.is_default,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workspaces w
`

// getWorkspaces private func to get workspaces from the select query filters
func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	workspaces, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}

	return workspaces, nil
}

// SaveWorkspaceWithOwner inserts the workspace and its creator's membership
// in one transaction. A workspace row without its owner membership is never
// visible to other callers, and a failure leaves neither row behind.
func (r *PgxWorkspaceRepository) SaveWorkspaceWithOwner(ctx context.Context, workspace domain.Workspace, owner domain.Membership) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction committed

	workspaceQuery := `
		INSERT INTO workspaces (
			workspace_id, name, description, is_default,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, workspaceQuery,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Description,
		workspace.IsDefault,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation (id or default-per-creator)
				return apperrors.NewConflictError("workspace already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation on created_by
				return apperrors.NewNotFoundError("creator user not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}

	memberQuery := `
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, memberQuery,
		owner.WorkspaceID,
		owner.UserID,
		owner.Role,
		owner.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save owner membership for workspace "+workspace.WorkspaceID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `WHERE w.workspace_id = $1`
	workspaces, err := r.getWorkspaces(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) FindDefaultWorkspaceByCreator(ctx context.Context, userID string) (*domain.Workspace, error) {
	query := `WHERE w.created_by = $1 AND w.is_default = true`
	workspaces, err := r.getWorkspaces(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

// ListWorkspacesByUserID returns the workspaces a user is a member of,
// oldest first, which is the order the workspace selector shows.
func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		JOIN workspace_members wm ON w.workspace_id = wm.workspace_id
		WHERE wm.user_id = $1
		ORDER BY w.created_at ASC;
	`
	return r.getWorkspaces(ctx, query, userID)
}

// AddMembership inserts a membership unless the (workspace, user) pair
// already exists. The returned row is always the persisted one, so a
// re-add surfaces the original role untouched.
func (r *PgxWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workspace_id, user_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.WorkspaceID,
		membership.UserID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, apperrors.NewNotFoundError("workspace or user not found")
		}
		return nil, apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to workspace "+membership.WorkspaceID, err)
	}

	return r.FindMembership(ctx, membership.WorkspaceID, membership.UserID)
}

func (r *PgxWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
	query := `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&m.WorkspaceID,
		&m.UserID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID+" in workspace "+workspaceID, err)
	}
	return &m, nil
}

// ListMembershipsByWorkspaceID retrieves all members of a workspace with
// their display names, most recent joiner first.
func (r *PgxWorkspaceRepository) ListMembershipsByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	query := `
		SELECT wm.workspace_id, wm.user_id, u.name AS user_name, wm.role, wm.joined_at
		FROM workspace_members wm
		JOIN users u ON wm.user_id = u.user_id
		WHERE wm.workspace_id = $1
		ORDER BY wm.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for workspace "+workspaceID, err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.UserName, &m.Role, &m.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}

	return memberships, nil
}

// RemoveMembership deletes a membership, refusing the removal that would
// leave the workspace without any member. The membership rows are locked
// first so a concurrent removal cannot slip past the count.
func (r *PgxWorkspaceRepository) RemoveMembership(ctx context.Context, workspaceID, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT user_id
		FROM workspace_members
		WHERE workspace_id = $1
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock memberships for workspace "+workspaceID, err)
	}
	memberIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return apperrors.NewAppError(500, "failed to collect membership rows", err)
	}

	found := false
	for _, id := range memberIDs {
		if id == userID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.NewNotFoundError("membership not found")
	}
	if len(memberIDs) <= 1 {
		// The last membership of a workspace can never be removed.
		return apperrors.ErrInvariantViolation
	}

	deleteQuery := `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2;`
	if _, err := tx.Exec(ctx, deleteQuery, workspaceID, userID); err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from workspace "+workspaceID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateMembershipRole updates a member's role in a workspace
func (r *PgxWorkspaceRepository) UpdateMembershipRole(ctx context.Context, workspaceID, userID string, newRole domain.WorkspaceRole) error {
	query := `
		UPDATE workspace_members
		SET role = $3
		WHERE workspace_id = $1 AND user_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, workspaceID, userID, newRole)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in workspace "+workspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}
