package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teamdesk/team_desk_app/internal/apperrors"
	"github.com/teamdesk/team_desk_app/internal/core/domain"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
)

type PgxInvitationRepository struct {
	BaseRepository
}

// newPgxInvitationRepository creates a new repository for invitation data.
func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepositoryWithTx {
	return &PgxInvitationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvitationRepository implements portsrepo.InvitationRepositoryWithTx
var _ portsrepo.InvitationRepositoryWithTx = (*PgxInvitationRepository)(nil)

var FULL_INVITATION_SELECT_QUERY = `
SELECT
	i.invitation_id, i.project_id, i.email, i.status,
	i.invited_by, i.accepted_by, i.created_at, i.resolved_at
FROM invitations i
`

// getInvitations private func to get invitations from the select query filters
func (r *PgxInvitationRepository) getInvitations(ctx context.Context, filterQuery string, args ...any) ([]domain.Invitation, error) {
	query := FULL_INVITATION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invitations", err)
	}
	defer rows.Close()
	invitations, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Invitation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Invitation{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invitation rows", err)
	}

	return invitations, nil
}

func (r *PgxInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	query := `WHERE i.invitation_id = $1`
	invitations, err := r.getInvitations(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	if len(invitations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invitations[0], nil
}

// ListInvitationsByProjectID returns a project's invitations, newest first.
func (r *PgxInvitationRepository) ListInvitationsByProjectID(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	query := `
		WHERE i.project_id = $1
		ORDER BY i.created_at DESC;
	`
	return r.getInvitations(ctx, query, projectID)
}

// SaveInvitationSuperseding revokes any prior pending invitation for the
// same (project, email) pair and inserts the new one in a single
// transaction, so at most one pending invitation per target ever exists.
func (r *PgxInvitationRepository) SaveInvitationSuperseding(ctx context.Context, invitation domain.Invitation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	supersedeQuery := `
		UPDATE invitations
		SET status = $4, resolved_at = $3
		WHERE project_id = $1 AND lower(email) = lower($2) AND status = $5;
	`
	_, err = tx.Exec(ctx, supersedeQuery,
		invitation.ProjectID,
		invitation.Email,
		invitation.CreatedAt,
		domain.InvitationRevoked,
		domain.InvitationPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to supersede pending invitations for project "+invitation.ProjectID, err)
	}

	insertQuery := `
		INSERT INTO invitations (
			invitation_id, project_id, email, status,
			invited_by, accepted_by, created_at, resolved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		invitation.InvitationID,
		invitation.ProjectID,
		invitation.Email,
		invitation.Status,
		invitation.InvitedBy,
		invitation.AcceptedBy,
		invitation.CreatedAt,
		invitation.ResolvedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("pending invitation already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation on project_id
				return apperrors.NewNotFoundError("project not found")
			}
		}
		return apperrors.NewAppError(500, "failed to save invitation "+invitation.InvitationID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkAccepted flips a pending invitation to accepted and inserts the
// resulting membership in one transaction. The status predicate on the
// UPDATE makes concurrent accept/revoke race losers fail cleanly.
func (r *PgxInvitationRepository) MarkAccepted(ctx context.Context, invitationID string, acceptedBy string, resolvedAt time.Time, membership domain.Membership) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE invitations
		SET status = $2, accepted_by = $3, resolved_at = $4
		WHERE invitation_id = $1 AND status = $5;
	`
	result, err := tx.Exec(ctx, updateQuery,
		invitationID,
		domain.InvitationAccepted,
		acceptedBy,
		resolvedAt,
		domain.InvitationPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to accept invitation "+invitationID, err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, tx, invitationID)
	}

	memberQuery := `
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workspace_id, user_id) DO NOTHING;
	`
	_, err = tx.Exec(ctx, memberQuery,
		membership.WorkspaceID,
		membership.UserID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save membership for invitation "+invitationID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkRevoked flips a pending invitation to revoked.
func (r *PgxInvitationRepository) MarkRevoked(ctx context.Context, invitationID string, resolvedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE invitations
		SET status = $2, resolved_at = $3
		WHERE invitation_id = $1 AND status = $4;
	`
	result, err := tx.Exec(ctx, query,
		invitationID,
		domain.InvitationRevoked,
		resolvedAt,
		domain.InvitationPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to revoke invitation "+invitationID, err)
	}
	if result.RowsAffected() == 0 {
		return r.resolveMissedUpdate(ctx, tx, invitationID)
	}

	return r.Commit(ctx, tx)
}

// resolveMissedUpdate distinguishes "invitation does not exist" from
// "invitation exists but is no longer pending" after a zero-row UPDATE.
func (r *PgxInvitationRepository) resolveMissedUpdate(ctx context.Context, tx pgx.Tx, invitationID string) error {
	var status domain.InvitationStatus
	err := tx.QueryRow(ctx, `SELECT status FROM invitations WHERE invitation_id = $1;`, invitationID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("invitation not found")
		}
		return apperrors.NewAppError(500, "failed to check invitation "+invitationID, err)
	}
	return apperrors.ErrInvalidState
}
