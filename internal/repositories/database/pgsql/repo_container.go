package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/teamdesk/team_desk_app/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	invitationRepo := newPgxInvitationRepository(dbPool)
	taskRepo := newPgxTaskRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		WorkspaceRepo:  workspaceRepo,
		ProjectRepo:    projectRepo,
		InvitationRepo: invitationRepo,
		TaskRepo:       taskRepo,
	}
}
