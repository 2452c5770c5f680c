package services

import (
	"context"
	"time"

	"github.com/teamdesk/team_desk_app/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new local user with a bcrypt-hashed password.
	// Fails with apperrors.ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, name, email, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves an OAuth identity to a user, creating
	// the user on first login.
	FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo, authProvider string) (*domain.User, error)

	// UpdateUserName changes a user's display name. Users can only update
	// themselves.
	UpdateUserName(ctx context.Context, requestingUserID, userID, name string) (*domain.User, error)

	// DeleteUser soft-deletes a user. Users can only delete themselves.
	DeleteUser(ctx context.Context, requestingUserID, userID string) error
}

// UserTokenSvc defines refresh token persistence operations on users
type UserTokenSvc interface {
	// StoreRefreshToken hashes and stores a refresh token for the user.
	StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error

	// ClearRefreshToken removes the user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserTokenSvc
}
