package repositories

import (
	"context"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
)

// UserRepositoryReader defines read operations for users
type UserRepositoryReader interface {
	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound if
	// the user does not exist or is soft-deleted.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username for credential checks.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by external auth provider identity.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserRepositoryWriter defines write operations for users
type UserRepositoryWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the
	// username is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates profile fields of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a freshly issued
	// refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken invalidates the stored refresh token on logout.
	ClearRefreshToken(ctx context.Context, userID string) error

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user repository capabilities
type UserRepositoryFacade interface {
	UserRepositoryReader
	UserRepositoryWriter
}
