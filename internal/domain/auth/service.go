package auth

import (
	"context"

	"github.com/orbai/attendance-backend-go/internal/domain/user"
)

// AuthService defines authentication operations. Token verification itself is
// handled by the jwtauth middleware; this service owns credential checks and
// account creation.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Register creates a new user account (admin only).
	Register(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)

	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	// Logout revokes the presented access token.
	Logout(ctx context.Context, token string) error

	// Me returns the authenticated user's profile.
	Me(ctx context.Context, userID string) (user.UserResponse, error)
}
