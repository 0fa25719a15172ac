package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email regardless of active state; callers
	// decide whether inactive users may proceed.
	GetByEmail(ctx context.Context, email string) (User, error)

	// ExistsByEmailOrCode reports whether any user already holds the email or
	// employee code. Used to keep registration conflicts distinguishable.
	ExistsByEmailOrCode(ctx context.Context, email, employeeCode string) (emailTaken bool, codeTaken bool, err error)

	Update(ctx context.Context, user User) error

	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// Delete removes the user; attendance records cascade at the storage layer.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
}
