package user

import "context"

// UserService defines business logic for user management (admin/manager).
type UserService interface {
	List(ctx context.Context, filter ListFilter) (ListUsersResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	// Delete removes a user and, through the storage cascade, their
	// attendance records.
	Delete(ctx context.Context, id string) error
}
