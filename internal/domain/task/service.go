package task

import "context"

// Service defines business logic for task management. Employees see and
// update only their own tasks; managers and admins operate across users.
type Service interface {
	Create(ctx context.Context, assignedBy string, req CreateTaskRequest) (TaskResponse, error)

	Get(ctx context.Context, id string) (TaskResponse, error)

	// Update applies a partial update. When requesterID is non-empty the
	// update is restricted to tasks assigned to that user.
	Update(ctx context.Context, requesterID string, req UpdateTaskRequest) (TaskResponse, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter ListFilter) (ListTasksResponse, error)
}
