package task

import "context"

// Repository defines data access for tasks.
type Repository interface {
	Create(ctx context.Context, task Task) (Task, error)

	GetByID(ctx context.Context, id string) (Task, error)

	Update(ctx context.Context, task Task) error

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter ListFilter) ([]Task, int64, error)

	// ListRange retrieves tasks created inside [start, end] for reporting,
	// with optional assignee/assigner/status/priority filters. No pagination.
	ListRange(ctx context.Context, filter RangeFilter) ([]Task, error)
}

// RangeFilter selects tasks for report aggregation.
type RangeFilter struct {
	StartDate  *string
	EndDate    *string
	AssignedTo *string
	AssignedBy *string
	Status     *string
	Priority   *string
}
