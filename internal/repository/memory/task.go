package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orbai/attendance-backend-go/internal/domain/task"
)

type taskRepository struct {
	mu    sync.Mutex
	tasks map[string]*task.Task
}

func NewTaskRepository() task.Repository {
	return &taskRepository{tasks: make(map[string]*task.Task)}
}

// Create implements task.Repository.
func (r *taskRepository) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := newTask
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.tasks[stored.ID] = &stored
	return stored, nil
}

// GetByID implements task.Repository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return *t, nil
}

// Update implements task.Repository.
func (r *taskRepository) Update(ctx context.Context, updated task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[updated.ID]
	if !ok {
		return task.ErrTaskNotFound
	}
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.tasks[updated.ID] = &updated
	return nil
}

// Delete implements task.Repository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// List implements task.Repository.
func (r *taskRepository) List(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []task.Task
	for _, t := range r.tasks {
		if filter.Status != nil && *filter.Status != "" && string(t.Status) != *filter.Status {
			continue
		}
		if filter.Priority != nil && *filter.Priority != "" && string(t.Priority) != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && *filter.AssignedTo != "" && t.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.AssignedBy != nil && *filter.AssignedBy != "" && t.AssignedBy != *filter.AssignedBy {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			haystack := strings.ToLower(t.Title)
			if t.Description != nil {
				haystack += " " + strings.ToLower(*t.Description)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if !matchesDueRange(t.DueDate, filter.DueDateFrom, filter.DueDateTo) {
			continue
		}
		matched = append(matched, *t)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit, 10), total, nil
}

// ListRange implements task.Repository.
func (r *taskRepository) ListRange(ctx context.Context, filter task.RangeFilter) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []task.Task
	for _, t := range r.tasks {
		if !matchesDateRange(t.CreatedAt, filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.AssignedTo != nil && *filter.AssignedTo != "" && t.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.AssignedBy != nil && *filter.AssignedBy != "" && t.AssignedBy != *filter.AssignedBy {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(t.Status) != *filter.Status {
			continue
		}
		if filter.Priority != nil && *filter.Priority != "" && string(t.Priority) != *filter.Priority {
			continue
		}
		matched = append(matched, *t)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func matchesDueRange(due *time.Time, from, to *string) bool {
	if from == nil && to == nil {
		return true
	}
	if due == nil {
		return false
	}
	return matchesDateRange(*due, from, to)
}
