package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
	"github.com/orbai/attendance-backend-go/internal/domain/user"
	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
)

type TaskServiceImpl struct {
	repo     task.Repository
	userRepo user.UserRepository

	now func() time.Time
}

func NewTaskService(repo task.Repository, userRepo user.UserRepository) *TaskServiceImpl {
	return &TaskServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Create implements task.Service.
func (s *TaskServiceImpl) Create(ctx context.Context, assignedBy string, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	assignee, err := s.userRepo.GetByID(ctx, req.AssignedTo)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.TaskResponse{}, task.ErrAssigneeNotFound
		}
		return task.TaskResponse{}, fmt.Errorf("failed to look up assignee: %w", err)
	}
	if !assignee.IsActive {
		return task.TaskResponse{}, task.ErrAssigneeNotFound
	}

	priority := req.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}

	newTask := task.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      task.StatusPending,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  assignedBy,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, _ := validator.IsValidDate(*req.DueDate)
		newTask.DueDate = &due
	}

	created, err := s.repo.Create(ctx, newTask)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	return toTaskResponse(created), nil
}

// Get implements task.Service.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// Update implements task.Service. CompletedAt follows status transitions: it
// is stamped when the status moves to completed and cleared when it moves
// away again.
func (s *TaskServiceImpl) Update(ctx context.Context, requesterID string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if requesterID != "" && existing.AssignedTo != requesterID {
		return task.TaskResponse{}, task.ErrNotTaskAssignee
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		assignee, err := s.userRepo.GetByID(ctx, *req.AssignedTo)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return task.TaskResponse{}, task.ErrAssigneeNotFound
			}
			return task.TaskResponse{}, fmt.Errorf("failed to look up assignee: %w", err)
		}
		if !assignee.IsActive {
			return task.TaskResponse{}, task.ErrAssigneeNotFound
		}
		existing.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			existing.DueDate = nil
		} else {
			due, _ := validator.IsValidDate(*req.DueDate)
			existing.DueDate = &due
		}
	}
	if req.Status != nil && *req.Status != existing.Status {
		switch {
		case *req.Status == task.StatusCompleted:
			completedAt := s.now()
			existing.CompletedAt = &completedAt
		case existing.Status == task.StatusCompleted:
			existing.CompletedAt = nil
		}
		existing.Status = *req.Status
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return task.TaskResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(updated), nil
}

// Delete implements task.Service.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List implements task.Service.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.ListFilter) (task.ListTasksResponse, error) {
	if err := filter.Validate(); err != nil {
		return task.ListTasksResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return task.ListTasksResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}

	return task.ListTasksResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tasks:      responses,
	}, nil
}

func toTaskResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
		AssignedBy:  t.AssignedBy,
		CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if t.CompletedAt != nil {
		completed := t.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}
	if t.AssigneeFirstName != nil && t.AssigneeLastName != nil {
		name := *t.AssigneeFirstName + " " + *t.AssigneeLastName
		resp.Assignee = &name
	}
	if t.AssignerFirstName != nil && t.AssignerLastName != nil {
		name := *t.AssignerFirstName + " " + *t.AssignerLastName
		resp.Assigner = &name
	}
	return resp
}
