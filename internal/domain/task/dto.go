package task

import (
	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// TASK DTOs
// ========================================

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	AssignedTo  string   `json:"assigned_to"`
	DueDate     *string  `json:"due_date"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Title) < 3 || len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must be between 3 and 255 characters",
		})
	}
	if r.Description != nil && len(*r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be less than 1000 characters",
		})
	}
	if r.Priority != "" && !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be low, medium, high, or urgent",
		})
	}
	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_to",
			Message: "assigned user id is required",
		})
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	ID          string    `json:"-"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	Status      *Status   `json:"status"`
	AssignedTo  *string   `json:"assigned_to"`
	DueDate     *string   `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "task id is required",
		})
	}
	if r.Title != nil && (len(*r.Title) < 3 || len(*r.Title) > 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must be between 3 and 255 characters",
		})
	}
	if r.Description != nil && len(*r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be less than 1000 characters",
		})
	}
	if r.Priority != nil && !r.Priority.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be low, medium, high, or urgent",
		})
	}
	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, in_progress, completed, or cancelled",
		})
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	AssignedTo  string   `json:"assigned_to"`
	AssignedBy  string   `json:"assigned_by"`
	Assignee    *string  `json:"assignee,omitempty"`
	Assigner    *string  `json:"assigner,omitempty"`
	DueDate     *string  `json:"due_date"`
	CompletedAt *string  `json:"completed_at"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type ListFilter struct {
	Status      *string
	Priority    *string
	AssignedTo  *string
	AssignedBy  *string
	Search      *string
	DueDateFrom *string
	DueDateTo   *string
	Page        int
	Limit       int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, in_progress, completed, or cancelled",
		})
	}
	if f.Priority != nil && *f.Priority != "" && !Priority(*f.Priority).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be low, medium, high, or urgent",
		})
	}
	if f.DueDateFrom != nil && *f.DueDateFrom != "" {
		if _, ok := validator.IsValidDate(*f.DueDateFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date_from",
				Message: "due_date_from must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.DueDateTo != nil && *f.DueDateTo != "" {
		if _, ok := validator.IsValidDate(*f.DueDateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date_to",
				Message: "due_date_to must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTasksResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Tasks      []TaskResponse `json:"tasks"`
}
