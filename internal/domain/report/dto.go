package report

import (
	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
)

// Summary aggregates a set of attendance records. StatusCounts always carries
// all four status keys, zero-valued when absent from the input.
type Summary struct {
	TotalRecords       int                       `json:"total_records"`
	TotalWorkHours     float64                   `json:"total_work_hours"`
	TotalOvertimeHours float64                   `json:"total_overtime_hours"`
	AverageWorkHours   float64                   `json:"average_work_hours"`
	StatusCounts       map[attendance.Status]int `json:"status_counts"`
}

type AttendanceReportRequest struct {
	UserID     *string
	Department *string
	StartDate  string
	EndDate    string
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceReport struct {
	StartDate   string                      `json:"start_date"`
	EndDate     string                      `json:"end_date"`
	GeneratedAt string                      `json:"generated_at"`
	Summary     Summary                     `json:"summary"`
	Records     []attendance.RecordResponse `json:"records"`
}

// TaskSummary aggregates tasks for the task report.
type TaskSummary struct {
	TotalTasks        int                   `json:"total_tasks"`
	CompletedTasks    int                   `json:"completed_tasks"`
	PendingTasks      int                   `json:"pending_tasks"`
	InProgressTasks   int                   `json:"in_progress_tasks"`
	CancelledTasks    int                   `json:"cancelled_tasks"`
	OverdueTasks      int                   `json:"overdue_tasks"`
	PriorityBreakdown map[task.Priority]int `json:"priority_breakdown"`
}

type TaskReportRequest struct {
	StartDate  *string
	EndDate    *string
	AssignedTo *string
	AssignedBy *string
	Status     *string
	Priority   *string
}

func (r *TaskReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil && *r.StartDate != "" {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if r.Status != nil && *r.Status != "" && !task.Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, in_progress, completed, or cancelled",
		})
	}
	if r.Priority != nil && *r.Priority != "" && !task.Priority(*r.Priority).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be low, medium, high, or urgent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskReport struct {
	GeneratedAt string              `json:"generated_at"`
	Summary     TaskSummary         `json:"summary"`
	Tasks       []task.TaskResponse `json:"tasks"`
}
