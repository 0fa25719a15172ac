package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/domain/report"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
)

// defaultReportDays is the window used when the request carries no date range.
const defaultReportDays = 30

type ReportServiceImpl struct {
	attendanceRepo attendance.Repository
	taskRepo       task.Repository

	now func() time.Time
}

func NewReportService(attendanceRepo attendance.Repository, taskRepo task.Repository) *ReportServiceImpl {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		now:            time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize folds a record set into totals. Sums run over stored full-precision
// values; rounding happens once on the way out. Records with no stored work
// hours (still checked in, or absent) contribute zero but are still counted.
func Summarize(records []attendance.Record) report.Summary {
	summary := report.Summary{
		StatusCounts: map[attendance.Status]int{
			attendance.StatusPresent: 0,
			attendance.StatusLate:    0,
			attendance.StatusAbsent:  0,
			attendance.StatusHalfDay: 0,
		},
	}

	for _, record := range records {
		summary.TotalRecords++
		if record.WorkHours != nil {
			summary.TotalWorkHours += *record.WorkHours
		}
		if record.OvertimeHours != nil {
			summary.TotalOvertimeHours += *record.OvertimeHours
		}
		summary.StatusCounts[record.Status]++
	}

	if summary.TotalRecords > 0 {
		summary.AverageWorkHours = round2(summary.TotalWorkHours / float64(summary.TotalRecords))
	}
	summary.TotalWorkHours = round2(summary.TotalWorkHours)
	summary.TotalOvertimeHours = round2(summary.TotalOvertimeHours)

	return summary
}

// AttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	now := s.now()
	if req.EndDate == "" {
		req.EndDate = now.Format("2006-01-02")
	}
	if req.StartDate == "" {
		req.StartDate = now.AddDate(0, 0, -defaultReportDays).Format("2006-01-02")
	}

	records, err := s.attendanceRepo.ListRange(ctx, attendance.RangeFilter{
		UserID:     req.UserID,
		Department: req.Department,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to list records for report: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}

	return report.AttendanceReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Summary:     Summarize(records),
		Records:     responses,
	}, nil
}

// TaskReport implements report.ReportService.
func (s *ReportServiceImpl) TaskReport(ctx context.Context, req report.TaskReportRequest) (report.TaskReport, error) {
	if err := req.Validate(); err != nil {
		return report.TaskReport{}, err
	}

	tasks, err := s.taskRepo.ListRange(ctx, task.RangeFilter{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		AssignedTo: req.AssignedTo,
		AssignedBy: req.AssignedBy,
		Status:     req.Status,
		Priority:   req.Priority,
	})
	if err != nil {
		return report.TaskReport{}, fmt.Errorf("failed to list tasks for report: %w", err)
	}

	now := s.now()
	summary := report.TaskSummary{
		PriorityBreakdown: map[task.Priority]int{
			task.PriorityLow:    0,
			task.PriorityMedium: 0,
			task.PriorityHigh:   0,
			task.PriorityUrgent: 0,
		},
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		summary.TotalTasks++
		switch t.Status {
		case task.StatusCompleted:
			summary.CompletedTasks++
		case task.StatusPending:
			summary.PendingTasks++
		case task.StatusInProgress:
			summary.InProgressTasks++
		case task.StatusCancelled:
			summary.CancelledTasks++
		}
		if t.IsOverdue(now) {
			summary.OverdueTasks++
		}
		summary.PriorityBreakdown[t.Priority]++
		responses = append(responses, toTaskResponse(*t))
	}

	return report.TaskReport{
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Summary:     summary,
		Tasks:       responses,
	}, nil
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           record.ID,
		UserID:       record.UserID,
		Date:         record.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(record.CheckInTime),
		CheckOutTime: timePtrToString(record.CheckOutTime),
		Status:       record.Status,
		Notes:        record.Notes,
		EmployeeCode: record.EmployeeCode,
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		Department:   record.Department,
		Position:     record.Position,
		CreatedAt:    record.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if record.WorkHours != nil {
		wh := round2(*record.WorkHours)
		resp.WorkHours = &wh
	}
	if record.OvertimeHours != nil {
		ot := round2(*record.OvertimeHours)
		resp.OvertimeHours = &ot
	}
	return resp
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

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}
