package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/domain/report"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
	"github.com/orbai/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursPtr(v float64) *float64 { return &v }

func TestSummarize_TotalsAndAverage(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusPresent, WorkHours: hoursPtr(8.0), OvertimeHours: hoursPtr(0)},
		{Status: attendance.StatusLate, WorkHours: hoursPtr(9.5), OvertimeHours: hoursPtr(1.5)},
		{Status: attendance.StatusAbsent},
	}

	summary := Summarize(records)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.InDelta(t, 17.5, summary.TotalWorkHours, 0.001)
	assert.InDelta(t, 1.5, summary.TotalOvertimeHours, 0.001)
	assert.InDelta(t, 5.83, summary.AverageWorkHours, 0.001)
}

func TestSummarize_EmptyInput(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalRecords)
	assert.Zero(t, summary.TotalWorkHours)
	assert.Zero(t, summary.AverageWorkHours)
	// All four status keys are present even with no records.
	assert.Len(t, summary.StatusCounts, 4)
	assert.Zero(t, summary.StatusCounts[attendance.StatusPresent])
}

func TestSummarize_CountsEveryStatus(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusLate},
		{Status: attendance.StatusHalfDay},
	}

	summary := Summarize(records)

	assert.Equal(t, 2, summary.StatusCounts[attendance.StatusPresent])
	assert.Equal(t, 1, summary.StatusCounts[attendance.StatusLate])
	assert.Equal(t, 0, summary.StatusCounts[attendance.StatusAbsent])
	assert.Equal(t, 1, summary.StatusCounts[attendance.StatusHalfDay])
}

func seedRecord(t *testing.T, repo attendance.Repository, userID string, day time.Time, workHours float64, status attendance.Status) {
	t.Helper()
	checkIn := day.Add(9 * time.Hour)
	_, err := repo.RecordCheckIn(context.Background(), attendance.Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        day,
		CheckInTime: &checkIn,
		Status:      status,
	})
	require.NoError(t, err)
}

func TestAttendanceReport_DefaultsToLast30Days(t *testing.T) {
	attendanceRepo := memory.NewAttendanceRepository()
	svc := NewReportService(attendanceRepo, memory.NewTaskRepository())

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	inRange := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	seedRecord(t, attendanceRepo, "user-1", inRange, 8, attendance.StatusPresent)
	seedRecord(t, attendanceRepo, "user-1", outOfRange, 8, attendance.StatusPresent)

	result, err := svc.AttendanceReport(context.Background(), report.AttendanceReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-13", result.StartDate)
	assert.Equal(t, "2026-03-15", result.EndDate)
	assert.Equal(t, 1, result.Summary.TotalRecords)
	assert.Len(t, result.Records, 1)
}

func TestAttendanceReport_FiltersByUser(t *testing.T) {
	attendanceRepo := memory.NewAttendanceRepository()
	svc := NewReportService(attendanceRepo, memory.NewTaskRepository())

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedRecord(t, attendanceRepo, "user-1", day, 8, attendance.StatusPresent)
	seedRecord(t, attendanceRepo, "user-2", day, 8, attendance.StatusLate)

	userID := "user-2"
	result, err := svc.AttendanceReport(context.Background(), report.AttendanceReportRequest{UserID: &userID})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.TotalRecords)
	assert.Equal(t, 1, result.Summary.StatusCounts[attendance.StatusLate])
}

func TestAttendanceReport_InvalidDateRejected(t *testing.T) {
	svc := NewReportService(memory.NewAttendanceRepository(), memory.NewTaskRepository())

	_, err := svc.AttendanceReport(context.Background(), report.AttendanceReportRequest{StartDate: "03/15/2026"})
	assert.Error(t, err)
}

func TestTaskReport_SummaryCounts(t *testing.T) {
	taskRepo := memory.NewTaskRepository()
	svc := NewReportService(memory.NewAttendanceRepository(), taskRepo)

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	overdueDue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []task.Task{
		{ID: uuid.NewString(), Title: "Quarterly report", Priority: task.PriorityHigh, Status: task.StatusCompleted, AssignedTo: "u1", AssignedBy: "m1"},
		{ID: uuid.NewString(), Title: "Onboarding docs", Priority: task.PriorityLow, Status: task.StatusPending, AssignedTo: "u1", AssignedBy: "m1", DueDate: &overdueDue},
		{ID: uuid.NewString(), Title: "Server migration", Priority: task.PriorityUrgent, Status: task.StatusInProgress, AssignedTo: "u2", AssignedBy: "m1"},
	}
	for _, tk := range seed {
		_, err := taskRepo.Create(context.Background(), tk)
		require.NoError(t, err)
	}

	result, err := svc.TaskReport(context.Background(), report.TaskReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.TotalTasks)
	assert.Equal(t, 1, result.Summary.CompletedTasks)
	assert.Equal(t, 1, result.Summary.PendingTasks)
	assert.Equal(t, 1, result.Summary.InProgressTasks)
	assert.Equal(t, 0, result.Summary.CancelledTasks)
	assert.Equal(t, 1, result.Summary.OverdueTasks)
	assert.Equal(t, 1, result.Summary.PriorityBreakdown[task.PriorityUrgent])
	assert.Len(t, result.Tasks, 3)
}
