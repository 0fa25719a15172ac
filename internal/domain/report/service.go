package report

import "context"

// ReportService builds read-side summaries over records the ledger already
// derived; it never recomputes work or overtime hours.
type ReportService interface {
	AttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
	TaskReport(ctx context.Context, req TaskReportRequest) (TaskReport, error)
}
