package http

import (
	"net/http"

	"github.com/orbai/attendance-backend-go/internal/domain/report"
	"github.com/orbai/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	Tasks(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceReportRequest{
		UserID:     queryParam(r, "user_id"),
		Department: queryParam(r, "department"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.AttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Tasks implements ReportHandler.
func (h *reportHandlerImpl) Tasks(w http.ResponseWriter, r *http.Request) {
	req := report.TaskReportRequest{
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
		AssignedTo: queryParam(r, "assigned_to"),
		AssignedBy: queryParam(r, "assigned_by"),
		Status:     queryParam(r, "status"),
		Priority:   queryParam(r, "priority"),
	}

	result, err := h.reportService.TaskReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
