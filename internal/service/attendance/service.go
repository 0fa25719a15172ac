package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/config"
	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
)

// checkOutNotesPrefix separates check-out notes from whatever the user wrote
// at check-in. Stored as part of the notes column, not reconstructed on read.
const checkOutNotesPrefix = "\nCheck-out notes: "

// anomalyNote flags a record whose check-out landed before its check-in,
// which can only happen through an amendment or clock skew.
const anomalyNote = "\n[flagged: check-out before check-in, work hours clamped to 0]"

type AttendanceServiceImpl struct {
	repo attendance.Repository
	cfg  config.AttendanceConfig

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

func NewAttendanceService(repo attendance.Repository, cfg config.AttendanceConfig) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// round2 rounds for display only. Stored values keep full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

// dayOf truncates a wall-clock moment to its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// shiftStartFor returns the configured shift start on the given day.
func (s *AttendanceServiceImpl) shiftStartFor(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.cfg.ShiftStartHour, s.cfg.ShiftStartMinute, 0, 0, day.Location())
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.now()
	today := dayOf(now)

	// Late means strictly after shift start; checking in at 09:00:00 sharp is
	// still present.
	status := attendance.StatusPresent
	if now.After(s.shiftStartFor(today)) {
		status = attendance.StatusLate
	}

	checkIn := now
	record := attendance.Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      status,
		Notes:       req.Notes,
	}

	// The repository write is conditional on no check-in existing for
	// (user, day); the loser of a concurrent duplicate attempt gets
	// ErrAlreadyCheckedIn rather than a second row.
	created, err := s.repo.RecordCheckIn(ctx, record)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		CheckInTime: created.CheckInTime.Format("2006-01-02 15:04:05"),
		Status:      created.Status,
		IsLate:      created.Status == attendance.StatusLate,
	}, nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.now()
	today := dayOf(now)

	record, err := s.repo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if record == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNoCheckInFound
	}
	if record.CheckInTime == nil {
		return attendance.CheckOutResponse{}, attendance.ErrMustCheckInFirst
	}
	if record.CheckOutTime != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	workHours := now.Sub(*record.CheckInTime).Hours()
	flagged := false
	if workHours < 0 {
		workHours = 0
		flagged = true
	}
	overtimeHours := math.Max(0, workHours-s.cfg.StandardShiftHours)

	var notes *string
	if req.Notes != nil && *req.Notes != "" {
		appended := checkOutNotesPrefix + *req.Notes
		notes = &appended
	}
	if flagged {
		merged := anomalyNote
		if notes != nil {
			merged = *notes + anomalyNote
		}
		notes = &merged
	}

	// Conditional on check_out_time still being null, so two concurrent
	// check-outs cannot both derive and store hours.
	updated, err := s.repo.RecordCheckOut(ctx, record.ID, now, workHours, overtimeHours, notes)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return attendance.CheckOutResponse{
		CheckOutTime:  updated.CheckOutTime.Format("2006-01-02 15:04:05"),
		WorkHours:     round2(*updated.WorkHours),
		OvertimeHours: round2(*updated.OvertimeHours),
	}, nil
}

// TodayStatus implements attendance.Service.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context, userID string) (attendance.TodayStatusResponse, error) {
	record, err := s.repo.GetByUserAndDate(ctx, userID, dayOf(s.now()))
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	switch {
	case record == nil || record.CheckInTime == nil:
		return attendance.TodayStatusResponse{State: attendance.StateNotCheckedIn}, nil
	case record.CheckOutTime == nil:
		resp := toRecordResponse(*record)
		return attendance.TodayStatusResponse{State: attendance.StateCheckedIn, Record: &resp}, nil
	default:
		resp := toRecordResponse(*record)
		return attendance.TodayStatusResponse{State: attendance.StateCheckedOut, Record: &resp}, nil
	}
}

// AmendRecord implements attendance.Service. Amendment overwrites exactly the
// fields provided; it does not re-derive work or overtime hours from amended
// times. Keeping stored metrics authoritative makes every amendment auditable
// on its own.
func (s *AttendanceServiceImpl) AmendRecord(ctx context.Context, req attendance.AmendRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	fields := attendance.AmendFields{
		WorkHours:     req.WorkHours,
		OvertimeHours: req.OvertimeHours,
		Status:        req.Status,
		Notes:         req.Notes,
	}
	if req.CheckInTime != nil {
		t, _ := validator.ParseTimestamp(*req.CheckInTime)
		fields.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, _ := validator.ParseTimestamp(*req.CheckOutTime)
		fields.CheckOutTime = &t
	}

	amended, err := s.repo.Amend(ctx, req.ID, fields)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(amended), nil
}

// GetRecord implements attendance.Service.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

// MyRecords implements attendance.Service.
func (s *AttendanceServiceImpl) MyRecords(ctx context.Context, userID string, filter attendance.MyRecordsFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 30
	}

	records, total, err := s.repo.ListForUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListRecords implements attendance.Service.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordsFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 30
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

func buildListResponse(records []attendance.Record, total int64, page, limit int) attendance.ListRecordsResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Records:    responses,
	}
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
