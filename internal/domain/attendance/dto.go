package attendance

import (
	"time"

	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
)

const maxNotesLength = 500

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

func (r *CheckInRequest) Validate() error {
	return validateNotes(r.Notes)
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

func (r *CheckOutRequest) Validate() error {
	return validateNotes(r.Notes)
}

func validateNotes(notes *string) error {
	var errs validator.ValidationErrors

	if notes != nil && len(*notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must be less than 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckInResponse struct {
	CheckInTime string `json:"check_in_time"`
	Status      Status `json:"status"`
	IsLate      bool   `json:"is_late"`
}

type CheckOutResponse struct {
	CheckOutTime  string  `json:"check_out_time"`
	WorkHours     float64 `json:"work_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type RecordResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Date          string   `json:"date"`
	CheckInTime   *string  `json:"check_in_time"`
	CheckOutTime  *string  `json:"check_out_time"`
	WorkHours     *float64 `json:"work_hours"`
	OvertimeHours *float64 `json:"overtime_hours"`
	Status        Status   `json:"status"`
	Notes         *string  `json:"notes,omitempty"`
	EmployeeCode  *string  `json:"employee_id,omitempty"`
	FirstName     *string  `json:"first_name,omitempty"`
	LastName      *string  `json:"last_name,omitempty"`
	Department    *string  `json:"department,omitempty"`
	Position      *string  `json:"position,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type TodayStatusResponse struct {
	State  DayState        `json:"state"`
	Record *RecordResponse `json:"record,omitempty"`
}

// AmendRequest is the administrative escape hatch: any field it carries is
// overwritten as-is, with no re-derivation of the others.
type AmendRequest struct {
	ID            string   `json:"-"`
	CheckInTime   *string  `json:"check_in_time"`
	CheckOutTime  *string  `json:"check_out_time"`
	WorkHours     *float64 `json:"work_hours"`
	OvertimeHours *float64 `json:"overtime_hours"`
	Status        *Status  `json:"status"`
	Notes         *string  `json:"notes"`
}

func (r *AmendRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.CheckInTime != nil {
		if _, ok := validator.ParseTimestamp(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, ok := validator.ParseTimestamp(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
			})
		}
	}

	if r.WorkHours != nil && *r.WorkHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours",
			Message: "work_hours must be non-negative",
		})
	}

	if r.OvertimeHours != nil && *r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must be non-negative",
		})
	}

	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be present, late, absent, or half_day",
		})
	}

	if err := validateNotes(r.Notes); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if !r.hasFields() {
		errs = append(errs, validator.ValidationError{
			Field:   "fields",
			Message: "at least one field to amend is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *AmendRequest) hasFields() bool {
	return r.CheckInTime != nil || r.CheckOutTime != nil || r.WorkHours != nil ||
		r.OvertimeHours != nil || r.Status != nil || r.Notes != nil
}

// AmendFields carries parsed amendment values to the repository.
type AmendFields struct {
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	WorkHours     *float64
	OvertimeHours *float64
	Status        *Status
	Notes         *string
}

// ========================================
// FILTERS
// ========================================

type MyRecordsFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *MyRecordsFilter) Validate() error {
	return validateFilterDates(f.StartDate, f.EndDate, f.Status)
}

type RecordsFilter struct {
	UserID     *string
	Department *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f *RecordsFilter) Validate() error {
	return validateFilterDates(f.StartDate, f.EndDate, f.Status)
}

// RangeFilter selects records for report aggregation over [StartDate, EndDate].
type RangeFilter struct {
	UserID     *string
	Department *string
	StartDate  string
	EndDate    string
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(f.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateFilterDates(startDate, endDate, status *string) error {
	var errs validator.ValidationErrors

	if startDate != nil && *startDate != "" {
		if _, ok := validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if endDate != nil && *endDate != "" {
		if _, ok := validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if status != nil && *status != "" && !Status(*status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be present, late, absent, or half_day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
