package attendance

import (
	"time"
)

// Status classifies an attendance record. Present and late are assigned
// automatically at check-in; absent and half_day are only ever set through an
// administrative amendment.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// DayState is the tri-state answer to "where is this user in today's cycle".
type DayState string

const (
	StateNotCheckedIn DayState = "not_checked_in"
	StateCheckedIn    DayState = "checked_in"
	StateCheckedOut   DayState = "checked_out"
)

// Record is one attendance record per (user, calendar day). WorkHours and
// OvertimeHours are derived once at check-out and stored at full precision;
// they are never recomputed afterwards except through an explicit amendment.
type Record struct {
	ID            string
	UserID        string
	Date          time.Time
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	WorkHours     *float64
	OvertimeHours *float64
	Status        Status
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined user info for admin/manager listings
	EmployeeCode *string
	FirstName    *string
	LastName     *string
	Department   *string
	Position     *string
}
