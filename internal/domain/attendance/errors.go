package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out rule violations
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNoCheckInFound    = errors.New("no check-in record found for today")
	ErrMustCheckInFirst  = errors.New("must check in before checking out")

	// General errors
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrNoFieldsToAmend = errors.New("no valid fields to amend")
)
