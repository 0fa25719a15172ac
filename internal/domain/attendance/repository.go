package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The storage layer
// carries a uniqueness constraint on (user_id, date); RecordCheckIn and
// RecordCheckOut are conditional writes so the loser of a concurrent race
// fails with the matching domain error instead of creating a duplicate row or
// overwriting a finished record.
type Repository interface {
	// RecordCheckIn inserts today's record, or claims an existing row that has
	// no check-in time yet. Returns ErrAlreadyCheckedIn when the row already
	// holds a check-in.
	RecordCheckIn(ctx context.Context, record Record) (Record, error)

	// RecordCheckOut stores the check-out time and derived metrics, appending
	// notes to whatever is already on the row. Only succeeds while
	// check_out_time is still null; otherwise returns ErrAlreadyCheckedOut.
	RecordCheckOut(ctx context.Context, id string, checkOut time.Time, workHours, overtimeHours float64, notes *string) (Record, error)

	// GetByUserAndDate retrieves the record for a user on a calendar day.
	// Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// GetByID retrieves a record with joined user info.
	GetByID(ctx context.Context, id string) (Record, error)

	// Amend overwrites the provided fields without touching the others.
	Amend(ctx context.Context, id string, fields AmendFields) (Record, error)

	// ListForUser retrieves one user's records with date filters and pagination.
	ListForUser(ctx context.Context, userID string, filter MyRecordsFilter) ([]Record, int64, error)

	// List retrieves records across users with filters and pagination.
	List(ctx context.Context, filter RecordsFilter) ([]Record, int64, error)

	// ListRange retrieves all records in a closed date range for reporting,
	// optionally restricted to one user or one department. No pagination;
	// ordered by department, user name, date like the report output.
	ListRange(ctx context.Context, filter RangeFilter) ([]Record, error)
}
