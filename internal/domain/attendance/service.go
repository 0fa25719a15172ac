package attendance

import (
	"context"
)

// Service owns the attendance record lifecycle: check-in, check-out, derived
// time metrics, and the administrative amendment escape hatch. Authorization
// is the HTTP layer's concern; the service trusts the user ID it is handed.
type Service interface {
	// CheckIn records the first check-in of the user's day and classifies it
	// as present or late against the configured shift start.
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes today's record and derives work and overtime hours.
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (CheckOutResponse, error)

	// TodayStatus reports where the user is in today's check-in/check-out cycle.
	TodayStatus(ctx context.Context, userID string) (TodayStatusResponse, error)

	// AmendRecord overwrites fields on a record without re-deriving the rest.
	AmendRecord(ctx context.Context, req AmendRequest) (RecordResponse, error)

	// GetRecord retrieves a single record by ID.
	GetRecord(ctx context.Context, id string) (RecordResponse, error)

	// MyRecords lists the authenticated user's own records.
	MyRecords(ctx context.Context, userID string, filter MyRecordsFilter) (ListRecordsResponse, error)

	// ListRecords lists records across users (admin/manager).
	ListRecords(ctx context.Context, filter RecordsFilter) (ListRecordsResponse, error)
}
