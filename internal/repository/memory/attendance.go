// Package memory provides in-memory repository implementations backed by maps
// and a mutex. They honor the same conditional-write semantics as the
// PostgreSQL layer and exist for unit tests that exercise service logic
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	mu      sync.Mutex
	records map[string]*attendance.Record // keyed by record ID
	byDay   map[string]string             // (userID, date) -> record ID, the uniqueness constraint
}

func NewAttendanceRepository() attendance.Repository {
	return &attendanceRepository{
		records: make(map[string]*attendance.Record),
		byDay:   make(map[string]string),
	}
}

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

// RecordCheckIn implements attendance.Repository.
func (r *attendanceRepository) RecordCheckIn(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(record.UserID, record.Date)
	if existingID, ok := r.byDay[key]; ok {
		existing := r.records[existingID]
		if existing.CheckInTime != nil {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		existing.CheckInTime = record.CheckInTime
		existing.Status = record.Status
		existing.Notes = record.Notes
		existing.UpdatedAt = time.Now()
		return *existing, nil
	}

	stored := record
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.records[stored.ID] = &stored
	r.byDay[key] = stored.ID
	return stored, nil
}

// RecordCheckOut implements attendance.Repository.
func (r *attendanceRepository) RecordCheckOut(ctx context.Context, id string, checkOut time.Time, workHours, overtimeHours float64, notes *string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if rec.CheckOutTime != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOutTime = &checkOut
	rec.WorkHours = &workHours
	rec.OvertimeHours = &overtimeHours
	if notes != nil {
		merged := ""
		if rec.Notes != nil {
			merged = *rec.Notes
		}
		merged += *notes
		rec.Notes = &merged
	}
	rec.UpdatedAt = time.Now()
	return *rec, nil
}

// GetByUserAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byDay[dayKey(userID, date)]
	if !ok {
		return nil, nil
	}
	rec := *r.records[id]
	return &rec, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *rec, nil
}

// Amend implements attendance.Repository.
func (r *attendanceRepository) Amend(ctx context.Context, id string, fields attendance.AmendFields) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	amended := false
	if fields.CheckInTime != nil {
		rec.CheckInTime = fields.CheckInTime
		amended = true
	}
	if fields.CheckOutTime != nil {
		rec.CheckOutTime = fields.CheckOutTime
		amended = true
	}
	if fields.WorkHours != nil {
		rec.WorkHours = fields.WorkHours
		amended = true
	}
	if fields.OvertimeHours != nil {
		rec.OvertimeHours = fields.OvertimeHours
		amended = true
	}
	if fields.Status != nil {
		rec.Status = *fields.Status
		amended = true
	}
	if fields.Notes != nil {
		rec.Notes = fields.Notes
		amended = true
	}
	if !amended {
		return attendance.Record{}, attendance.ErrNoFieldsToAmend
	}

	rec.UpdatedAt = time.Now()
	return *rec, nil
}

// ListForUser implements attendance.Repository.
func (r *attendanceRepository) ListForUser(ctx context.Context, userID string, filter attendance.MyRecordsFilter) ([]attendance.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []attendance.Record
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if !matchesDateRange(rec.Date, filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(rec.Status) != *filter.Status {
			continue
		}
		matched = append(matched, *rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit, 30), total, nil
}

// List implements attendance.Repository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.RecordsFilter) ([]attendance.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []attendance.Record
	for _, rec := range r.records {
		if filter.UserID != nil && *filter.UserID != "" && rec.UserID != *filter.UserID {
			continue
		}
		if filter.Department != nil && *filter.Department != "" {
			if rec.Department == nil || *rec.Department != *filter.Department {
				continue
			}
		}
		if filter.Status != nil && *filter.Status != "" && string(rec.Status) != *filter.Status {
			continue
		}
		if !matchesDateRange(rec.Date, filter.StartDate, filter.EndDate) {
			continue
		}
		matched = append(matched, *rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit, 30), total, nil
}

// ListRange implements attendance.Repository.
func (r *attendanceRepository) ListRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := filter.StartDate
	end := filter.EndDate

	var matched []attendance.Record
	for _, rec := range r.records {
		if filter.UserID != nil && *filter.UserID != "" && rec.UserID != *filter.UserID {
			continue
		}
		if filter.Department != nil && *filter.Department != "" {
			if rec.Department == nil || *rec.Department != *filter.Department {
				continue
			}
		}
		if !matchesDateRange(rec.Date, &start, &end) {
			continue
		}
		matched = append(matched, *rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].UserID != matched[j].UserID {
			return matched[i].UserID < matched[j].UserID
		}
		return matched[i].Date.Before(matched[j].Date)
	})

	return matched, nil
}

func matchesDateRange(date time.Time, startDate, endDate *string) bool {
	day := date.Format("2006-01-02")
	if startDate != nil && *startDate != "" && day < *startDate {
		return false
	}
	if endDate != nil && *endDate != "" && day > *endDate {
		return false
	}
	return true
}

func paginate[T any](items []T, page, limit, defaultLimit int) []T {
	if limit == 0 {
		limit = defaultLimit
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
