package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orbai/attendance-backend-go/internal/domain/attendance"
	"github.com/orbai/attendance-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const recordColumns = `id, user_id, date, check_in_time, check_out_time,
	work_hours, overtime_hours, status, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// RecordCheckIn implements attendance.Repository.
//
// The insert and the "already checked in" test are one conditional write: the
// partial DO UPDATE claims a pre-created row only while its check_in_time is
// still null, so two concurrent check-ins for the same (user_id, date) cannot
// both succeed. A conflict whose row already holds a check-in produces no
// returned row, which maps to ErrAlreadyCheckedIn.
func (a *attendanceRepository) RecordCheckIn(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, user_id, date, check_in_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
		    status        = EXCLUDED.status,
		    notes         = EXCLUDED.notes,
		    updated_at    = NOW()
		WHERE attendance_records.check_in_time IS NULL
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.CheckInTime,
		record.Status,
		record.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// Race loser whose conflict target was the surrogate id rather
			// than (user_id, date).
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return rec, nil
}

// RecordCheckOut implements attendance.Repository. The WHERE guard makes the
// write conditional so a concurrent double check-out loses cleanly.
func (a *attendanceRepository) RecordCheckOut(ctx context.Context, id string, checkOut time.Time, workHours, overtimeHours float64, notes *string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $2,
		    work_hours     = $3,
		    overtime_hours = $4,
		    notes          = COALESCE(notes, '') || COALESCE($5, ''),
		    updated_at     = NOW()
		WHERE id = $1
		  AND check_out_time IS NULL
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, id, checkOut, workHours, overtimeHours, notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Record{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance record by user and date: %w", err)
	}

	return &rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			ar.id, ar.user_id, ar.date, ar.check_in_time, ar.check_out_time,
			ar.work_hours, ar.overtime_hours, ar.status, ar.notes,
			ar.created_at, ar.updated_at,
			u.employee_code, u.first_name, u.last_name, u.department, u.position
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id
		WHERE ar.id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeCode, &rec.FirstName, &rec.LastName, &rec.Department, &rec.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// Amend implements attendance.Repository. Fields are overwritten exactly as
// provided; no derived value is recomputed here.
func (a *attendanceRepository) Amend(ctx context.Context, id string, fields attendance.AmendFields) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if fields.CheckInTime != nil {
		updates = append(updates, fmt.Sprintf("check_in_time = $%d", argIdx))
		args = append(args, fields.CheckInTime)
		argIdx++
	}
	if fields.CheckOutTime != nil {
		updates = append(updates, fmt.Sprintf("check_out_time = $%d", argIdx))
		args = append(args, fields.CheckOutTime)
		argIdx++
	}
	if fields.WorkHours != nil {
		updates = append(updates, fmt.Sprintf("work_hours = $%d", argIdx))
		args = append(args, fields.WorkHours)
		argIdx++
	}
	if fields.OvertimeHours != nil {
		updates = append(updates, fmt.Sprintf("overtime_hours = $%d", argIdx))
		args = append(args, fields.OvertimeHours)
		argIdx++
	}
	if fields.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *fields.Status)
		argIdx++
	}
	if fields.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, fields.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return attendance.Record{}, attendance.ErrNoFieldsToAmend
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, id)

	query := "UPDATE attendance_records SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", argIdx) + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to amend attendance record: %w", err)
	}

	return rec, nil
}

// ListForUser implements attendance.Repository.
func (a *attendanceRepository) ListForUser(ctx context.Context, userID string, filter attendance.MyRecordsFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 30
	}
	offset := (filter.Page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordsFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND ar.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND u.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND ar.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND ar.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND ar.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 30
	}
	offset := (filter.Page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT
			ar.id, ar.user_id, ar.date, ar.check_in_time, ar.check_out_time,
			ar.work_hours, ar.overtime_hours, ar.status, ar.notes,
			ar.created_at, ar.updated_at,
			u.employee_code, u.first_name, u.last_name, u.department, u.position
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id
		WHERE %s
		ORDER BY ar.date DESC, u.first_name, u.last_name
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records, err := scanJoinedRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "ar.date BETWEEN $1 AND $2"
	args := []interface{}{filter.StartDate, filter.EndDate}
	argIdx := 3

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND ar.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND u.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT
			ar.id, ar.user_id, ar.date, ar.check_in_time, ar.check_out_time,
			ar.work_hours, ar.overtime_hours, ar.status, ar.notes,
			ar.created_at, ar.updated_at,
			u.employee_code, u.first_name, u.last_name, u.department, u.position
		FROM attendance_records ar
		JOIN users u ON u.id = ar.user_id
		WHERE %s
		ORDER BY u.department, u.first_name, u.last_name, ar.date
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	return scanJoinedRecords(rows)
}

func scanJoinedRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.WorkHours, &rec.OvertimeHours, &rec.Status, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeCode, &rec.FirstName, &rec.LastName, &rec.Department, &rec.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
