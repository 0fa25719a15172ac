package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
	"github.com/orbai/attendance-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.Repository {
	return &taskRepository{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.priority, t.status,
	t.assigned_to, t.assigned_by, t.due_date, t.completed_at, t.created_at, t.updated_at,
	ae.employee_code, ae.first_name, ae.last_name, ae.department,
	ar.employee_code, ar.first_name, ar.last_name`

const taskJoins = `
	LEFT JOIN users ae ON t.assigned_to = ae.id
	LEFT JOIN users ar ON t.assigned_by = ar.id`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.AssignedTo, &t.AssignedBy, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
		&t.AssigneeCode, &t.AssigneeFirstName, &t.AssigneeLastName, &t.AssigneeDepartment,
		&t.AssignerCode, &t.AssignerFirstName, &t.AssignerLastName,
	)
	return t, err
}

// Create implements task.Repository.
func (r *taskRepository) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			id, title, description, priority, status, assigned_to, assigned_by, due_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newTask.ID,
		newTask.Title,
		newTask.Description,
		newTask.Priority,
		newTask.Status,
		newTask.AssignedTo,
		newTask.AssignedBy,
		newTask.DueDate,
	).Scan(&newTask.CreatedAt, &newTask.UpdatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return newTask, nil
}

// GetByID implements task.Repository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks t` + taskJoins + ` WHERE t.id = $1`

	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task by ID: %w", err)
	}

	return t, nil
}

// Update implements task.Repository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks SET
			title = $1,
			description = $2,
			priority = $3,
			status = $4,
			assigned_to = $5,
			due_date = $6,
			completed_at = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.Priority, t.Status,
		t.AssignedTo, t.DueDate, t.CompletedAt, t.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Delete implements task.Repository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// List implements task.Repository.
func (r *taskRepository) List(ctx context.Context, filter task.ListFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND t.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}
	if filter.AssignedTo != nil && *filter.AssignedTo != "" {
		baseWhere += fmt.Sprintf(" AND t.assigned_to = $%d", argIdx)
		args = append(args, *filter.AssignedTo)
		argIdx++
	}
	if filter.AssignedBy != nil && *filter.AssignedBy != "" {
		baseWhere += fmt.Sprintf(" AND t.assigned_by = $%d", argIdx)
		args = append(args, *filter.AssignedBy)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (t.title ILIKE $%d OR t.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DueDateFrom != nil && *filter.DueDateFrom != "" {
		baseWhere += fmt.Sprintf(" AND t.due_date >= $%d", argIdx)
		args = append(args, *filter.DueDateFrom)
		argIdx++
	}
	if filter.DueDateTo != nil && *filter.DueDateTo != "" {
		baseWhere += fmt.Sprintf(" AND t.due_date <= $%d", argIdx)
		args = append(args, *filter.DueDateTo)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM tasks t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 10
	}
	offset := (filter.Page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT `+taskColumns+`
		FROM tasks t`+taskJoins+`
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListRange implements task.Repository.
func (r *taskRepository) ListRange(ctx context.Context, filter task.RangeFilter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.created_at < ($%d::date + INTERVAL '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.AssignedTo != nil && *filter.AssignedTo != "" {
		baseWhere += fmt.Sprintf(" AND t.assigned_to = $%d", argIdx)
		args = append(args, *filter.AssignedTo)
		argIdx++
	}
	if filter.AssignedBy != nil && *filter.AssignedBy != "" {
		baseWhere += fmt.Sprintf(" AND t.assigned_by = $%d", argIdx)
		args = append(args, *filter.AssignedBy)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND t.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t` + taskJoins + `
		WHERE ` + baseWhere + `
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for range: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]task.Task, error) {
	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
			&t.AssignedTo, &t.AssignedBy, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
			&t.AssigneeCode, &t.AssigneeFirstName, &t.AssigneeLastName, &t.AssigneeDepartment,
			&t.AssignerCode, &t.AssignerFirstName, &t.AssignerLastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
