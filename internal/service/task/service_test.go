package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/domain/task"
	"github.com/orbai/attendance-backend-go/internal/domain/user"
	"github.com/orbai/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskTestEnv struct {
	svc        *TaskServiceImpl
	managerID  string
	employeeID string
}

func newTaskTestEnv(t *testing.T) *taskTestEnv {
	t.Helper()
	userRepo := memory.NewUserRepository()
	svc := NewTaskService(memory.NewTaskRepository(), userRepo)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }

	manager, err := userRepo.Create(context.Background(), user.User{
		ID: uuid.NewString(), EmployeeCode: "EMP001", FirstName: "Maya", LastName: "Chen",
		Email: "maya@example.com", Role: user.RoleManager, IsActive: true,
	})
	require.NoError(t, err)

	employee, err := userRepo.Create(context.Background(), user.User{
		ID: uuid.NewString(), EmployeeCode: "EMP002", FirstName: "Jordan", LastName: "Lee",
		Email: "jordan@example.com", Role: user.RoleEmployee, IsActive: true,
	})
	require.NoError(t, err)

	return &taskTestEnv{svc: svc, managerID: manager.ID, employeeID: employee.ID}
}

func (env *taskTestEnv) createTask(t *testing.T) task.TaskResponse {
	t.Helper()
	created, err := env.svc.Create(context.Background(), env.managerID, task.CreateTaskRequest{
		Title:      "Prepare demo environment",
		Priority:   task.PriorityHigh,
		AssignedTo: env.employeeID,
	})
	require.NoError(t, err)
	return created
}

func TestCreateTask_DefaultsToPendingMediumPriority(t *testing.T) {
	env := newTaskTestEnv(t)

	created, err := env.svc.Create(context.Background(), env.managerID, task.CreateTaskRequest{
		Title:      "Write release notes",
		AssignedTo: env.employeeID,
	})
	require.NoError(t, err)

	assert.Equal(t, task.StatusPending, created.Status)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	assert.Equal(t, env.managerID, created.AssignedBy)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateTask_UnknownAssigneeRejected(t *testing.T) {
	env := newTaskTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.managerID, task.CreateTaskRequest{
		Title:      "Write release notes",
		AssignedTo: uuid.NewString(),
	})
	assert.ErrorIs(t, err, task.ErrAssigneeNotFound)
}

func TestCreateTask_ShortTitleRejected(t *testing.T) {
	env := newTaskTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.managerID, task.CreateTaskRequest{
		Title:      "ab",
		AssignedTo: env.employeeID,
	})
	assert.Error(t, err)
}

func TestUpdateTask_CompletedAtFollowsStatusTransitions(t *testing.T) {
	env := newTaskTestEnv(t)
	created := env.createTask(t)
	ctx := context.Background()

	completed := task.StatusCompleted
	updated, err := env.svc.Update(ctx, "", task.UpdateTaskRequest{ID: created.ID, Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	// Moving away from completed clears the stamp.
	inProgress := task.StatusInProgress
	updated, err = env.svc.Update(ctx, "", task.UpdateTaskRequest{ID: created.ID, Status: &inProgress})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateTask_AssigneeRestrictionEnforced(t *testing.T) {
	env := newTaskTestEnv(t)
	created := env.createTask(t)
	ctx := context.Background()

	inProgress := task.StatusInProgress

	// Someone else's employee request is refused.
	_, err := env.svc.Update(ctx, uuid.NewString(), task.UpdateTaskRequest{ID: created.ID, Status: &inProgress})
	assert.ErrorIs(t, err, task.ErrNotTaskAssignee)

	// The assignee may update their own task.
	updated, err := env.svc.Update(ctx, env.employeeID, task.UpdateTaskRequest{ID: created.ID, Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, updated.Status)

	// Empty requester means manager/admin scope.
	cancelled := task.StatusCancelled
	updated, err = env.svc.Update(ctx, "", task.UpdateTaskRequest{ID: created.ID, Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, task.StatusCancelled, updated.Status)
}

func TestUpdateTask_ClearsDueDate(t *testing.T) {
	env := newTaskTestEnv(t)
	ctx := context.Background()

	due := "2026-03-20"
	created, err := env.svc.Create(ctx, env.managerID, task.CreateTaskRequest{
		Title:      "Prepare demo environment",
		AssignedTo: env.employeeID,
		DueDate:    &due,
	})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)

	empty := ""
	updated, err := env.svc.Update(ctx, "", task.UpdateTaskRequest{ID: created.ID, DueDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestListTasks_FiltersByStatus(t *testing.T) {
	env := newTaskTestEnv(t)
	ctx := context.Background()

	first := env.createTask(t)
	env.createTask(t)

	completed := task.StatusCompleted
	_, err := env.svc.Update(ctx, "", task.UpdateTaskRequest{ID: first.ID, Status: &completed})
	require.NoError(t, err)

	statusFilter := string(task.StatusCompleted)
	result, err := env.svc.List(ctx, task.ListFilter{Status: &statusFilter})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalCount)
	assert.Equal(t, first.ID, result.Tasks[0].ID)
}

func TestDeleteTask_UnknownTaskFails(t *testing.T) {
	env := newTaskTestEnv(t)

	err := env.svc.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}
