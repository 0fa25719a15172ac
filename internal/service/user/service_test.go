package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/domain/user"
	"github.com/orbai/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*UserServiceImpl, user.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	return NewUserService(repo), repo
}

func seedUser(t *testing.T, repo user.UserRepository, code, firstName, email string, role user.Role, department *string) user.User {
	t.Helper()
	created, err := repo.Create(context.Background(), user.User{
		ID:           uuid.NewString(),
		EmployeeCode: code,
		FirstName:    firstName,
		LastName:     "Tanaka",
		Email:        email,
		Role:         role,
		Department:   department,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func TestList_FiltersByRoleAndDepartment(t *testing.T) {
	svc, repo := newTestService(t)
	eng := strPtr("Engineering")
	ops := strPtr("Operations")
	seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, eng)
	seedUser(t, repo, "EMP002", "Budi", "budi@orbai.test", user.RoleManager, eng)
	seedUser(t, repo, "EMP003", "Citra", "citra@orbai.test", user.RoleEmployee, ops)

	result, err := svc.List(context.Background(), user.ListFilter{
		Role:       strPtr("employee"),
		Department: eng,
	})
	require.NoError(t, err)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "EMP001", result.Users[0].EmployeeCode)
	assert.Equal(t, int64(1), result.TotalCount)
}

func TestList_SearchMatchesNameEmailAndCode(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, nil)
	seedUser(t, repo, "EMP002", "Budi", "budi@orbai.test", user.RoleEmployee, nil)

	result, err := svc.List(context.Background(), user.ListFilter{Search: strPtr("budi")})
	require.NoError(t, err)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "Budi", result.Users[0].FirstName)
}

func TestList_DefaultsPageAndLimit(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, nil)

	result, err := svc.List(context.Background(), user.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
}

func TestList_InvalidRoleRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), user.ListFilter{Role: strPtr("superuser")})
	assert.Error(t, err)
}

func TestGet_UnknownUserFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdate_PartialFieldsLeaveRestUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, strPtr("Engineering"))

	updated, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:        seeded.ID,
		FirstName: strPtr("Akiko"),
		Position:  strPtr("Senior Engineer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Akiko", updated.FirstName)
	require.NotNil(t, updated.Position)
	assert.Equal(t, "Senior Engineer", *updated.Position)

	assert.Equal(t, "Tanaka", updated.LastName)
	assert.Equal(t, "aiko@orbai.test", updated.Email)
	assert.Equal(t, user.RoleEmployee, updated.Role)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Engineering", *updated.Department)
}

func TestUpdate_EmailChangeToTakenEmailFails(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, nil)
	seedUser(t, repo, "EMP002", "Budi", "budi@orbai.test", user.RoleEmployee, nil)

	_, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:    seeded.ID,
		Email: strPtr("budi@orbai.test"),
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUpdate_SameEmailSkipsUniquenessCheck(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, nil)

	updated, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:    seeded.ID,
		Email: strPtr("aiko@orbai.test"),
	})
	require.NoError(t, err)
	assert.Equal(t, "aiko@orbai.test", updated.Email)
}

func TestUpdate_UnknownUserFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:        uuid.NewString(),
		FirstName: strPtr("Nobody"),
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDelete_RemovesUser(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "EMP001", "Aiko", "aiko@orbai.test", user.RoleEmployee, nil)

	require.NoError(t, svc.Delete(context.Background(), seeded.ID))

	_, err := svc.Get(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDelete_UnknownUserFails(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.NewString()), user.ErrUserNotFound)
}
