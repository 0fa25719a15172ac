package auth

import (
	"context"
	"testing"

	"github.com/orbai/attendance-backend-go/internal/domain/auth"
	"github.com/orbai/attendance-backend-go/internal/domain/user"
	"github.com/orbai/attendance-backend-go/internal/pkg/jwt"
	"github.com/orbai/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

func newTestAuthService(t *testing.T) (*AuthServiceImpl, user.UserRepository) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(userRepo, jwtService, memory.NewTxManager()), userRepo
}

func registerTestUser(t *testing.T, svc *AuthServiceImpl, email string) user.UserResponse {
	t.Helper()
	created, err := svc.Register(context.Background(), user.CreateUserRequest{
		EmployeeCode: "EMP100",
		FirstName:    "Maya",
		LastName:     "Chen",
		Email:        email,
		Password:     "password123",
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)
	return created
}

func TestRegisterAndLogin_Succeeds(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registered := registerTestUser(t, svc, "maya@example.com")
	assert.True(t, registered.IsActive)

	result, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maya@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, registered.ID, result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerTestUser(t, svc, "maya@example.com")

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maya@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccountRejected(t *testing.T) {
	svc, userRepo := newTestAuthService(t)
	registered := registerTestUser(t, svc, "maya@example.com")

	stored, err := userRepo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, userRepo.Update(context.Background(), stored))

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maya@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerTestUser(t, svc, "maya@example.com")

	_, err := svc.Register(context.Background(), user.CreateUserRequest{
		EmployeeCode: "EMP101",
		FirstName:    "Jordan",
		LastName:     "Lee",
		Email:        "maya@example.com",
		Password:     "password123",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegister_DuplicateEmployeeCodeRejected(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registerTestUser(t, svc, "maya@example.com")

	_, err := svc.Register(context.Background(), user.CreateUserRequest{
		EmployeeCode: "EMP100",
		FirstName:    "Jordan",
		LastName:     "Lee",
		Email:        "jordan@example.com",
		Password:     "password123",
	})
	assert.ErrorIs(t, err, user.ErrEmployeeCodeExists)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), user.CreateUserRequest{
		EmployeeCode: "EMP100",
		FirstName:    "Maya",
		LastName:     "Chen",
		Email:        "maya@example.com",
		Password:     "short",
	})
	assert.Error(t, err)
}

func TestChangePassword_RotatesCredential(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registered := registerTestUser(t, svc, "maya@example.com")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, registered.ID, auth.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, auth.ErrWrongPassword)

	err = svc.ChangePassword(ctx, registered.ID, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "maya@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "maya@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestLogout_RevokesToken(t *testing.T) {
	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	svc := NewAuthService(userRepo, jwtService, memory.NewTxManager())

	registerTestUser(t, svc, "maya@example.com")
	result, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maya@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.False(t, jwtService.IsTokenRevoked(result.Token))
	require.NoError(t, svc.Logout(context.Background(), result.Token))
	assert.True(t, jwtService.IsTokenRevoked(result.Token))
}

func TestLogout_EmptyTokenRejected(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMe_ReturnsProfile(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registered := registerTestUser(t, svc, "maya@example.com")

	result, err := svc.Me(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "maya@example.com", result.Email)
	assert.Equal(t, user.RoleEmployee, result.Role)
}
