package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orbai/attendance-backend-go/internal/domain/auth"
	"github.com/orbai/attendance-backend-go/internal/domain/user"
	"github.com/orbai/attendance-backend-go/internal/pkg/database"
	"github.com/orbai/attendance-backend-go/internal/pkg/jwt"
	"github.com/orbai/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
	tx         database.Transactor
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, tx database.Transactor) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		tx:         tx,
	}
}

// Login implements auth.AuthService. Inactive accounts fail with the same
// error as wrong credentials so login probing cannot distinguish them.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(u),
	}, nil
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = user.RoleEmployee
	}

	newUser := user.User{
		ID:           uuid.NewString(),
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   req.Department,
		Position:     req.Position,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     true,
	}
	if req.HireDate != nil && *req.HireDate != "" {
		hireDate, _ := validator.IsValidDate(*req.HireDate)
		newUser.HireDate = &hireDate
	}

	// Uniqueness check and insert run in one transaction so two concurrent
	// registrations cannot both pass the check.
	var created user.User
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emailTaken, codeTaken, err := s.userRepo.ExistsByEmailOrCode(txCtx, req.Email, req.EmployeeCode)
		if err != nil {
			return fmt.Errorf("failed to check existing users: %w", err)
		}
		if emailTaken {
			return user.ErrEmailExists
		}
		if codeTaken {
			return user.ErrEmployeeCodeExists
		}

		created, err = s.userRepo.Create(txCtx, newUser)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return ToUserResponse(created), nil
}

// ChangePassword implements auth.AuthService.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// Logout implements auth.AuthService. Revocation is checked by the auth
// middleware on every request until the token would have expired anyway.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(token)
	return nil
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return ToUserResponse(u), nil
}

// ToUserResponse maps a user entity to its API shape. Shared with the user
// service so both layers render users identically.
func ToUserResponse(u user.User) user.UserResponse {
	resp := user.UserResponse{
		ID:           u.ID,
		EmployeeCode: u.EmployeeCode,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Department:   u.Department,
		Position:     u.Position,
		Phone:        u.Phone,
		Address:      u.Address,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.HireDate != nil {
		hireDate := u.HireDate.Format("2006-01-02")
		resp.HireDate = &hireDate
	}
	return resp
}
