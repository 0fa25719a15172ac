package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/orbai/attendance-backend-go/internal/domain/user"
)

type userRepository struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func NewUserRepository() user.UserRepository {
	return &userRepository{users: make(map[string]*user.User)}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := newUser
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return stored, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return *u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ExistsByEmailOrCode implements user.UserRepository.
func (r *userRepository) ExistsByEmailOrCode(ctx context.Context, email, employeeCode string) (bool, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var emailTaken, codeTaken bool
	for _, u := range r.users {
		if u.Email == email {
			emailTaken = true
		}
		if u.EmployeeCode == employeeCode {
			codeTaken = true
		}
	}
	return emailTaken, codeTaken, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, updated user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[updated.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	updated.PasswordHash = existing.PasswordHash
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.users[updated.ID] = &updated
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []user.User
	for _, u := range r.users {
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Email + " " + u.EmployeeCode)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if filter.Department != nil && *filter.Department != "" {
			if u.Department == nil || *u.Department != *filter.Department {
				continue
			}
		}
		if filter.Role != nil && *filter.Role != "" && string(u.Role) != *filter.Role {
			continue
		}
		matched = append(matched, *u)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit, 10), total, nil
}
