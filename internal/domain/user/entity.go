package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, can amend attendance records
	RoleManager  Role = "manager"  // Can view team records and reports
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	Department   *string
	Position     *string
	Phone        *string
	Address      *string
	HireDate     *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user can amend records and manage users
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if the user is a manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
