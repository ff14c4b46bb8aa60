package domain

import (
	"errors"
	"time"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleAgent      = "agent"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleSuperAdmin || s == RoleAdmin || s == RoleAgent
}

// User models an authenticated actor: a superadmin, an admin, or an agent.
// CreatedBy links an agent back to the admin that created it; it is empty
// for admins and the superadmin.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
