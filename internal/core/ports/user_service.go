package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// CreateUserInput carries the fields for creating an admin or an agent.
type CreateUserInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// UpdateUserInput carries the mutable profile fields. Password is
// immutable post-creation.
type UpdateUserInput struct {
	Name   string
	Email  string
	Mobile string
}

// UserService covers agent management (admin-scoped) and admin creation
// (superadmin only). Every agent operation is scoped to the calling
// admin: agents created by another admin behave as if they do not exist.
type UserService interface {
	CreateAgent(ctx context.Context, adminID string, in CreateUserInput) (*domain.User, error)
	ListAgents(ctx context.Context, adminID string) ([]*domain.User, error)
	UpdateAgent(ctx context.Context, adminID, agentID string, in UpdateUserInput) (*domain.User, error)
	DeleteAgent(ctx context.Context, adminID, agentID string) error
	CreateAdmin(ctx context.Context, in CreateUserInput) (*domain.User, error)
}
