package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListAgentsByAdmin returns the agents created by the given admin,
	// sorted by id ascending so round-robin assignment is deterministic.
	ListAgentsByAdmin(ctx context.Context, adminID string) ([]*domain.User, error)
	// UpdateProfile sets name, email and mobile. The password hash and role
	// are immutable through this path.
	UpdateProfile(ctx context.Context, id, name, email, mobile string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
	CountAgentsByAdmin(ctx context.Context, adminID string) (int64, error)
}
