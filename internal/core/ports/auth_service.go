package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// SignupInput carries a self-service registration request. Role may be
// empty; the service applies its allow-list and defaults.
type SignupInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Role     string
}

// AuthService implements login and self-service signup.
type AuthService interface {
	// Login verifies credentials and returns a signed session token plus
	// the user's public profile. Unknown email and wrong password both
	// fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
}
