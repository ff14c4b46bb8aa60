package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// LoginThrottle abstracts the brute-force guard (Redis). A nil throttle
// disables throttling entirely.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements login and self-service signup.
type AuthService struct {
	users     ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password take the same exit so the response never reveals whether
// the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.Invalid("email and password are required")
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			// Fail open: a throttle outage must never lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle check failed")
		} else if blocked {
			s.log.Info().Str("email", email).Msg("login throttled")
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return token, user, nil
}

// Signup creates a self-registered account. The requested role is checked
// against an allow-list: unauthenticated signup can only create agent
// accounts; admins come from the superadmin endpoint.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleAgent
	}
	if role != domain.RoleAgent {
		return nil, domain.Invalid("role not allowed at signup")
	}

	if err := validateUserFields(in.Name, in.Email, in.Mobile, in.Password); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Mobile, in.Password, role, "")
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("signup")
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, mobile, password, role, createdBy string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Mobile:       mobile,
		PasswordHash: string(hash),
		Role:         role,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateUserFields enforces the shared field rules for every user
// creation path: signup, agent creation and admin creation.
func validateUserFields(name, email, mobile, password string) error {
	if name == "" || email == "" || mobile == "" || password == "" {
		return domain.Invalid("all fields are required")
	}
	if len(strings.TrimSpace(name)) < 3 {
		return domain.Invalid("name must be at least 3 characters long")
	}
	if !domain.ValidEmail(email) {
		return domain.Invalid("invalid email format")
	}
	if !domain.ValidMobile(mobile) {
		return domain.Invalid("mobile number must be 10 digits")
	}
	if len(password) < 6 {
		return domain.Invalid("password must be at least 6 characters long")
	}
	return nil
}
