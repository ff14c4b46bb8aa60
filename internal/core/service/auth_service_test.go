package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

type stubThrottle struct {
	blocked  bool
	checkErr error
	failures []string
	resets   []string
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	return t.blocked, t.checkErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures = append(t.failures, email)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	return nil
}

func newAuthSvc(repo *stubUserRepo, throttle LoginThrottle) *AuthService {
	return NewAuthService(repo, throttle, "secret", time.Hour, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, name, email, password, role, createdBy string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		Mobile:       "5550001111",
		PasswordHash: string(hash),
		Role:         role,
		CreatedBy:    createdBy,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Carol", "carol@example.com", "s3cret", domain.RoleAdmin, "")
	svc := newAuthSvc(repo, nil)

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestAuthService_Login_NoUserEnumeration(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Dave", "dave@example.com", "goodpass", domain.RoleAgent, "")
	svc := newAuthSvc(repo, nil)

	_, _, badPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(badPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", badPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", noUser)
	}
	if badPass.Error() != noUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", badPass.Error(), noUser.Error())
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Erin", "erin@example.com", "s3cret", domain.RoleAdmin, "")
	throttle := &stubThrottle{blocked: true}
	svc := newAuthSvc(repo, throttle)

	if _, _, err := svc.Login(context.Background(), "erin@example.com", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials when throttled, got %v", err)
	}
}

func TestAuthService_Login_ThrottleFailOpen(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Finn", "finn@example.com", "s3cret", domain.RoleAdmin, "")
	throttle := &stubThrottle{checkErr: errors.New("redis down")}
	svc := newAuthSvc(repo, throttle)

	if _, _, err := svc.Login(context.Background(), "finn@example.com", "s3cret"); err != nil {
		t.Fatalf("expected throttle outage to fail open, got %v", err)
	}
	if len(throttle.resets) != 1 {
		t.Fatalf("expected throttle reset after successful login, got %d", len(throttle.resets))
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Gail", "gail@example.com", "goodpass", domain.RoleAgent, "")
	throttle := &stubThrottle{}
	svc := newAuthSvc(repo, throttle)

	_, _, _ = svc.Login(context.Background(), "gail@example.com", "badpass")
	_, _, _ = svc.Login(context.Background(), "ghost@example.com", "badpass")

	if len(throttle.failures) != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", len(throttle.failures))
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:     "Alice Agent",
		Email:    "alice@example.com",
		Mobile:   "1234567890",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Role != domain.RoleAgent {
		t.Fatalf("expected default role agent, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

// Self-service signup must not mint privileged accounts.
func TestAuthService_Signup_RoleAllowList(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	for _, role := range []string{domain.RoleAdmin, domain.RoleSuperAdmin, "owner"} {
		_, err := svc.Signup(context.Background(), ports.SignupInput{
			Name:     "Mallory",
			Email:    "mallory@example.com",
			Mobile:   "1234567890",
			Password: "pass123",
			Role:     role,
		})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("role %q: expected ValidationError, got %v", role, err)
		}
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	cases := []struct {
		name string
		in   ports.SignupInput
	}{
		{"missing fields", ports.SignupInput{Name: "Al"}},
		{"short name", ports.SignupInput{Name: " Al ", Email: "al@x.com", Mobile: "1234567890", Password: "pass123"}},
		{"bad email", ports.SignupInput{Name: "Alice", Email: "not-an-email", Mobile: "1234567890", Password: "pass123"}},
		{"bad mobile", ports.SignupInput{Name: "Alice", Email: "al@x.com", Mobile: "12345", Password: "pass123"}},
		{"short password", ports.SignupInput{Name: "Alice", Email: "al@x.com", Mobile: "1234567890", Password: "abc"}},
	}
	for _, tc := range cases {
		_, err := svc.Signup(context.Background(), tc.in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, nil)

	in := ports.SignupInput{Name: "Alice", Email: "alice@example.com", Mobile: "1234567890", Password: "pass123"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
