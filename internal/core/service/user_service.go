package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// UserService covers agent management and admin creation. Agent operations
// are tenant-scoped: an agent created by another admin is treated as
// nonexistent rather than forbidden, so ids cannot be probed across tenants.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) CreateAgent(ctx context.Context, adminID string, in ports.CreateUserInput) (*domain.User, error) {
	agent, err := s.create(ctx, in, domain.RoleAgent, adminID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("agent_id", agent.ID).Str("admin_id", adminID).Msg("agent created")
	return agent, nil
}

func (s *UserService) ListAgents(ctx context.Context, adminID string) ([]*domain.User, error) {
	return s.users.ListAgentsByAdmin(ctx, adminID)
}

func (s *UserService) UpdateAgent(ctx context.Context, adminID, agentID string, in ports.UpdateUserInput) (*domain.User, error) {
	if _, err := s.ownedAgent(ctx, adminID, agentID); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(in.Name)) < 3 {
		return nil, domain.Invalid("name must be at least 3 characters long")
	}
	if !domain.ValidEmail(in.Email) {
		return nil, domain.Invalid("invalid email format")
	}
	if !domain.ValidMobile(in.Mobile) {
		return nil, domain.Invalid("mobile number must be 10 digits")
	}
	return s.users.UpdateProfile(ctx, agentID, strings.TrimSpace(in.Name), in.Email, in.Mobile)
}

func (s *UserService) DeleteAgent(ctx context.Context, adminID, agentID string) error {
	if _, err := s.ownedAgent(ctx, adminID, agentID); err != nil {
		return err
	}
	// Leads assigned to the agent are intentionally left in place.
	if err := s.users.Delete(ctx, agentID); err != nil {
		return err
	}
	s.log.Info().Str("agent_id", agentID).Str("admin_id", adminID).Msg("agent deleted")
	return nil
}

func (s *UserService) CreateAdmin(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	admin, err := s.create(ctx, in, domain.RoleAdmin, "")
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("admin_id", admin.ID).Msg("admin created")
	return admin, nil
}

// ownedAgent resolves agentID and verifies it is an agent created by
// adminID. Any mismatch fails closed with ErrUserNotFound.
func (s *UserService) ownedAgent(ctx context.Context, adminID, agentID string) (*domain.User, error) {
	agent, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != domain.RoleAgent || agent.CreatedBy != adminID {
		return nil, domain.ErrUserNotFound
	}
	return agent, nil
}

func (s *UserService) create(ctx context.Context, in ports.CreateUserInput, role, createdBy string) (*domain.User, error) {
	if err := validateUserFields(in.Name, in.Email, in.Mobile, in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: string(hash),
		Role:         role,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
