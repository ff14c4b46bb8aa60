package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// LeadService covers lead listing and status triage. All repository calls
// carry the caller's identity in the filter, so ownership checks fail
// closed as ErrLeadNotFound.
type LeadService struct {
	users ports.UserRepository
	leads ports.LeadRepository
	log   zerolog.Logger
}

func NewLeadService(users ports.UserRepository, leads ports.LeadRepository, log zerolog.Logger) *LeadService {
	return &LeadService{users: users, leads: leads, log: log}
}

func (s *LeadService) ListForAdmin(ctx context.Context, adminID string) ([]*domain.Lead, error) {
	return s.leads.ListByAdmin(ctx, adminID)
}

func (s *LeadService) ListForAgent(ctx context.Context, adminID, agentID string) ([]*domain.Lead, error) {
	agent, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != domain.RoleAgent || agent.CreatedBy != adminID {
		return nil, domain.ErrUserNotFound
	}
	return s.leads.ListByAgent(ctx, agentID)
}

func (s *LeadService) Dashboard(ctx context.Context, agentID string) (*ports.AgentDashboard, error) {
	agent, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	leads, err := s.leads.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return &ports.AgentDashboard{Agent: agent.Name, Leads: leads}, nil
}

func (s *LeadService) UpdateStatusAsAdmin(ctx context.Context, adminID, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	if !domain.ValidLeadStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.leads.UpdateStatusByAdmin(ctx, leadID, adminID, status)
}

func (s *LeadService) UpdateStatusAsAgent(ctx context.Context, agentID, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	if !domain.ValidLeadStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.leads.UpdateStatusByAgent(ctx, leadID, agentID, status)
}

func (s *LeadService) DeleteAsAdmin(ctx context.Context, adminID, leadID string) error {
	if err := s.leads.DeleteByAdmin(ctx, leadID, adminID); err != nil {
		return err
	}
	s.log.Info().Str("lead_id", leadID).Str("admin_id", adminID).Msg("lead deleted")
	return nil
}
