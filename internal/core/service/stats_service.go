package service

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// StatsService computes role-scoped counts. Read-only; every call hits the
// stores directly.
type StatsService struct {
	users ports.UserRepository
	leads ports.LeadRepository
}

func NewStatsService(users ports.UserRepository, leads ports.LeadRepository) *StatsService {
	return &StatsService{users: users, leads: leads}
}

func (s *StatsService) AdminStats(ctx context.Context, adminID string) (*ports.AdminStats, error) {
	agents, err := s.users.CountAgentsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.CountByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &ports.AdminStats{TotalAgents: agents, TotalLeads: leads}, nil
}

func (s *StatsService) GlobalStats(ctx context.Context) (*ports.GlobalStats, error) {
	admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	agents, err := s.users.CountByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.GlobalStats{TotalAdmins: admins, TotalAgents: agents, TotalLeads: leads}, nil
}
