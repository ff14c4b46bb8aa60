package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// AgentDashboard is the agent's own view: their name plus assigned leads.
type AgentDashboard struct {
	Agent string
	Leads []*domain.Lead
}

// LeadService covers lead listing, status triage and deletion. Admin
// operations are scoped to leads the admin distributed; agent operations
// to leads the agent owns. Out-of-scope ids fail with ErrLeadNotFound.
type LeadService interface {
	ListForAdmin(ctx context.Context, adminID string) ([]*domain.Lead, error)
	// ListForAgent returns one agent's leads, after verifying the agent
	// belongs to the calling admin.
	ListForAgent(ctx context.Context, adminID, agentID string) ([]*domain.Lead, error)
	Dashboard(ctx context.Context, agentID string) (*AgentDashboard, error)
	UpdateStatusAsAdmin(ctx context.Context, adminID, leadID string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateStatusAsAgent(ctx context.Context, agentID, leadID string, status domain.LeadStatus) (*domain.Lead, error)
	DeleteAsAdmin(ctx context.Context, adminID, leadID string) error
}
