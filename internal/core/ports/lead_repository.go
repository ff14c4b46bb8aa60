package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// LeadRepository defines persistence operations for leads.
//
// The ownership-scoped methods (UpdateStatusByAgent, UpdateStatusByAdmin,
// DeleteByAdmin) match on both the lead id and the owner id in a single
// filter, so a caller can never touch another tenant's lead; a non-match
// surfaces as domain.ErrLeadNotFound.
type LeadRepository interface {
	// InsertMany persists the batch in one bulk insert. Atomicity is
	// whatever the underlying store guarantees for insert-many; a crash
	// mid-insert can leave a partial batch behind.
	InsertMany(ctx context.Context, leads []*domain.Lead) ([]*domain.Lead, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*domain.Lead, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Lead, error)
	UpdateStatusByAdmin(ctx context.Context, id, adminID string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateStatusByAgent(ctx context.Context, id, agentID string, status domain.LeadStatus) (*domain.Lead, error)
	DeleteByAdmin(ctx context.Context, id, adminID string) error
	CountByAdmin(ctx context.Context, adminID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
