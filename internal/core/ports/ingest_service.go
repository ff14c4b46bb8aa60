package ports

import (
	"context"

	"github.com/leadflow/lead-distribution/internal/core/domain"
)

// DistributionResult reports the outcome of one CSV upload.
type DistributionResult struct {
	// Leads are the persisted records, in row order.
	Leads []*domain.Lead
	// Dropped counts rows silently discarded by the row filter.
	Dropped int
}

// IngestService runs the CSV ingestion pipeline and distributes the
// surviving rows across the admin's agent pool.
type IngestService interface {
	// DistributeFile streams the CSV at path, validates headers and rows,
	// assigns rows to the admin's agents round-robin and bulk-inserts the
	// resulting leads. The file at path is removed exactly once before
	// DistributeFile returns, on every exit path.
	DistributeFile(ctx context.Context, adminID, path string) (*DistributionResult, error)
}
