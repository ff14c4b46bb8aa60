package ports

import "context"

// AdminStats are the counts visible to one admin.
type AdminStats struct {
	TotalAgents int64 `json:"totalAgents"`
	TotalLeads  int64 `json:"totalLeads"`
}

// GlobalStats are the system-wide counts visible to the superadmin.
type GlobalStats struct {
	TotalAdmins int64 `json:"totalAdmins"`
	TotalAgents int64 `json:"totalAgents"`
	TotalLeads  int64 `json:"totalLeads"`
}

// StatsService recomputes counts from the stores on every call; there is
// no caching layer.
type StatsService interface {
	AdminStats(ctx context.Context, adminID string) (*AdminStats, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
}
