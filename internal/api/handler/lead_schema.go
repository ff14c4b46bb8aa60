package handler

import "github.com/leadflow/lead-distribution/internal/core/domain"

type updateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type leadListResponse struct {
	Uploads []*domain.Lead `json:"uploads"`
}

type agentLeadsResponse struct {
	Entries []*domain.Lead `json:"entries"`
}

type leadResponse struct {
	Message string       `json:"message"`
	Lead    *domain.Lead `json:"lead,omitempty"`
}

type uploadResponse struct {
	Message     string         `json:"message"`
	Distributed int            `json:"distributed"`
	Dropped     int            `json:"dropped"`
	Uploads     []*domain.Lead `json:"uploads"`
}

type dashboardResponse struct {
	Agent string         `json:"agent"`
	Leads []*domain.Lead `json:"leads"`
}
