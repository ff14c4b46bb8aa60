package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LeadStatus represents the triage state of a lead.
type LeadStatus string

const (
	StatusPending   LeadStatus = "pending"
	StatusActive    LeadStatus = "active"
	StatusInactive  LeadStatus = "inactive"
	StatusCompleted LeadStatus = "completed"
)

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusCompleted:
		return true
	}
	return false
}

var ErrLeadNotFound = errors.New("lead not found")
var ErrInvalidStatus = errors.New("invalid status")
var ErrNoAgentsAvailable = errors.New("no agents available")
var ErrNoValidRows = errors.New("no valid rows in CSV")
var ErrStreamRead = errors.New("CSV parsing error")

// InvalidHeadersError is returned when the uploaded CSV is missing one or
// more of the required header columns. The pipeline aborts before reading
// any data row.
type InvalidHeadersError struct {
	Missing []string
}

func (e *InvalidHeadersError) Error() string {
	return fmt.Sprintf("invalid CSV format, missing headers: %s", strings.Join(e.Missing, ", "))
}

// Lead is one distributed contact record. AgentID is the owning agent and
// AdminID the admin whose upload produced it.
type Lead struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agent_id"`
	AdminID   string     `json:"admin_id"`
	FirstName string     `json:"first_name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
