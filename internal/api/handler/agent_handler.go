package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// AgentHandler covers the agent surface: the agent's own dashboard and
// triage of leads assigned to them.
type AgentHandler struct {
	leads ports.LeadService
}

func NewAgentHandler(leads ports.LeadService) *AgentHandler {
	return &AgentHandler{leads: leads}
}

// Dashboard returns the caller's name and assigned leads.
//
// @Summary      Agent dashboard
// @Tags         agent
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /api/agents/dashboard [get]
func (h *AgentHandler) Dashboard(c echo.Context) error {
	agentID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	dash, err := h.leads.Dashboard(c.Request().Context(), agentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{Agent: dash.Agent, Leads: dash.Leads})
}

// UpdateLeadStatus sets the status of a lead assigned to the caller.
//
// @Summary      Update assigned lead status
// @Tags         agent
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Lead id"
// @Param        body  body      updateLeadStatusRequest  true  "New status"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/agents/lead/{id}/status [patch]
func (h *AgentHandler) UpdateLeadStatus(c echo.Context) error {
	agentID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	lead, err := h.leads.UpdateStatusAsAgent(c.Request().Context(), agentID, c.Param("id"), domain.LeadStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadResponse{Message: "status updated successfully", Lead: lead})
}
