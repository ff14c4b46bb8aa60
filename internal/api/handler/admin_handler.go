package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leadflow/lead-distribution/internal/api/metrics"
	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// AdminHandler covers the admin surface: agent management, CSV upload and
// distribution, lead listing and triage, and admin-scoped stats. Every
// operation is keyed to the calling admin's identity from the JWT.
type AdminHandler struct {
	users     ports.UserService
	leads     ports.LeadService
	ingest    ports.IngestService
	stats     ports.StatsService
	uploadDir string
}

func NewAdminHandler(users ports.UserService, leads ports.LeadService, ingest ports.IngestService, stats ports.StatsService, uploadDir string) *AdminHandler {
	return &AdminHandler{users: users, leads: leads, ingest: ingest, stats: stats, uploadDir: uploadDir}
}

// ListAgents returns the caller's agents.
//
// @Summary      List agents
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  agentListResponse
// @Router       /api/admin/agents [get]
func (h *AdminHandler) ListAgents(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	agents, err := h.users.ListAgents(c.Request().Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agentListResponse{Agents: toPublicUsers(agents)})
}

// CreateAgent creates a new agent under the caller.
//
// @Summary      Create agent
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Agent details"
// @Success      201   {object}  agentResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/newagent [post]
func (h *AdminHandler) CreateAgent(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	agent, err := h.users.CreateAgent(c.Request().Context(), adminID, ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, agentResponse{
		Message: "agent created successfully",
		Agent:   toPublicUser(agent),
	})
}

// UpdateAgent updates an agent's profile fields.
//
// @Summary      Update agent
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Agent id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  agentResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/agents/{id} [put]
func (h *AdminHandler) UpdateAgent(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	agent, err := h.users.UpdateAgent(c.Request().Context(), adminID, c.Param("id"), ports.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, agentResponse{
		Message: "agent updated successfully",
		Agent:   toPublicUser(agent),
	})
}

// DeleteAgent removes an agent. The agent's leads stay in place.
//
// @Summary      Delete agent
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Agent id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/agents/{id} [delete]
func (h *AdminHandler) DeleteAgent(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteAgent(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "agent deleted successfully"})
}

// Upload ingests a CSV (multipart field "file") and distributes its valid
// rows across the caller's agents.
//
// @Summary      Upload and distribute a CSV
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV with headers firstName, phone, email, notes"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admin/upload [post]
func (h *AdminHandler) Upload(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "CSV file required")
	}

	path, err := h.saveUpload(fileHeader)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := h.ingest.DistributeFile(c.Request().Context(), adminID, path)
	metrics.UploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(uploadResult(err)).Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.RowsTotal.WithLabelValues("accepted").Add(float64(len(res.Leads)))
	metrics.RowsTotal.WithLabelValues("dropped").Add(float64(res.Dropped))
	metrics.LeadsDistributedTotal.Add(float64(len(res.Leads)))

	return c.JSON(http.StatusOK, uploadResponse{
		Message:     "CSV uploaded and distributed successfully",
		Distributed: len(res.Leads),
		Dropped:     res.Dropped,
		Uploads:     res.Leads,
	})
}

// saveUpload copies the multipart part to a fresh file under uploadDir.
// The ingest pipeline owns the file from here and removes it.
func (h *AdminHandler) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.CreateTemp(h.uploadDir, "upload-*.csv")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// uploadResult buckets a pipeline failure for the uploads counter.
func uploadResult(err error) string {
	var ihe *domain.InvalidHeadersError
	switch {
	case errors.As(err, &ihe),
		errors.Is(err, domain.ErrNoValidRows),
		errors.Is(err, domain.ErrNoAgentsAvailable):
		return "rejected"
	default:
		return "error"
	}
}

// ListUploads returns every lead the caller has distributed.
//
// @Summary      List distributed leads
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  leadListResponse
// @Router       /api/admin/uploads [get]
func (h *AdminHandler) ListUploads(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	leads, err := h.leads.ListForAdmin(c.Request().Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadListResponse{Uploads: leads})
}

// ListAgentUploads returns the leads assigned to one of the caller's agents.
//
// @Summary      List one agent's leads
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Agent id"
// @Success      200  {object}  agentLeadsResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/uploads/agent/{id} [get]
func (h *AdminHandler) ListAgentUploads(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	leads, err := h.leads.ListForAgent(c.Request().Context(), adminID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agentLeadsResponse{Entries: leads})
}

// UpdateLeadStatus sets the status of a lead the caller distributed.
//
// @Summary      Update lead status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Lead id"
// @Param        body  body      updateLeadStatusRequest  true  "New status"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/uploads/{id}/status [put]
func (h *AdminHandler) UpdateLeadStatus(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
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

	lead, err := h.leads.UpdateStatusAsAdmin(c.Request().Context(), adminID, c.Param("id"), domain.LeadStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadResponse{Message: "status updated successfully", Lead: lead})
}

// DeleteUpload removes a single lead the caller distributed.
//
// @Summary      Delete a lead
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Lead id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/uploads/{id} [delete]
func (h *AdminHandler) DeleteUpload(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.leads.DeleteAsAdmin(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "lead deleted successfully"})
}

// Stats returns the caller's agent and lead counts.
//
// @Summary      Admin dashboard stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.AdminStats(c.Request().Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
