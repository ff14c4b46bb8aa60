package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// SuperAdminHandler covers the superadmin surface: admin provisioning and
// system-wide stats.
type SuperAdminHandler struct {
	users ports.UserService
	stats ports.StatsService
}

func NewSuperAdminHandler(users ports.UserService, stats ports.StatsService) *SuperAdminHandler {
	return &SuperAdminHandler{users: users, stats: stats}
}

// CreateAdmin provisions a new admin account.
//
// @Summary      Create admin
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Admin details"
// @Success      201   {object}  adminResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/superadmin/newadmin [post]
func (h *SuperAdminHandler) CreateAdmin(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.Invalid(err.Error())
	}

	admin, err := h.users.CreateAdmin(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, adminResponse{
		Message: "admin created successfully",
		Admin:   toPublicUser(admin),
	})
}

// DashboardStats returns system-wide admin, agent and lead counts.
//
// @Summary      Global dashboard stats
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.GlobalStats
// @Router       /api/superadmin/dashboard-stats [get]
func (h *SuperAdminHandler) DashboardStats(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	stats, err := h.stats.GlobalStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
