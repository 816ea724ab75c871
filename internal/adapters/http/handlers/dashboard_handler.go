package handlers

import (
	"chamalink/internal/core/services"
	"chamalink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns group-wide summary figures
// @Summary Dashboard statistics
// @Description Membership, contribution, loan and deadline summary
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve dashboard statistics")
	}

	return response.Success(c, "Dashboard statistics retrieved successfully", stats)
}

// Deadlines lists upcoming contribution deadlines
// @Summary Upcoming deadlines
// @Description Members with the soonest contribution deadlines, flagged by priority
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/deadlines [get]
func (h *DashboardHandler) Deadlines(c *fiber.Ctx) error {
	deadlines, err := h.dashboardService.GetDeadlines(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve deadlines")
	}

	return response.SuccessList(c, "Deadlines retrieved successfully", deadlines, len(deadlines))
}

// Activity returns recent payments and loan applications
// @Summary Recent activity
// @Description Latest contribution payments and loan applications
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	activity, err := h.dashboardService.GetActivity(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve recent activity")
	}

	return response.Success(c, "Recent activity retrieved successfully", activity)
}
