package handler

import (
	"net/http"

	"transio/internal/middleware"
	"transio/internal/service"
	"transio/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard", middleware.RequireAuth(), h.GetDashboard)
}

// GetDashboard returns the aggregated dashboard: counters, vehicle pacing,
// driver presence and alerts
// @Summary      Dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        refresh  query  int  false  "Pass 1 to bypass the cache"
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	refresh := c.Query("refresh") == "1"

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
