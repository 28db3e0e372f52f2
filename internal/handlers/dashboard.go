package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/services"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db, nil),
	}
}

// GetDashboard returns the role-scoped dashboard payload. Admin roles may
// pass view_as to preview another role's rendering.
// GET /api/dashboard?view_as=master
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboardService.BuildDashboard(
		c.Request.Context(),
		middleware.GetRole(c),
		c.Query("view_as"),
		middleware.GetUserID(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
