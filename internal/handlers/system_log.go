package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/services"
	"github.com/sweeply/fieldops/pkg/response"
	"gorm.io/gorm"
)

type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{
		systemLogService: services.NewSystemLogService(db),
	}
}

// List returns system logs with filtering
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.systemLogService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// GetModules returns the distinct module names present in the logs
// GET /api/system-logs/modules
func (h *SystemLogHandler) GetModules(c *gin.Context) {
	modules, err := h.systemLogService.GetModules()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"modules": modules})
}

// Cleanup deletes logs older than the given number of days
// POST /api/system-logs/cleanup?days=30
func (h *SystemLogHandler) Cleanup(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		response.BadRequest(c, "invalid days parameter")
		return
	}

	deleted, err := h.systemLogService.CleanupOldLogs(days)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}
