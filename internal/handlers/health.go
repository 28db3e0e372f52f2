package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/services"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Minor projects awaiting review
	var pendingCount int64
	models.GetDB().Model(&models.MinorProject{}).
		Where("status = ?", models.MinorStatusReview).
		Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "fieldops",
		"components": gin.H{
			"database":        dbStatus,
			"queue_mode":      queueMode,
			"pending_reviews": pendingCount,
		},
	})
}
