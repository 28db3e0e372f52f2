package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/services"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// GetSchedule returns the caller's visible schedule items grouped by date,
// with the dot color derived per date for calendar rendering.
// GET /api/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var majors []models.MajorProject
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Minors.Participants").
		Find(&majors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	visible := services.VisibleMajors(middleware.GetRole(c), middleware.GetUserID(c), majors)
	items := services.BuildScheduleItems(visible)
	grouped := services.GroupByDate(items)

	dots := make(map[string]string, len(grouped))
	for date, dayItems := range grouped {
		dots[date] = services.DotColor(dayItems)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"by_date": grouped,
		"dots":    dots,
	})
}
