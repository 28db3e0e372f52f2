package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/services"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
}

func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// Trigger runs the schedule reminder pass immediately
// POST /api/reminders/trigger
func (h *ReminderHandler) Trigger(c *gin.Context) {
	if err := h.reminderService.Run(time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reminders sent"})
}
