package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/services"
	"github.com/sweeply/fieldops/pkg/response"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		notificationService: services.NewNotificationService(db),
	}
}

// List returns the caller's notifications, newest first
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationService.ListForUser(middleware.GetUserID(c), limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"items": notifications})
}

// UnreadCount returns the caller's unread notification count
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkRead(c.Param("id"), middleware.GetUserID(c)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, nil)
}
