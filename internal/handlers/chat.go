package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/services"
	"gorm.io/gorm"
)

type ChatHandler struct {
	db          *gorm.DB
	chatService *services.ChatService
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{
		db:          db,
		chatService: services.NewChatService(db, nil),
	}
}

// List returns the caller's chat list with unread counts
// GET /api/chats
func (h *ChatHandler) List(c *gin.Context) {
	entries, err := h.chatService.List(c.Request.Context(), middleware.GetRole(c), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Send posts a message to a minor project's thread
// POST /api/minors/:id/messages
func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var minor models.MinorProject
	if err := h.db.First(&minor, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	message := models.ChatMessage{
		MinorProjectID: minor.ID,
		SenderID:       middleware.GetUserID(c),
		Message:        req.Message,
	}
	if err := h.db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// Messages returns a thread's messages, oldest first
// GET /api/minors/:id/messages
func (h *ChatHandler) Messages(c *gin.Context) {
	var messages []models.ChatMessage
	if err := h.db.Preload("Sender").
		Where("minor_project_id = ?", c.Param("id")).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": messages})
}
