package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/services"
	"gorm.io/gorm"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(db *gorm.DB, queue services.TaskQueue) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: services.NewParticipantService(db, queue),
	}
}

// Apply records the calling master's application to a minor project
// POST /api/minors/:id/apply
func (h *ParticipantHandler) Apply(c *gin.Context) {
	participant, err := h.participantService.Apply(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrAlreadyApplied):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// ApplyState returns the calling master's state against a minor project
// GET /api/minors/:id/apply-state
func (h *ParticipantHandler) ApplyState(c *gin.Context) {
	state, err := h.participantService.ApplyStateFor(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// Approve approves an application
// POST /api/participants/:id/approve
func (h *ParticipantHandler) Approve(c *gin.Context) {
	participant, err := h.participantService.Approve(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		c.JSON(decisionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}

// Reject rejects an application
// POST /api/participants/:id/reject
func (h *ParticipantHandler) Reject(c *gin.Context) {
	participant, err := h.participantService.Reject(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		c.JSON(decisionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, participant)
}

func decisionErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrIllegalTransition), errors.Is(err, services.ErrUnknownStatus):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
