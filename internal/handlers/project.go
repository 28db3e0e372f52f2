package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/services"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB, queue services.TaskQueue) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db, queue),
	}
}

// ListMajors returns major projects visible to the caller
// GET /api/projects
func (h *ProjectHandler) ListMajors(c *gin.Context) {
	var req services.MajorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.projectService.ListMajors(middleware.GetRole(c), middleware.GetUserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMajor returns one major project with its minor projects
// GET /api/projects/:id
func (h *ProjectHandler) GetMajor(c *gin.Context) {
	major, err := h.projectService.GetMajor(middleware.GetRole(c), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, major)
}

// CreateMajor creates a major project in draft state
// POST /api/projects
func (h *ProjectHandler) CreateMajor(c *gin.Context) {
	var req services.CreateMajorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	major, err := h.projectService.CreateMajor(&req, middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, major)
}

// CreateMinor adds a minor project under a major
// POST /api/projects/:id/minors
func (h *ProjectHandler) CreateMinor(c *gin.Context) {
	var req services.CreateMinorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	minor, err := h.projectService.CreateMinor(c.Param("id"), &req, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, minor)
}

// UpdateMajor applies partial updates to a major project
// PUT /api/projects/:id
func (h *ProjectHandler) UpdateMajor(c *gin.Context) {
	var req services.UpdateMajorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	major, err := h.projectService.UpdateMajor(c.Param("id"), &req, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, major)
}

// DeleteMajor removes a major project and its minor projects
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteMajor(c *gin.Context) {
	if err := h.projectService.DeleteMajor(c.Param("id"), middleware.GetUserID(c)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// UpdateMinor applies partial updates to a minor project
// PUT /api/minors/:id
func (h *ProjectHandler) UpdateMinor(c *gin.Context) {
	var req services.UpdateMinorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	minor, err := h.projectService.UpdateMinor(c.Param("id"), &req, middleware.GetUserID(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, minor)
}

// DeleteMinor removes a minor project
// DELETE /api/minors/:id
func (h *ProjectHandler) DeleteMinor(c *gin.Context) {
	if err := h.projectService.DeleteMinor(c.Param("id"), middleware.GetUserID(c)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProjectNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionMajor moves a major project to a new status
// PATCH /api/projects/:id/status
func (h *ProjectHandler) TransitionMajor(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	major, err := h.projectService.TransitionMajor(c.Param("id"), req.Status, middleware.GetUserID(c))
	if err != nil {
		c.JSON(transitionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, major)
}

// TransitionMinor moves a minor project to a new status
// PATCH /api/minors/:id/status
func (h *ProjectHandler) TransitionMinor(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	minor, err := h.projectService.TransitionMinor(c.Param("id"), req.Status, middleware.GetUserID(c))
	if err != nil {
		c.JSON(transitionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, minor)
}

func transitionErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrIllegalTransition), errors.Is(err, services.ErrUnknownStatus):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
