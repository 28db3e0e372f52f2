package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sweeply/fieldops/internal/middleware"
	"github.com/sweeply/fieldops/internal/services"
	"github.com/sweeply/fieldops/pkg/response"
	"gorm.io/gorm"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	return &StoreHandler{
		storeService: services.NewStoreService(db),
	}
}

// List returns stores
// GET /api/stores
func (h *StoreHandler) List(c *gin.Context) {
	var req services.StoreListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.storeService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Create creates a store
// POST /api/stores
func (h *StoreHandler) Create(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	store, err := h.storeService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, store)
}

type assignMasterRequest struct {
	MasterID *string `json:"master_id"`
}

// AssignMaster sets or clears a store's responsible master
// PATCH /api/stores/:id/master
func (h *StoreHandler) AssignMaster(c *gin.Context) {
	var req assignMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	store, err := h.storeService.AssignMaster(c.Param("id"), req.MasterID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			response.NotFound(c, "store not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, store)
}
