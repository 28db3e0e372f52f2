package services

import (
	"errors"

	"github.com/sweeply/fieldops/internal/models"
	"gorm.io/gorm"
)

var ErrStoreNotFound = errors.New("store not found")

type StoreService struct {
	db *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

type StoreListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Name     string `form:"name"`
	Active   *bool  `form:"active"`
}

type StoreListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []models.Store `json:"items"`
}

type CreateStoreRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address"`
	ClientID *string `json:"client_id"`
}

// List returns paginated stores with the assigned master preloaded.
func (s *StoreService) List(req *StoreListRequest) (*StoreListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var stores []models.Store
	var total int64

	query := s.db.Model(&models.Store{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Active != nil {
		query = query.Where("is_active = ?", *req.Active)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Master").Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, err
	}

	return &StoreListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    stores,
	}, nil
}

// Create creates a new store.
func (s *StoreService) Create(req *CreateStoreRequest, createdBy string) (*models.Store, error) {
	store := models.Store{
		Name:     req.Name,
		Address:  req.Address,
		ClientID: req.ClientID,
		IsActive: true,
	}
	if err := s.db.Create(&store).Error; err != nil {
		return nil, err
	}

	LogInfo("store", "create", "store created: "+store.Name, &createdBy, "", "", nil)
	return &store, nil
}

// AssignMaster sets or clears the store's responsible master.
func (s *StoreService) AssignMaster(storeID string, masterID *string, actedBy string) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		return nil, ErrStoreNotFound
	}

	if err := s.db.Model(&store).Update("master_id", masterID).Error; err != nil {
		return nil, err
	}
	store.MasterID = masterID

	LogInfo("store", "assign_master", "store "+storeID+" master updated", &actedBy, "", "", nil)
	return &store, nil
}
