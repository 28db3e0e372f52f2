package services

import (
	"errors"
	"time"

	"github.com/sweeply/fieldops/internal/models"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewProjectService(db *gorm.DB, queue TaskQueue) *ProjectService {
	return &ProjectService{db: db, queue: queue}
}

type MajorListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Status   string `form:"status"`
	Title    string `form:"title"`
}

type MajorListResponse struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []models.MajorProject `json:"items"`
}

type CreateMajorRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	ServiceType   string     `json:"service_type" binding:"omitempty,oneof=cleaning pickup"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	ClientID      string     `json:"client_id" binding:"required"`
	ManagerID     *string    `json:"manager_id"`
	StoreID       *string    `json:"store_id"`
}

type CreateMinorRequest struct {
	Title           string `json:"title" binding:"required"`
	RequiredMasters int    `json:"required_masters" binding:"min=0"`
}

// ListMajors returns paginated major projects visible to the given role and
// identity. Visibility follows the same rules the dashboard uses.
func (s *ProjectService) ListMajors(role, userID string, req *MajorListRequest) (*MajorListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var majors []models.MajorProject
	query := s.db.Model(&models.MajorProject{}).Preload("Minors.Participants")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	if err := query.Order("created_at DESC").Find(&majors).Error; err != nil {
		return nil, err
	}

	visible := VisibleMajors(role, userID, majors)

	total := int64(len(visible))
	start := (req.Page - 1) * req.PageSize
	if start > len(visible) {
		start = len(visible)
	}
	end := start + req.PageSize
	if end > len(visible) {
		end = len(visible)
	}

	return &MajorListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    visible[start:end],
	}, nil
}

// GetMajor returns one major project with children, restricted by role
// visibility.
func (s *ProjectService) GetMajor(role, userID, id string) (*models.MajorProject, error) {
	var major models.MajorProject
	if err := s.db.Preload("Minors.Participants.Master").
		Preload("Client").Preload("Manager").
		First(&major, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if len(VisibleMajors(role, userID, []models.MajorProject{major})) == 0 {
		return nil, ErrProjectNotFound
	}
	return &major, nil
}

// CreateMajor creates a major project in draft state. The client ownership
// reference is fixed at creation and never changes afterwards.
func (s *ProjectService) CreateMajor(req *CreateMajorRequest, createdBy string) (*models.MajorProject, error) {
	major := models.MajorProject{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		ServiceType:   req.ServiceType,
		Status:        models.MajorStatusDraft,
		ScheduledDate: req.ScheduledDate,
		ClientID:      req.ClientID,
		ManagerID:     req.ManagerID,
		StoreID:       req.StoreID,
	}
	if err := s.db.Create(&major).Error; err != nil {
		return nil, err
	}

	LogInfo("project", "create_major", "major project created: "+major.Title, &createdBy, "", "", nil)
	return &major, nil
}

type UpdateMajorRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	ServiceType   *string    `json:"service_type" binding:"omitempty,oneof=cleaning pickup"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	ManagerID     *string    `json:"manager_id"`
	StoreID       *string    `json:"store_id"`
}

// UpdateMajor applies partial updates. Client ownership and status are not
// updatable here; status moves only through TransitionMajor.
func (s *ProjectService) UpdateMajor(id string, req *UpdateMajorRequest, actedBy string) (*models.MajorProject, error) {
	var major models.MajorProject
	if err := s.db.First(&major, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.ServiceType != nil {
		updates["service_type"] = *req.ServiceType
	}
	if req.ScheduledDate != nil {
		updates["scheduled_date"] = req.ScheduledDate
	}
	if req.ManagerID != nil {
		updates["manager_id"] = req.ManagerID
	}
	if req.StoreID != nil {
		updates["store_id"] = req.StoreID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&major).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.First(&major, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}

	LogInfo("project", "update_major", "major project updated: "+id, &actedBy, "", "", nil)
	return &major, nil
}

// DeleteMajor soft-deletes a major project and its minor projects.
func (s *ProjectService) DeleteMajor(id, actedBy string) error {
	var major models.MajorProject
	if err := s.db.First(&major, "id = ?", id).Error; err != nil {
		return ErrProjectNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("major_project_id = ?", id).Delete(&models.MinorProject{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&major).Error; err != nil {
			return err
		}
		LogInfo("project", "delete_major", "major project deleted: "+id, &actedBy, "", "", nil)
		return nil
	})
}

// CreateMinor adds a schedulable work unit under a major project.
func (s *ProjectService) CreateMinor(majorID string, req *CreateMinorRequest, createdBy string) (*models.MinorProject, error) {
	var major models.MajorProject
	if err := s.db.First(&major, "id = ?", majorID).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	minor := models.MinorProject{
		MajorProjectID:  major.ID,
		Title:           req.Title,
		Status:          models.MinorStatusInProgress,
		RequiredMasters: req.RequiredMasters,
	}
	if err := s.db.Create(&minor).Error; err != nil {
		return nil, err
	}

	LogInfo("project", "create_minor", "minor project created: "+minor.Title, &createdBy, "", "", nil)
	return &minor, nil
}

type UpdateMinorRequest struct {
	Title           *string `json:"title"`
	RequiredMasters *int    `json:"required_masters" binding:"omitempty,min=0"`
}

// UpdateMinor applies partial updates to a minor project.
func (s *ProjectService) UpdateMinor(id string, req *UpdateMinorRequest, actedBy string) (*models.MinorProject, error) {
	var minor models.MinorProject
	if err := s.db.First(&minor, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.RequiredMasters != nil {
		updates["required_masters"] = *req.RequiredMasters
	}

	if len(updates) > 0 {
		if err := s.db.Model(&minor).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.First(&minor, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}

	LogInfo("project", "update_minor", "minor project updated: "+id, &actedBy, "", "", nil)
	return &minor, nil
}

// DeleteMinor soft-deletes a minor project.
func (s *ProjectService) DeleteMinor(id, actedBy string) error {
	var minor models.MinorProject
	if err := s.db.First(&minor, "id = ?", id).Error; err != nil {
		return ErrProjectNotFound
	}

	if err := s.db.Delete(&minor).Error; err != nil {
		return err
	}

	LogInfo("project", "delete_minor", "minor project deleted: "+id, &actedBy, "", "", nil)
	return nil
}

// TransitionMajor moves a major project to a new status after validating
// the transition against the shared state machine.
func (s *ProjectService) TransitionMajor(id, to string, actedBy string) (*models.MajorProject, error) {
	var major models.MajorProject
	if err := s.db.First(&major, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	if err := ValidateTransition(KindMajorProject, major.Status, to); err != nil {
		return nil, err
	}

	if err := s.db.Model(&major).Update("status", to).Error; err != nil {
		return nil, err
	}
	major.Status = to

	LogInfo("project", "transition_major", "major "+id+" -> "+to, &actedBy, "", "", nil)
	return &major, nil
}

// TransitionMinor moves a minor project to a new status. Entering review
// notifies the client; entering completed stamps nothing extra, the
// timestamps carry the ordering the dashboard needs.
func (s *ProjectService) TransitionMinor(id, to string, actedBy string) (*models.MinorProject, error) {
	var minor models.MinorProject
	if err := s.db.First(&minor, "id = ?", id).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	if err := ValidateTransition(KindMinorProject, minor.Status, to); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": to}
	if to == models.MinorStatusInProgress && minor.StartedAt == nil {
		now := time.Now()
		updates["started_at"] = &now
	}

	if err := s.db.Model(&minor).Updates(updates).Error; err != nil {
		return nil, err
	}
	minor.Status = to

	LogInfo("project", "transition_minor", "minor "+id+" -> "+to, &actedBy, "", "", nil)

	if to == models.MinorStatusReview && s.queue != nil {
		var major models.MajorProject
		if err := s.db.First(&major, "id = ?", minor.MajorProjectID).Error; err == nil {
			task := &NotifyTask{
				Type:           models.NotifyReviewRequested,
				RecipientID:    major.ClientID,
				Title:          "검토 요청",
				Body:           minor.Title + " 작업의 완료 검토가 요청되었습니다.",
				MajorProjectID: &major.ID,
				MinorProjectID: &minor.ID,
			}
			if err := s.queue.Enqueue(task); err != nil {
				LogError("project", "notify_review", err.Error(), &actedBy, "", "", nil)
			}
		}
	}

	return &minor, nil
}
