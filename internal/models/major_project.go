package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MajorProject statuses
const (
	MajorStatusDraft      = "draft"
	MajorStatusRecruiting = "recruiting"
	MajorStatusInProgress = "in_progress"
	MajorStatusCompleted  = "completed"
)

// Service types
const (
	ServiceTypeCleaning = "cleaning"
	ServiceTypePickup   = "pickup"
)

// MajorProject is a client-facing job (e.g. one site's cleaning contract)
// decomposed into MinorProjects. Ownership (ClientID) is immutable after
// creation.
type MajorProject struct {
	ID            string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Location      string         `gorm:"size:500" json:"location"`
	ServiceType   string         `gorm:"size:50" json:"service_type"` // cleaning, pickup
	Status        string         `gorm:"size:50;not null;default:draft;index" json:"status"`
	ScheduledDate *time.Time     `json:"scheduled_date"`
	ClientID      string         `gorm:"type:varchar(36);not null;index" json:"client_id"`
	Client        *Profile       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ManagerID     *string        `gorm:"type:varchar(36);index" json:"manager_id"`
	Manager       *Profile       `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	StoreID       *string        `gorm:"type:varchar(36)" json:"store_id"`
	Store         *Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Minors        []MinorProject `gorm:"foreignKey:MajorProjectID" json:"minors,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MajorProject) TableName() string { return "major_projects" }

func (m *MajorProject) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
