package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinorProject statuses. While the parent major project is still recruiting,
// a minor project is implicitly "open" regardless of its own status column.
const (
	MinorStatusInProgress = "in_progress"
	MinorStatusReview     = "review"
	MinorStatusCompleted  = "completed"
)

// MinorProject is a schedulable unit of work under a MajorProject, executed
// by one or more field masters. Each minor project has exactly one chat
// thread keyed by its own id.
type MinorProject struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	MajorProjectID  string         `gorm:"type:varchar(36);not null;index" json:"major_project_id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Status          string         `gorm:"size:50;not null;default:in_progress;index" json:"status"`
	RequiredMasters int            `gorm:"not null;default:1" json:"required_masters"`
	StartedAt       *time.Time     `json:"started_at"`
	Participants    []Participant  `gorm:"foreignKey:MinorProjectID" json:"participants,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MinorProject) TableName() string { return "minor_projects" }

func (m *MinorProject) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
