package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant statuses
const (
	ParticipantApplied  = "applied"
	ParticipantApproved = "approved"
	ParticipantRejected = "rejected"
)

// Participant is a field master's application/assignment record against a
// MinorProject. One record per (minor_project_id, master_id); the engine
// additionally deduplicates defensively on read.
type Participant struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	MinorProjectID string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_minor_master" json:"minor_project_id"`
	MasterID       string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_minor_master" json:"master_id"`
	Master         *Profile       `gorm:"foreignKey:MasterID" json:"master,omitempty"`
	Status         string         `gorm:"size:50;not null;default:applied;index" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Participant) TableName() string { return "project_participants" }

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
