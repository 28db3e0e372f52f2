package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotifyReviewRequested   = "review_requested"
	NotifyApplicantApproved = "applicant_approved"
	NotifyApplicantRejected = "applicant_rejected"
	NotifyScheduleReminder  = "schedule_reminder"
)

// Notification is a persisted alert for a profile, produced by the
// notification queue and read by the mobile app.
type Notification struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipientID    string    `gorm:"type:varchar(36);not null;index" json:"recipient_id"`
	Type           string    `gorm:"size:50;not null" json:"type"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Body           string    `gorm:"type:text" json:"body"`
	MajorProjectID *string   `gorm:"type:varchar(36)" json:"major_project_id"`
	MinorProjectID *string   `gorm:"type:varchar(36)" json:"minor_project_id"`
	IsRead         bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
