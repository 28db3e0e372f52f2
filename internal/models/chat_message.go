package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is a message in a minor project's chat thread. The aggregation
// layer only ever reads these; delivery is handled by the realtime layer.
type ChatMessage struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MinorProjectID string    `gorm:"type:varchar(36);not null;index" json:"minor_project_id"`
	SenderID       string    `gorm:"type:varchar(36);not null" json:"sender_id"`
	Sender         *Profile  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
