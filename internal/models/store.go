package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a client site serviced by the operator. A store may have
// one assigned master responsible for routine visits.
type Store struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Address   string         `gorm:"size:500" json:"address"`
	ClientID  *string        `gorm:"type:varchar(36);index" json:"client_id"`
	MasterID  *string        `gorm:"type:varchar(36);index" json:"master_id"`
	Master    *Profile       `gorm:"foreignKey:MasterID" json:"master,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string { return "stores" }

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
