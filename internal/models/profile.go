package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile roles
const (
	RoleSuperAdmin     = "super_admin"
	RoleProjectManager = "project_manager"
	RoleMaster         = "master"
	RoleClient         = "client"
)

// IsAdminRole reports whether the role has operator-wide visibility.
func IsAdminRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleProjectManager
}

// Profile represents an account: operators, field masters and clients.
type Profile struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Role      string         `gorm:"size:50;not null;index" json:"role"` // super_admin, project_manager, master, client
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash
	Phone     string         `gorm:"size:50" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
