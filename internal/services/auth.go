package services

import (
	"errors"
	"time"

	"github.com/sweeply/fieldops/internal/config"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db     *gorm.DB
	jwtCfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtCfg: jwtCfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var profile models.Profile
	if err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&profile).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(req.Password, profile.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(profile.ID, profile.Name, profile.Role, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.db.Model(&profile).Update("last_login", &now)

	return &LoginResponse{Token: token, Profile: &profile}, nil
}

// GetProfileByID returns a profile by id.
func (s *AuthService) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateAdminIfNotExists seeds the default super admin account.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.Profile{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.Profile{
		Role:     models.RoleSuperAdmin,
		Name:     "관리자",
		Email:    "admin@fieldops.local",
		Password: hashed,
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}
