package services

import (
	"context"

	"github.com/sweeply/fieldops/internal/models"
	"gorm.io/gorm"
)

// NotificationService persists and lists user notifications. Delivery is
// just a row insert; the mobile app polls its own list.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Deliver persists a notification task. Used as the task queue processor.
func (s *NotificationService) Deliver(ctx context.Context, task *NotifyTask) error {
	notification := models.Notification{
		RecipientID:    task.RecipientID,
		Type:           task.Type,
		Title:          task.Title,
		Body:           task.Body,
		MajorProjectID: task.MajorProjectID,
		MinorProjectID: task.MinorProjectID,
	}
	return s.db.WithContext(ctx).Create(&notification).Error
}

// ListForUser returns the newest notifications for a recipient.
func (s *NotificationService) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a recipient.
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(id, userID string) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true).Error
}
