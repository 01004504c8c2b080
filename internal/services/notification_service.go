// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListNotifications(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("notification not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	if notification.UserID != userID {
		return ErrNotOwner
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	return nil
}

func (s *NotificationService) Create(userID uuid.UUID, title, message string, notificationType models.NotificationType, link string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
		Link:             link,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// NotifyLowStock records a restock alert for the item's owner. Failures are
// logged and swallowed; a missed alert must never surface as a checkout error.
func (s *NotificationService) NotifyLowStock(agrovetID uuid.UUID, item *models.InventoryItem) {
	title := "Low stock alert"
	message := fmt.Sprintf("%s is running low (%d %s remaining, reorder level %d)",
		item.ProductName, item.Quantity, item.Unit, item.ReorderLevel)

	if _, err := s.Create(agrovetID, title, message, models.NotificationTypeLowStock, "/inventory/"+item.ID.String()); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"agrovet_id": agrovetID,
			"item_id":    item.ID,
		}).Warn("Failed to create low stock notification")
	}
}
