// internal/models/notification.go
package models

import (
	"github.com/google/uuid"
)

type Notification struct {
	BaseModel
	UserID           uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Title            string           `json:"title" gorm:"size:200;not null"`
	Message          string           `json:"message" gorm:"type:text;not null"`
	NotificationType NotificationType `json:"notification_type" gorm:"type:varchar(50);default:'general'"`
	IsRead           bool             `json:"is_read" gorm:"default:false;index"`
	Link             string           `json:"link" gorm:"size:255"`
}
