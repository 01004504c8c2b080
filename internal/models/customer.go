// internal/models/customer.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	BaseModel
	AgrovetID      uuid.UUID  `json:"agrovet_id" gorm:"type:uuid;not null;index"`
	Name           string     `json:"name" gorm:"size:100;not null"`
	Email          string     `json:"email" gorm:"size:120"`
	Phone          string     `json:"phone" gorm:"size:20"`
	Address        string     `json:"address" gorm:"size:255"`
	CustomerType   string     `json:"customer_type" gorm:"size:50"`
	Notes          string     `json:"notes" gorm:"type:text"`
	TotalPurchases float64    `json:"total_purchases" gorm:"type:decimal(12,2);default:0"`
	LastPurchase   *time.Time `json:"last_purchase"`

	Agrovet        User            `json:"agrovet,omitempty" gorm:"foreignKey:AgrovetID"`
	Purchases      []Sale          `json:"purchases,omitempty" gorm:"foreignKey:CustomerID"`
	Communications []Communication `json:"communications,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

type Communication struct {
	BaseModel
	CustomerID        uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	CommunicationType string     `json:"communication_type" gorm:"size:50"`
	Subject           string     `json:"subject" gorm:"size:200"`
	Message           string     `json:"message" gorm:"type:text"`
	Date              time.Time  `json:"date" gorm:"autoCreateTime"`
	FollowUpDate      *time.Time `json:"follow_up_date"`
	Status            string     `json:"status" gorm:"size:50;default:'pending'"`
}
