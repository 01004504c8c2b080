// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email          string   `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash   string   `json:"-" gorm:"size:255;not null"`
	FullName       string   `json:"full_name" gorm:"size:100;not null"`
	UserType       UserType `json:"user_type" gorm:"type:varchar(50);not null"`
	ProfilePicture string   `json:"profile_picture" gorm:"size:255"`
	PhoneNumber    string   `json:"phone_number" gorm:"size:20"`
	Location       string   `json:"location" gorm:"size:200"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	IsActive       bool     `json:"is_active" gorm:"default:true"`

	// Relationships (deleted with the user)
	InventoryItems []InventoryItem `json:"inventory_items,omitempty" gorm:"foreignKey:AgrovetID;constraint:OnDelete:CASCADE"`
	Sales          []Sale          `json:"sales,omitempty" gorm:"foreignKey:AgrovetID;constraint:OnDelete:CASCADE"`
	Customers      []Customer      `json:"customers,omitempty" gorm:"foreignKey:AgrovetID;constraint:OnDelete:CASCADE"`
	DiseaseReports []DiseaseReport `json:"disease_reports,omitempty" gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE"`
	Notifications  []Notification  `json:"notifications,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
