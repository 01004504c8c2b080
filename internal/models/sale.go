// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Sale struct {
	BaseModel
	AgrovetID     uuid.UUID     `json:"agrovet_id" gorm:"type:uuid;not null;index"`
	CustomerID    *uuid.UUID    `json:"customer_id" gorm:"type:uuid;index"`
	SaleDate      time.Time     `json:"sale_date" gorm:"autoCreateTime;index"`
	TotalAmount   float64       `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(50);default:'cash'"`
	Status        SaleStatus    `json:"status" gorm:"type:varchar(50);default:'completed'"`
	ReceiptNumber string        `json:"receipt_number" gorm:"uniqueIndex;size:100;not null"`

	Agrovet  User       `json:"agrovet,omitempty" gorm:"foreignKey:AgrovetID"`
	Customer *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is a point-in-time snapshot of what was sold. It deliberately
// carries no reference to the inventory row, so a receipt stays stable when
// the catalog entry is renamed, repriced, or deleted.
type SaleItem struct {
	BaseModel
	SaleID      uuid.UUID `json:"sale_id" gorm:"type:uuid;not null;index"`
	ProductName string    `json:"product_name" gorm:"size:200;not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Subtotal    float64   `json:"subtotal" gorm:"type:decimal(12,2);not null"`
}
