// internal/models/inventory.go
package models

import (
	"github.com/google/uuid"
)

type InventoryItem struct {
	BaseModel
	AgrovetID    uuid.UUID `json:"agrovet_id" gorm:"type:uuid;not null;index"`
	ProductName  string    `json:"product_name" gorm:"size:200;not null"`
	Category     string    `json:"category" gorm:"size:100;index"`
	Description  string    `json:"description" gorm:"type:text"`
	Quantity     int       `json:"quantity" gorm:"default:0"`
	Unit         string    `json:"unit" gorm:"size:50"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CostPrice    float64   `json:"cost_price" gorm:"type:decimal(10,2)"`
	ReorderLevel int       `json:"reorder_level" gorm:"default:10"`
	Supplier     string    `json:"supplier" gorm:"size:200"`
	SKU          string    `json:"sku" gorm:"size:100"`
	Image        string    `json:"image" gorm:"size:255"`

	Agrovet User `json:"agrovet,omitempty" gorm:"foreignKey:AgrovetID"`
}

// LowStock reports whether the item is at or below its reorder level.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
