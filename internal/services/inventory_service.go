// internal/services/inventory_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

var ErrNotOwner = errors.New("record does not belong to this account")

type InventoryService struct {
	db *gorm.DB
}

type CreateInventoryItemRequest struct {
	ProductName  string  `json:"product_name" validate:"required,min=2,max=200"`
	Category     string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Description  string  `json:"description,omitempty"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	Unit         string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	CostPrice    float64 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel int     `json:"reorder_level,omitempty" validate:"omitempty,gte=0"`
	Supplier     string  `json:"supplier,omitempty" validate:"omitempty,max=200"`
	SKU          string  `json:"sku,omitempty" validate:"omitempty,max=100"`
}

type UpdateInventoryItemRequest struct {
	ProductName  string   `json:"product_name,omitempty" validate:"omitempty,min=2,max=200"`
	Category     *string  `json:"category,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Quantity     *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	CostPrice    *float64 `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel *int     `json:"reorder_level,omitempty" validate:"omitempty,gte=0"`
	Supplier     *string  `json:"supplier,omitempty"`
	SKU          *string  `json:"sku,omitempty"`
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) CreateItem(agrovetID uuid.UUID, req *CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	reorderLevel := req.ReorderLevel
	if reorderLevel == 0 {
		reorderLevel = 10
	}

	item := &models.InventoryItem{
		AgrovetID:    agrovetID,
		ProductName:  req.ProductName,
		Category:     req.Category,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		ReorderLevel: reorderLevel,
		Supplier:     req.Supplier,
		SKU:          req.SKU,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetItem loads an item and re-verifies ownership server-side. The owning
// agrovet id always comes from the authenticated identity, never the client.
func (s *InventoryService) GetItem(id, agrovetID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("inventory item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if item.AgrovetID != agrovetID {
		return nil, ErrNotOwner
	}

	return &item, nil
}

func (s *InventoryService) ListItems(agrovetID uuid.UUID, params utils.PaginationParams) ([]models.InventoryItem, int64, error) {
	query := s.db.Model(&models.InventoryItem{}).Where("agrovet_id = ?", agrovetID)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(product_name) LIKE ? OR LOWER(sku) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "product_name", "quantity", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	return items, total, nil
}

// ListInStock returns sellable items for the point-of-sale screen.
func (s *InventoryService) ListInStock(agrovetID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("agrovet_id = ? AND quantity > 0", agrovetID).
		Order("product_name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch in-stock items: %w", err)
	}
	return items, nil
}

func (s *InventoryService) ListLowStock(agrovetID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("agrovet_id = ? AND quantity <= reorder_level", agrovetID).
		Order("quantity").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low-stock items: %w", err)
	}
	return items, nil
}

func (s *InventoryService) UpdateItem(id, agrovetID uuid.UUID, req *UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.GetItem(id, agrovetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.ProductName != "" {
		updates["product_name"] = req.ProductName
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}
	if req.Supplier != nil {
		updates["supplier"] = *req.Supplier
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update inventory item: %w", err)
		}
	}

	return item, nil
}

// DeleteItem is unconditional: sale line items are denormalized snapshots,
// so past receipts survive the catalog row.
func (s *InventoryService) DeleteItem(id, agrovetID uuid.UUID) error {
	item, err := s.GetItem(id, agrovetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

func (s *InventoryService) SetItemImage(id, agrovetID uuid.UUID, filename string) error {
	item, err := s.GetItem(id, agrovetID)
	if err != nil {
		return err
	}
	return s.db.Model(item).Update("image", filename).Error
}
