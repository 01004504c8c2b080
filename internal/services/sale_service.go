// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnknownItem       = errors.New("item not found in your inventory")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type SaleService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CartLine struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items         []CartLine           `json:"items" validate:"required,min=1,dive"`
	CustomerID    *uuid.UUID           `json:"customer_id,omitempty"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty"`
}

type CheckoutResult struct {
	SaleID        uuid.UUID `json:"sale_id"`
	ReceiptNumber string    `json:"receipt_number"`
	TotalAmount   float64   `json:"total_amount"`
}

func NewSaleService(db *gorm.DB, notificationService *NotificationService) *SaleService {
	return &SaleService{
		db:                  db,
		notificationService: notificationService,
	}
}

// lockForUpdate applies a row lock where the dialect supports it. SQLite
// (used by the test suite) serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Checkout runs the point-of-sale transaction: every cart line is validated
// against locked inventory rows before any stock is touched, then stock is
// decremented, the sale header and snapshot line items are written, and the
// customer's lifetime totals are updated, all inside one database
// transaction. Any failure leaves nothing behind.
func (s *SaleService) Checkout(agrovetID uuid.UUID, req *CheckoutRequest) (*CheckoutResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	var result *CheckoutResult
	var lowStock []models.InventoryItem

	// Receipt uniqueness is enforced by the database; retry with a fresh
	// suffix if two checkouts land on the same second.
	const maxReceiptRetries = 3
	var lastErr error

	for attempt := 0; attempt < maxReceiptRetries; attempt++ {
		receiptNumber := utils.GenerateReceiptNumber(agrovetID, time.Now())
		if attempt > 0 {
			suffix, err := utils.GenerateRandomString(4)
			if err != nil {
				return nil, fmt.Errorf("failed to generate receipt suffix: %w", err)
			}
			receiptNumber += strings.ToUpper(suffix)
		}

		lowStock = lowStock[:0]
		lastErr = s.db.Transaction(func(tx *gorm.DB) error {
			checkout, crossed, err := s.runCheckout(tx, agrovetID, receiptNumber, paymentMethod, req)
			if err != nil {
				return err
			}
			result = checkout
			lowStock = crossed
			return nil
		})

		if lastErr == nil {
			break
		}
		if !isUniqueViolation(lastErr) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	// Outside the transaction: low-stock alerts are best-effort.
	if s.notificationService != nil {
		for _, item := range lowStock {
			s.notificationService.NotifyLowStock(agrovetID, &item)
		}
	}

	return result, nil
}

func (s *SaleService) runCheckout(tx *gorm.DB, agrovetID uuid.UUID, receiptNumber string, paymentMethod models.PaymentMethod, req *CheckoutRequest) (*CheckoutResult, []models.InventoryItem, error) {
	// Phase 1: lock and validate every line before mutating anything.
	// An unknown or foreign-owned item fails the whole checkout rather than
	// being dropped from the receipt.
	items := make(map[uuid.UUID]*models.InventoryItem, len(req.Items))
	for _, line := range req.Items {
		if _, dup := items[line.ItemID]; dup {
			return nil, nil, fmt.Errorf("duplicate cart line for item %s", line.ItemID)
		}

		var item models.InventoryItem
		if err := lockForUpdate(tx).First(&item, "id = ?", line.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrUnknownItem
			}
			return nil, nil, fmt.Errorf("database error: %w", err)
		}
		if item.AgrovetID != agrovetID {
			return nil, nil, ErrUnknownItem
		}
		if item.Quantity < line.Quantity {
			return nil, nil, fmt.Errorf("%w for %s (have %d, want %d)",
				ErrInsufficientStock, item.ProductName, item.Quantity, line.Quantity)
		}
		items[line.ItemID] = &item
	}

	var customer *models.Customer
	if req.CustomerID != nil {
		var c models.Customer
		if err := lockForUpdate(tx).First(&c, "id = ?", *req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, errors.New("customer not found")
			}
			return nil, nil, fmt.Errorf("database error: %w", err)
		}
		if c.AgrovetID != agrovetID {
			return nil, nil, errors.New("customer not found")
		}
		customer = &c
	}

	// Phase 2: apply. Prices and names are captured from the live catalog at
	// this moment and frozen into the line items.
	sale := &models.Sale{
		AgrovetID:     agrovetID,
		CustomerID:    req.CustomerID,
		SaleDate:      time.Now().UTC(),
		PaymentMethod: paymentMethod,
		Status:        models.SaleStatusCompleted,
		ReceiptNumber: receiptNumber,
	}

	var totalAmount float64
	saleItems := make([]models.SaleItem, 0, len(req.Items))
	var crossedReorder []models.InventoryItem

	for _, line := range req.Items {
		item := items[line.ItemID]
		subtotal := item.Price * float64(line.Quantity)
		totalAmount += subtotal

		saleItems = append(saleItems, models.SaleItem{
			ProductName: item.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    subtotal,
		})

		wasLow := item.LowStock()
		item.Quantity -= line.Quantity
		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
			Update("quantity", item.Quantity).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to update stock: %w", err)
		}
		if !wasLow && item.LowStock() {
			crossedReorder = append(crossedReorder, *item)
		}
	}

	sale.TotalAmount = totalAmount
	sale.Items = saleItems
	if err := tx.Create(sale).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create sale: %w", err)
	}

	if customer != nil {
		now := time.Now().UTC()
		if err := tx.Model(customer).Updates(map[string]interface{}{
			"total_purchases": gorm.Expr("total_purchases + ?", totalAmount),
			"last_purchase":   now,
		}).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to update customer totals: %w", err)
		}
	}

	return &CheckoutResult{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		TotalAmount:   totalAmount,
	}, crossedReorder, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || // postgres 23505
		strings.Contains(msg, "unique constraint")
}

func (s *SaleService) GetSale(id, agrovetID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Preload("Items").Preload("Customer").First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sale not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if sale.AgrovetID != agrovetID {
		return nil, ErrNotOwner
	}

	return &sale, nil
}

func (s *SaleService) ListSales(agrovetID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	query := s.db.Model(&models.Sale{}).Where("agrovet_id = ?", agrovetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	allowedSortFields := []string{"created_at", "sale_date", "total_amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var sales []models.Sale
	if err := query.Preload("Items").Preload("Customer").Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return sales, total, nil
}
