// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type CustomerService struct {
	db *gorm.DB
}

type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address      string `json:"address,omitempty"`
	CustomerType string `json:"customer_type,omitempty" validate:"omitempty,max=50"`
	Notes        string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address      *string `json:"address,omitempty"`
	CustomerType *string `json:"customer_type,omitempty" validate:"omitempty,max=50"`
	Notes        *string `json:"notes,omitempty"`
}

type CreateCommunicationRequest struct {
	CommunicationType string     `json:"communication_type" validate:"required,max=50"`
	Subject           string     `json:"subject,omitempty" validate:"omitempty,max=255"`
	Message           string     `json:"message" validate:"required"`
	FollowUpDate      *time.Time `json:"follow_up_date,omitempty"`
}

// CustomerDetail bundles a customer record with its interaction history and
// purchases for the detail view.
type CustomerDetail struct {
	Customer       models.Customer        `json:"customer"`
	Communications []models.Communication `json:"communications"`
	Sales          []models.Sale          `json:"sales"`
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) CreateCustomer(agrovetID uuid.UUID, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	customer := &models.Customer{
		AgrovetID:    agrovetID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		CustomerType: req.CustomerType,
		Notes:        req.Notes,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(id, agrovetID uuid.UUID) (*CustomerDetail, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if customer.AgrovetID != agrovetID {
		return nil, ErrNotOwner
	}

	var communications []models.Communication
	if err := s.db.Where("customer_id = ?", customer.ID).
		Order("date DESC").Find(&communications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch communications: %w", err)
	}

	var sales []models.Sale
	if err := s.db.Preload("Items").Where("customer_id = ?", customer.ID).
		Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return &CustomerDetail{
		Customer:       customer,
		Communications: communications,
		Sales:          sales,
	}, nil
}

func (s *CustomerService) ListCustomers(agrovetID uuid.UUID, params utils.PaginationParams) ([]models.Customer, int64, error) {
	query := s.db.Model(&models.Customer{}).Where("agrovet_id = ?", agrovetID)

	if params.Search != "" {
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "total_purchases", "last_purchase"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	return customers, total, nil
}

func (s *CustomerService) UpdateCustomer(id, agrovetID uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if customer.AgrovetID != agrovetID {
		return nil, ErrNotOwner
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.CustomerType != nil {
		updates["customer_type"] = *req.CustomerType
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	return &customer, nil
}

// DeleteCustomer removes the customer and their communication history.
// Past sales keep their snapshot line items and simply lose the customer
// reference.
func (s *CustomerService) DeleteCustomer(id, agrovetID uuid.UUID) error {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("customer not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	if customer.AgrovetID != agrovetID {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).
			Delete(&models.Communication{}).Error; err != nil {
			return fmt.Errorf("failed to delete communications: %w", err)
		}
		if err := tx.Model(&models.Sale{}).Where("customer_id = ?", customer.ID).
			Update("customer_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach sales: %w", err)
		}
		if err := tx.Delete(&customer).Error; err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return nil
	})
}

func (s *CustomerService) AddCommunication(customerID, agrovetID uuid.UUID, req *CreateCommunicationRequest) (*models.Communication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if customer.AgrovetID != agrovetID {
		return nil, ErrNotOwner
	}

	comm := &models.Communication{
		CustomerID:        customer.ID,
		CommunicationType: req.CommunicationType,
		Subject:           req.Subject,
		Message:           req.Message,
		FollowUpDate:      req.FollowUpDate,
		Status:            "pending",
	}

	if err := s.db.Create(comm).Error; err != nil {
		return nil, fmt.Errorf("failed to create communication: %w", err)
	}

	return comm, nil
}
