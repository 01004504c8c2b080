// internal/handlers/customer.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// POST /agrovet/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	customer, err := h.customerService.CreateCustomer(agrovetID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCustomerCreated),
		"customer": customer,
	})
}

// GET /agrovet/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	customers, total, err := h.customerService.ListCustomers(agrovetID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(customers, total, params))
}

// GET /agrovet/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.customerService.GetCustomer(customerID, agrovetID)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "customer")
		return
	}

	utils.SuccessResponse(c, detail)
}

// PUT /agrovet/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	customer, err := h.customerService.UpdateCustomer(customerID, agrovetID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "customer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCustomerUpdated),
		"customer": customer,
	})
}

// DELETE /agrovet/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(customerID, agrovetID); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "customer")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCustomerDeleted),
	})
}

// POST /agrovet/customers/:id/communications
func (h *CustomerHandler) AddCommunication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.CreateCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	comm, err := h.customerService.AddCommunication(customerID, agrovetID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "customer")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyCommunicationCreated),
		"communication": comm,
	})
}
