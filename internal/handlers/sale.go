// internal/handlers/sale.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// POST /agrovet/pos/checkout
func (h *SaleHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.saleService.Checkout(agrovetID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySaleEmptyCart), nil)
		case errors.Is(err, services.ErrUnknownItem):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySaleUnknownItem), nil)
		case errors.Is(err, services.ErrInsufficientStock):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySaleCompleted),
		"sale":    result,
	})
}

// GET /agrovet/sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	sales, total, err := h.saleService.ListSales(agrovetID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(sales, total, params))
}

// GET /agrovet/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	saleID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(saleID, agrovetID)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "sale")
		return
	}

	utils.SuccessResponse(c, gin.H{"sale": sale})
}
