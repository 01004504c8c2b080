// internal/handlers/inventory.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
	storageService   *services.StorageService
	config           *config.Config
}

func NewInventoryHandler(inventoryService *services.InventoryService, storageService *services.StorageService, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		storageService:   storageService,
		config:           cfg,
	}
}

// POST /agrovet/inventory
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.inventoryService.CreateItem(agrovetID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryCreated),
		"item":    item,
	})
}

// GET /agrovet/inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	items, total, err := h.inventoryService.ListItems(agrovetID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

// GET /agrovet/pos/products
//
// The sale screen only offers items that can actually be sold.
func (h *InventoryHandler) ListInStock(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.inventoryService.ListInStock(agrovetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}

// GET /agrovet/inventory/low-stock
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.inventoryService.ListLowStock(agrovetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}

// GET /agrovet/inventory/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(itemID, agrovetID)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "inventory")
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// PUT /agrovet/inventory/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.inventoryService.UpdateItem(itemID, agrovetID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "inventory")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryUpdated),
		"item":    item,
	})
}

// DELETE /agrovet/inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(itemID, agrovetID); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "inventory")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryDeleted),
	})
}

// POST /agrovet/inventory/:id/image
func (h *InventoryHandler) UploadItemImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
		Folder:       "products",
		MaxSize:      int64(h.config.Upload.MaxSizeMB) << 20,
		AllowedTypes: h.config.Upload.AllowedExts,
	})
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTypeInvalid), err.Error())
		return
	}

	if err := h.inventoryService.SetItemImage(itemID, agrovetID, result.URL); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			utils.ForbiddenResponse(c, "")
			return
		}
		utils.NotFoundResponse(c, "inventory")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryUpdated),
		"upload":  result,
	})
}
