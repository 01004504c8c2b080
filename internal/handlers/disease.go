// internal/handlers/disease.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type DiseaseHandler struct {
	diseaseService *services.DiseaseService
	storageService *services.StorageService
	config         *config.Config
}

func NewDiseaseHandler(diseaseService *services.DiseaseService, storageService *services.StorageService, cfg *config.Config) *DiseaseHandler {
	return &DiseaseHandler{
		diseaseService: diseaseService,
		storageService: storageService,
		config:         cfg,
	}
}

// POST /farmer/detect-disease
//
// Accepts multipart form data: a required plant_description, an optional
// photo, and optional location fields. The reply always carries a saved
// report, even when the analysis backend is down.
func (h *DiseaseHandler) DetectDisease(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := services.DetectDiseaseRequest{
		PlantDescription: c.PostForm("plant_description"),
		Location:         c.PostForm("location"),
	}
	if lat := c.PostForm("latitude"); lat != "" {
		if v, err := strconv.ParseFloat(lat, 64); err == nil {
			req.Latitude = &v
		}
	}
	if lon := c.PostForm("longitude"); lon != "" {
		if v, err := strconv.ParseFloat(lon, 64); err == nil {
			req.Longitude = &v
		}
	}

	if file, header, err := c.Request.FormFile("plant_image"); err == nil {
		defer file.Close()
		result, err := h.storageService.UploadFile(file, header, services.UploadOptions{
			Folder:       "plants",
			MaxSize:      int64(h.config.Upload.MaxSizeMB) << 20,
			AllowedTypes: h.config.Upload.AllowedExts,
		})
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTypeInvalid), err.Error())
			return
		}
		req.PlantImage = result.URL
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	report, err := h.diseaseService.DetectDisease(c.Request.Context(), farmerID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportCreated),
		"report":  report,
	})
}

// GET /farmer/reports
func (h *DiseaseHandler) ListMyReports(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := h.diseaseService.ListFarmerReports(farmerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"reports": reports})
}

// GET /officer/reports
func (h *DiseaseHandler) ListRecentReports(c *gin.Context) {
	reports, err := h.diseaseService.ListRecentReports()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"reports": reports})
}

// GET /officer/reports/:id
func (h *DiseaseHandler) GetReport(c *gin.Context) {
	reportID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	report, err := h.diseaseService.GetReport(reportID)
	if err != nil {
		utils.NotFoundResponse(c, "report")
		return
	}

	utils.SuccessResponse(c, gin.H{"report": report})
}

// PUT /officer/reports/:id/status
func (h *DiseaseHandler) UpdateReportStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	reportID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	report, err := h.diseaseService.UpdateReportStatus(reportID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportUpdated),
		"report":  report,
	})
}
