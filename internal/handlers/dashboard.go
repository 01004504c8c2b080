// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	authService      *services.AuthService
}

func NewDashboardHandler(dashboardService *services.DashboardService, authService *services.AuthService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authService:      authService,
	}
}

// GET /agrovet/dashboard
func (h *DashboardHandler) AgrovetDashboard(c *gin.Context) {
	agrovetID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetAgrovetDashboard(agrovetID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /farmer/dashboard
func (h *DashboardHandler) FarmerDashboard(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetFarmerDashboard(farmerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /farmer/agrovets
func (h *DashboardHandler) ListAgrovets(c *gin.Context) {
	agrovets, err := h.authService.ListAgrovets()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"agrovets": agrovets})
}

// GET /officer/farmers
func (h *DashboardHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.authService.ListFarmers()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"farmers": farmers})
}

// GET /officer/dashboard
func (h *DashboardHandler) OfficerDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetOfficerDashboard()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /institution/dashboard
func (h *DashboardHandler) InstitutionDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetInstitutionDashboard()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dashboard)
}
