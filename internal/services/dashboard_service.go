// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
)

type DashboardService struct {
	db *gorm.DB
}

// AgrovetDashboard is the shop owner's home screen summary.
type AgrovetDashboard struct {
	TotalProducts       int64         `json:"total_products"`
	LowStockCount       int64         `json:"low_stock_count"`
	TotalCustomers      int64         `json:"total_customers"`
	TodayRevenue        float64       `json:"today_revenue"`
	TodaySales          int64         `json:"today_sales"`
	UnreadNotifications int64         `json:"unread_notifications"`
	RecentSales         []models.Sale `json:"recent_sales"`
}

// FarmerDashboard summarizes a farmer's recent activity.
type FarmerDashboard struct {
	TotalReports        int64                  `json:"total_reports"`
	PendingReports      int64                  `json:"pending_reports"`
	RecentReports       []models.DiseaseReport `json:"recent_reports"`
	UnreadNotifications []models.Notification  `json:"unread_notifications"`
}

// OfficerDashboard gives extension officers a view of the review queue.
type OfficerDashboard struct {
	TotalReports     int64 `json:"total_reports"`
	PendingReports   int64 `json:"pending_reports"`
	ReviewedReports  int64 `json:"reviewed_reports"`
	ResolvedReports  int64 `json:"resolved_reports"`
	FarmersReporting int64 `json:"farmers_reporting"`
}

// InstitutionDashboard is the anonymized platform overview served to
// learning institutions. No per-user data appears here.
type InstitutionDashboard struct {
	TotalFarmers     int64            `json:"total_farmers"`
	TotalAgrovets    int64            `json:"total_agrovets"`
	TotalReports     int64            `json:"total_reports"`
	TotalSales       int64            `json:"total_sales"`
	ReportsByStatus  map[string]int64 `json:"reports_by_status"`
	ReportsThisMonth int64            `json:"reports_this_month"`
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) GetAgrovetDashboard(agrovetID uuid.UUID) (*AgrovetDashboard, error) {
	dashboard := &AgrovetDashboard{}

	if err := s.db.Model(&models.InventoryItem{}).
		Where("agrovet_id = ?", agrovetID).
		Count(&dashboard.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if err := s.db.Model(&models.InventoryItem{}).
		Where("agrovet_id = ? AND quantity <= reorder_level", agrovetID).
		Count(&dashboard.LowStockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}

	if err := s.db.Model(&models.Customer{}).
		Where("agrovet_id = ?", agrovetID).
		Count(&dashboard.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.db.Model(&models.Sale{}).
		Where("agrovet_id = ? AND sale_date >= ? AND status = ?",
			agrovetID, startOfDay, models.SaleStatusCompleted).
		Count(&dashboard.TodaySales).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's sales: %w", err)
	}

	var revenue *float64
	if err := s.db.Model(&models.Sale{}).
		Where("agrovet_id = ? AND sale_date >= ? AND status = ?",
			agrovetID, startOfDay, models.SaleStatusCompleted).
		Select("SUM(total_amount)").Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}
	if revenue != nil {
		dashboard.TodayRevenue = *revenue
	}

	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", agrovetID, false).
		Count(&dashboard.UnreadNotifications).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	if err := s.db.Preload("Items").
		Where("agrovet_id = ?", agrovetID).
		Order("sale_date DESC").Limit(5).
		Find(&dashboard.RecentSales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent sales: %w", err)
	}

	return dashboard, nil
}

func (s *DashboardService) GetFarmerDashboard(farmerID uuid.UUID) (*FarmerDashboard, error) {
	dashboard := &FarmerDashboard{}

	if err := s.db.Model(&models.DiseaseReport{}).
		Where("farmer_id = ?", farmerID).
		Count(&dashboard.TotalReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	if err := s.db.Model(&models.DiseaseReport{}).
		Where("farmer_id = ? AND status = ?", farmerID, models.ReportStatusPending).
		Count(&dashboard.PendingReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	if err := s.db.Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Limit(10).
		Find(&dashboard.RecentReports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent reports: %w", err)
	}

	if err := s.db.Where("user_id = ? AND is_read = ?", farmerID, false).
		Order("created_at DESC").Limit(5).
		Find(&dashboard.UnreadNotifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return dashboard, nil
}

func (s *DashboardService) GetOfficerDashboard() (*OfficerDashboard, error) {
	dashboard := &OfficerDashboard{}

	counts := []struct {
		status models.ReportStatus
		dest   *int64
	}{
		{models.ReportStatusPending, &dashboard.PendingReports},
		{models.ReportStatusReviewed, &dashboard.ReviewedReports},
		{models.ReportStatusResolved, &dashboard.ResolvedReports},
	}
	for _, c := range counts {
		if err := s.db.Model(&models.DiseaseReport{}).
			Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count reports: %w", err)
		}
	}
	dashboard.TotalReports = dashboard.PendingReports + dashboard.ReviewedReports + dashboard.ResolvedReports

	if err := s.db.Model(&models.DiseaseReport{}).
		Distinct("farmer_id").Count(&dashboard.FarmersReporting).Error; err != nil {
		return nil, fmt.Errorf("failed to count reporting farmers: %w", err)
	}

	return dashboard, nil
}

func (s *DashboardService) GetInstitutionDashboard() (*InstitutionDashboard, error) {
	dashboard := &InstitutionDashboard{
		ReportsByStatus: make(map[string]int64),
	}

	if err := s.db.Model(&models.User{}).
		Where("user_type = ? AND is_active = ?", models.UserTypeFarmer, true).
		Count(&dashboard.TotalFarmers).Error; err != nil {
		return nil, fmt.Errorf("failed to count farmers: %w", err)
	}

	if err := s.db.Model(&models.User{}).
		Where("user_type = ? AND is_active = ?", models.UserTypeAgrovet, true).
		Count(&dashboard.TotalAgrovets).Error; err != nil {
		return nil, fmt.Errorf("failed to count agrovets: %w", err)
	}

	if err := s.db.Model(&models.DiseaseReport{}).
		Count(&dashboard.TotalReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	if err := s.db.Model(&models.Sale{}).
		Count(&dashboard.TotalSales).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	for _, status := range []models.ReportStatus{
		models.ReportStatusPending, models.ReportStatusReviewed, models.ReportStatusResolved,
	} {
		var count int64
		if err := s.db.Model(&models.DiseaseReport{}).
			Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count reports by status: %w", err)
		}
		dashboard.ReportsByStatus[string(status)] = count
	}

	startOfMonth := time.Date(time.Now().UTC().Year(), time.Now().UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := s.db.Model(&models.DiseaseReport{}).
		Where("created_at >= ?", startOfMonth).
		Count(&dashboard.ReportsThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to count monthly reports: %w", err)
	}

	return dashboard, nil
}
