// internal/services/dashboard_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
)

func TestAgrovetDashboardCounts(t *testing.T) {
	db := setupTestDB(t)
	dashboards := NewDashboardService(db)
	sales := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	createTestItem(t, db, agrovet.ID, "Plenty", 50, 2.0)
	low := createTestItem(t, db, agrovet.ID, "Low", 11, 4.0)

	customer := &models.Customer{AgrovetID: agrovet.ID, Name: "Counted Customer"}
	require.NoError(t, db.Create(customer).Error)

	_, err := sales.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: low.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	dashboard, err := dashboards.GetAgrovetDashboard(agrovet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dashboard.TotalProducts)
	assert.EqualValues(t, 1, dashboard.LowStockCount) // 11 - 3 = 8 <= 10
	assert.EqualValues(t, 1, dashboard.TotalCustomers)
	assert.EqualValues(t, 1, dashboard.TodaySales)
	assert.Equal(t, 12.0, dashboard.TodayRevenue)
	assert.Len(t, dashboard.RecentSales, 1)
}

func TestOfficerDashboardAggregates(t *testing.T) {
	db := setupTestDB(t)
	dashboards := NewDashboardService(db)

	farmer := createTestUser(t, db, "farmer@example.com", models.UserTypeFarmer)
	for _, status := range []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusPending,
		models.ReportStatusResolved,
	} {
		report := &models.DiseaseReport{
			FarmerID:         farmer.ID,
			PlantDescription: "test symptoms",
			Status:           status,
		}
		require.NoError(t, db.Create(report).Error)
	}

	dashboard, err := dashboards.GetOfficerDashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 3, dashboard.TotalReports)
	assert.EqualValues(t, 2, dashboard.PendingReports)
	assert.EqualValues(t, 1, dashboard.ResolvedReports)
	assert.EqualValues(t, 1, dashboard.FarmersReporting)
}

func TestInstitutionDashboardIsAggregateOnly(t *testing.T) {
	db := setupTestDB(t)
	dashboards := NewDashboardService(db)

	createTestUser(t, db, "farmer1@example.com", models.UserTypeFarmer)
	createTestUser(t, db, "farmer2@example.com", models.UserTypeFarmer)
	createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)

	dashboard, err := dashboards.GetInstitutionDashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 2, dashboard.TotalFarmers)
	assert.EqualValues(t, 1, dashboard.TotalAgrovets)
	assert.Contains(t, dashboard.ReportsByStatus, "pending")
}

func TestFarmerDashboard(t *testing.T) {
	db := setupTestDB(t)
	dashboards := NewDashboardService(db)

	farmer := createTestUser(t, db, "farmer@example.com", models.UserTypeFarmer)
	report := &models.DiseaseReport{
		FarmerID:         farmer.ID,
		PlantDescription: "yellowing leaves",
		Status:           models.ReportStatusPending,
	}
	require.NoError(t, db.Create(report).Error)

	dashboard, err := dashboards.GetFarmerDashboard(farmer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dashboard.TotalReports)
	assert.EqualValues(t, 1, dashboard.PendingReports)
	assert.Len(t, dashboard.RecentReports, 1)
}
