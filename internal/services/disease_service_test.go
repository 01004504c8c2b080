// internal/services/disease_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
)

func newDiseaseService(t *testing.T, handler http.HandlerFunc) (*DiseaseService, func()) {
	t.Helper()

	db := setupTestDB(t)
	server := httptest.NewServer(handler)

	cfg := testConfig()
	cfg.AI.BaseURL = server.URL

	return NewDiseaseService(db, NewAIService(cfg)), server.Close
}

func TestDetectDiseaseSuccess(t *testing.T) {
	svc, cleanup := newDiseaseService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"Diagnosis: Early blight.\nTreatment: Apply a copper based fungicide weekly."}`))
	})
	defer cleanup()

	farmerID := createTestUser(t, svc.db, "farmer@example.com", models.UserTypeFarmer).ID

	report, err := svc.DetectDisease(context.Background(), farmerID, &DetectDiseaseRequest{
		PlantDescription: "Tomato leaves have dark concentric spots",
		Location:         "Kiambu",
	})
	require.NoError(t, err)
	assert.Contains(t, report.DiseaseDetected, "Early blight")
	assert.Contains(t, report.TreatmentRecommendation, "copper")
	assert.Equal(t, models.ReportStatusPending, report.Status)

	// Persisted, not just returned.
	var stored models.DiseaseReport
	require.NoError(t, svc.db.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, farmerID, stored.FarmerID)
}

func TestDetectDiseaseFallbackOnUpstreamError(t *testing.T) {
	svc, cleanup := newDiseaseService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer cleanup()

	farmerID := createTestUser(t, svc.db, "farmer@example.com", models.UserTypeFarmer).ID

	report, err := svc.DetectDisease(context.Background(), farmerID, &DetectDiseaseRequest{
		PlantDescription: "Maize leaves are yellowing from the edges",
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackDiagnosis, report.DiseaseDetected)

	var count int64
	require.NoError(t, svc.db.Model(&models.DiseaseReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateReportStatus(t *testing.T) {
	svc, cleanup := newDiseaseService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"Diagnosis: Rust."}`))
	})
	defer cleanup()

	farmerID := createTestUser(t, svc.db, "farmer@example.com", models.UserTypeFarmer).ID
	report, err := svc.DetectDisease(context.Background(), farmerID, &DetectDiseaseRequest{
		PlantDescription: "Orange pustules on wheat stems",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateReportStatus(report.ID, &UpdateReportStatusRequest{
		Status:                  models.ReportStatusReviewed,
		TreatmentRecommendation: "Spray triazole fungicide and rotate crops next season.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReviewed, updated.Status)

	_, err = svc.UpdateReportStatus(report.ID, &UpdateReportStatusRequest{Status: "archived"})
	require.Error(t, err)
}

func TestListRecentReportsNewestFirst(t *testing.T) {
	svc, cleanup := newDiseaseService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"Diagnosis: Mildew."}`))
	})
	defer cleanup()

	farmerID := createTestUser(t, svc.db, "farmer@example.com", models.UserTypeFarmer).ID
	for i := 0; i < 3; i++ {
		_, err := svc.DetectDisease(context.Background(), farmerID, &DetectDiseaseRequest{
			PlantDescription: "White powdery coating on leaves",
		})
		require.NoError(t, err)
	}

	reports, err := svc.ListRecentReports()
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "farmer@example.com", reports[0].Farmer.Email)
}
