// internal/services/disease_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

// FallbackDiagnosis is returned when the analysis backend cannot be reached.
// The report is still saved so an extension officer can follow up.
const FallbackDiagnosis = "Unable to analyze plant health at the moment. Please consult with an agricultural officer."

const diagnosisPreamble = "You are an agricultural plant health expert. " +
	"Given a farmer's description of their plant's symptoms, identify the most " +
	"likely disease or deficiency and recommend a practical treatment. " +
	"Answer in two short sections: Diagnosis and Treatment."

type DiseaseService struct {
	db *gorm.DB
	ai *AIService
}

type DetectDiseaseRequest struct {
	PlantDescription string   `json:"plant_description" validate:"required,min=10"`
	PlantImage       string   `json:"plant_image,omitempty"`
	Location         string   `json:"location,omitempty" validate:"omitempty,max=255"`
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type UpdateReportStatusRequest struct {
	Status                  models.ReportStatus `json:"status" validate:"required"`
	TreatmentRecommendation string              `json:"treatment_recommendation,omitempty"`
}

func NewDiseaseService(db *gorm.DB, ai *AIService) *DiseaseService {
	return &DiseaseService{db: db, ai: ai}
}

// DetectDisease asks the analysis backend about the described symptoms and
// persists the outcome as a report owned by the farmer. The report is created
// even when analysis fails, carrying the fallback text instead of a diagnosis.
func (s *DiseaseService) DetectDisease(ctx context.Context, farmerID uuid.UUID, req *DetectDiseaseRequest) (*models.DiseaseReport, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	prompt := "Plant symptoms: " + req.PlantDescription
	if req.Location != "" {
		prompt += "\nLocation: " + req.Location
	}

	report := &models.DiseaseReport{
		FarmerID:         farmerID,
		PlantImage:       req.PlantImage,
		PlantDescription: req.PlantDescription,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Status:           models.ReportStatusPending,
	}

	analysis, err := s.ai.Chat(ctx, prompt, diagnosisPreamble)
	if err != nil {
		logrus.WithError(err).WithField("farmer_id", farmerID).
			Warn("Plant health analysis failed, saving report with fallback")
		report.DiseaseDetected = FallbackDiagnosis
	} else {
		report.DiseaseDetected, report.TreatmentRecommendation = splitDiagnosis(analysis)
	}

	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to save disease report: %w", err)
	}

	return report, nil
}

// splitDiagnosis separates the model's answer into diagnosis and treatment
// halves when it follows the requested two-section format. Otherwise the
// whole text is kept as the diagnosis.
func splitDiagnosis(text string) (diagnosis, treatment string) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, "treatment")
	if idx <= 0 {
		return strings.TrimSpace(text), ""
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx:])
}

func (s *DiseaseService) ListFarmerReports(farmerID uuid.UUID) ([]models.DiseaseReport, error) {
	var reports []models.DiseaseReport
	if err := s.db.Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

func (s *DiseaseService) GetReport(id uuid.UUID) (*models.DiseaseReport, error) {
	var report models.DiseaseReport
	if err := s.db.Preload("Farmer").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("report not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &report, nil
}

// ListRecentReports returns the 50 newest reports across all farmers, with
// farmer details preloaded for the officer review queue.
func (s *DiseaseService) ListRecentReports() ([]models.DiseaseReport, error) {
	var reports []models.DiseaseReport
	if err := s.db.Preload("Farmer").
		Order("created_at DESC").Limit(50).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

func (s *DiseaseService) UpdateReportStatus(id uuid.UUID, req *UpdateReportStatusRequest) (*models.DiseaseReport, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("invalid status: %s", req.Status)
	}

	var report models.DiseaseReport
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("report not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.TreatmentRecommendation != "" {
		updates["treatment_recommendation"] = req.TreatmentRecommendation
	}
	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return &report, nil
}
