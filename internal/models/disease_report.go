// internal/models/disease_report.go
package models

import (
	"github.com/google/uuid"
)

type DiseaseReport struct {
	BaseModel
	FarmerID                uuid.UUID    `json:"farmer_id" gorm:"type:uuid;not null;index"`
	PlantImage              string       `json:"plant_image" gorm:"size:255"`
	PlantDescription        string       `json:"plant_description" gorm:"type:text"`
	DiseaseDetected         string       `json:"disease_detected" gorm:"type:text"`
	Confidence              *float64     `json:"confidence"`
	TreatmentRecommendation string       `json:"treatment_recommendation" gorm:"type:text"`
	Location                string       `json:"location" gorm:"size:200"`
	Latitude                *float64     `json:"latitude"`
	Longitude               *float64     `json:"longitude"`
	Status                  ReportStatus `json:"status" gorm:"type:varchar(50);default:'pending';index"`

	Farmer User `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
}
