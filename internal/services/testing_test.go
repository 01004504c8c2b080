// internal/services/testing_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Customer{},
		&models.Communication{},
		&models.Sale{},
		&models.SaleItem{},
		&models.DiseaseReport{},
		&models.Notification{},
		&models.WeatherSnapshot{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		AI: config.AIConfig{
			APIKey:         "test-key",
			BaseURL:        "http://127.0.0.1:0",
			Model:          "test-model",
			TimeoutSeconds: 2,
		},
		Weather: config.WeatherConfig{
			APIKey:         "test-key",
			BaseURL:        "http://127.0.0.1:0",
			TimeoutSeconds: 2,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		FullName: "Test User",
		UserType: userType,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestItem(t *testing.T, db *gorm.DB, agrovetID uuid.UUID, name string, quantity int, price float64) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		AgrovetID:    agrovetID,
		ProductName:  name,
		Quantity:     quantity,
		Unit:         "kg",
		Price:        price,
		ReorderLevel: 10,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
