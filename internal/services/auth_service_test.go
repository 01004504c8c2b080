// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	return NewAuthService(setupTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "farmer@example.com",
		Password: "growmaize123",
		FullName: "John Mwangi",
		UserType: models.UserTypeFarmer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.UserTypeFarmer, resp.User.UserType)

	login, err := svc.Login(&LoginRequest{
		Email:    "farmer@example.com",
		Password: "growmaize123",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := &RegisterRequest{
		Email:    "dup@example.com",
		Password: "growmaize123",
		FullName: "First User",
		UserType: models.UserTypeAgrovet,
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.Error(t, err)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{
		Email:    "bad@example.com",
		Password: "growmaize123",
		FullName: "Bad Role",
		UserType: "superadmin",
	})
	require.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{
		Email:    "farmer@example.com",
		Password: "growmaize123",
		FullName: "John Mwangi",
		UserType: models.UserTypeFarmer,
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{
		Email:    "farmer@example.com",
		Password: "wrongpass99",
	})
	require.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "refresh@example.com",
		Password: "growmaize123",
		FullName: "Refresh User",
		UserType: models.UserTypeFarmer,
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "profile@example.com",
		Password: "growmaize123",
		FullName: "Before Name",
		UserType: models.UserTypeFarmer,
	})
	require.NoError(t, err)

	user, err := svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		FullName: "After Name",
		Location: "Nakuru",
	})
	require.NoError(t, err)
	assert.Equal(t, "After Name", user.FullName)
	assert.Equal(t, models.UserTypeFarmer, user.UserType)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	auth := NewAuthService(db, cfg)
	sales := NewSaleService(db, nil)

	resp, err := auth.Register(&RegisterRequest{
		Email:    "gone@example.com",
		Password: "growmaize123",
		FullName: "Leaving Shop",
		UserType: models.UserTypeAgrovet,
	})
	require.NoError(t, err)
	agrovetID := resp.User.ID

	item := createTestItem(t, db, agrovetID, "Stocked Item", 10, 5.0)
	customer := &models.Customer{AgrovetID: agrovetID, Name: "Loyal Customer"}
	require.NoError(t, db.Create(customer).Error)

	_, err = sales.Checkout(agrovetID, &CheckoutRequest{
		Items:      []CartLine{{ItemID: item.ID, Quantity: 1}},
		CustomerID: &customer.ID,
	})
	require.NoError(t, err)

	require.NoError(t, auth.DeleteAccount(agrovetID))

	for model, name := range map[interface{}]string{
		&models.InventoryItem{}: "inventory",
		&models.Customer{}:      "customers",
		&models.Sale{}:          "sales",
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("agrovet_id = ?", agrovetID).Count(&count).Error)
		assert.Zero(t, count, name)
	}

	_, err = auth.GetUserByID(agrovetID)
	assert.Error(t, err)
}

func TestListAgrovets(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	createTestUser(t, db, "shop1@example.com", models.UserTypeAgrovet)
	createTestUser(t, db, "shop2@example.com", models.UserTypeAgrovet)
	createTestUser(t, db, "farmer@example.com", models.UserTypeFarmer)

	agrovets, err := svc.ListAgrovets()
	require.NoError(t, err)
	assert.Len(t, agrovets, 2)
}
