// internal/services/sale_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
)

func TestCheckoutDecrementsStockAndRecordsSale(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, NewNotificationService(db))

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "DAP Fertilizer", 20, 10.0)

	result, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.TotalAmount)
	assert.Contains(t, result.ReceiptNumber, "RCP")

	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	assert.Equal(t, 15, updated.Quantity)

	var sale models.Sale
	require.NoError(t, db.Preload("Items").First(&sale, "id = ?", result.SaleID).Error)
	assert.Equal(t, models.SaleStatusCompleted, sale.Status)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "DAP Fertilizer", sale.Items[0].ProductName)
	assert.Equal(t, 5, sale.Items[0].Quantity)
	assert.Equal(t, 50.0, sale.Items[0].Subtotal)
}

func TestCheckoutInsufficientStockRejectsWholeCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Maize Seed", 20, 4.0)

	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 25}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was touched.
	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	assert.Equal(t, 20, updated.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutOneBadLineFailsEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	good := createTestItem(t, db, agrovet.ID, "Herbicide", 50, 12.5)

	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{
			{ItemID: good.ID, Quantity: 2},
			{ItemID: uuid.New(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownItem)

	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", good.ID).Error)
	assert.Equal(t, 50, updated.Quantity)
}

func TestCheckoutForeignItemRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	owner := createTestUser(t, db, "owner@example.com", models.UserTypeAgrovet)
	other := createTestUser(t, db, "other@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, owner.ID, "Pesticide", 30, 8.0)

	_, err := svc.Checkout(other.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)

	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{Items: []CartLine{}})
	require.Error(t, err)
}

func TestCheckoutSubtotalsSumToTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	a := createTestItem(t, db, agrovet.ID, "Item A", 100, 3.5)
	b := createTestItem(t, db, agrovet.ID, "Item B", 100, 7.25)

	result, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{
			{ItemID: a.ID, Quantity: 4},
			{ItemID: b.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	var sale models.Sale
	require.NoError(t, db.Preload("Items").First(&sale, "id = ?", result.SaleID).Error)

	var sum float64
	for _, line := range sale.Items {
		sum += line.Subtotal
	}
	assert.Equal(t, sale.TotalAmount, sum)
	assert.Equal(t, 4*3.5+2*7.25, sale.TotalAmount)
}

func TestCheckoutSequentialCompetingCarts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Foliar Feed", 20, 5.0)

	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 15}},
	})
	require.NoError(t, err)

	_, err = svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 15}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCheckoutUpdatesCustomerTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Animal Feed", 40, 20.0)

	customer := &models.Customer{AgrovetID: agrovet.ID, Name: "Jane Wanjiku"}
	require.NoError(t, db.Create(customer).Error)

	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items:      []CartLine{{ItemID: item.ID, Quantity: 3}},
		CustomerID: &customer.ID,
	})
	require.NoError(t, err)

	var updated models.Customer
	require.NoError(t, db.First(&updated, "id = ?", customer.ID).Error)
	assert.Equal(t, 60.0, updated.TotalPurchases)
	require.NotNil(t, updated.LastPurchase)
}

func TestCheckoutLowStockNotification(t *testing.T) {
	db := setupTestDB(t)
	notifications := NewNotificationService(db)
	svc := NewSaleService(db, notifications)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Lime", 12, 2.0)

	// 12 -> 8 crosses the reorder level of 10.
	_, err := svc.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	var notes []models.Notification
	require.NoError(t, db.Where("user_id = ?", agrovet.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeLowStock, notes[0].NotificationType)
	assert.Contains(t, notes[0].Message, "Lime")
}

func TestGetSaleOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(db, nil)

	owner := createTestUser(t, db, "owner@example.com", models.UserTypeAgrovet)
	other := createTestUser(t, db, "other@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, owner.ID, "Seedlings", 10, 1.0)

	result, err := svc.Checkout(owner.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetSale(result.SaleID, owner.ID)
	assert.NoError(t, err)

	_, err = svc.GetSale(result.SaleID, other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}
