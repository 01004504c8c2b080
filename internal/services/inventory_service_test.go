// internal/services/inventory_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)

	item, err := svc.CreateItem(agrovet.ID, &CreateInventoryItemRequest{
		ProductName: "CAN Fertilizer",
		Category:    "fertilizer",
		Quantity:    100,
		Unit:        "bag",
		Price:       45.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, item.ReorderLevel)

	got, err := svc.GetItem(item.ID, agrovet.ID)
	require.NoError(t, err)
	assert.Equal(t, "CAN Fertilizer", got.ProductName)
}

func TestGetItemOwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	owner := createTestUser(t, db, "owner@example.com", models.UserTypeAgrovet)
	other := createTestUser(t, db, "other@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, owner.ID, "Fungicide", 30, 15.0)

	_, err := svc.GetItem(item.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestListItemsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	owner := createTestUser(t, db, "owner@example.com", models.UserTypeAgrovet)
	other := createTestUser(t, db, "other@example.com", models.UserTypeAgrovet)
	createTestItem(t, db, owner.ID, "Item One", 10, 1.0)
	createTestItem(t, db, owner.ID, "Item Two", 10, 1.0)
	createTestItem(t, db, other.ID, "Foreign Item", 10, 1.0)

	items, total, err := svc.ListItems(owner.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestListItemsSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	createTestItem(t, db, agrovet.ID, "Hybrid Maize Seed", 10, 5.0)
	createTestItem(t, db, agrovet.ID, "Bean Seed", 10, 3.0)
	createTestItem(t, db, agrovet.ID, "Sprayer", 5, 30.0)

	items, total, err := svc.ListItems(agrovet.ID, utils.PaginationParams{
		Page: 1, Limit: 20, Search: "seed",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}

func TestListLowStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	createTestItem(t, db, agrovet.ID, "Plenty", 50, 1.0)
	createTestItem(t, db, agrovet.ID, "Scarce", 3, 1.0)

	items, err := svc.ListLowStock(agrovet.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Scarce", items[0].ProductName)
}

func TestUpdateItemPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Old Name", 10, 5.0)

	newQty := 25
	newPrice := 6.5
	updated, err := svc.UpdateItem(item.ID, agrovet.ID, &UpdateInventoryItemRequest{
		Quantity: &newQty,
		Price:    &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)
	assert.Equal(t, 6.5, updated.Price)
	assert.Equal(t, "Old Name", updated.ProductName)
}

func TestDeleteItemKeepsSaleHistory(t *testing.T) {
	db := setupTestDB(t)
	inventory := NewInventoryService(db)
	sales := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Discontinued", 10, 9.0)

	result, err := sales.Checkout(agrovet.ID, &CheckoutRequest{
		Items: []CartLine{{ItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, inventory.DeleteItem(item.ID, agrovet.ID))

	_, err = inventory.GetItem(item.ID, agrovet.ID)
	assert.Error(t, err)

	// The sale still carries the snapshot line.
	var sale models.Sale
	require.NoError(t, db.Preload("Items").First(&sale, "id = ?", result.SaleID).Error)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Discontinued", sale.Items[0].ProductName)
}
