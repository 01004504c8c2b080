// internal/services/customer_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

func TestCustomerLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)

	customer, err := svc.CreateCustomer(agrovet.ID, &CreateCustomerRequest{
		Name:  "Mary Atieno",
		Phone: "+254700000001",
	})
	require.NoError(t, err)

	newName := "Mary A. Otieno"
	updated, err := svc.UpdateCustomer(customer.ID, agrovet.ID, &UpdateCustomerRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	require.NoError(t, svc.DeleteCustomer(customer.ID, agrovet.ID))

	_, err = svc.GetCustomer(customer.ID, agrovet.ID)
	assert.Error(t, err)
}

func TestCustomerOwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db)

	owner := createTestUser(t, db, "owner@example.com", models.UserTypeAgrovet)
	other := createTestUser(t, db, "other@example.com", models.UserTypeAgrovet)

	customer, err := svc.CreateCustomer(owner.ID, &CreateCustomerRequest{Name: "Private Customer"})
	require.NoError(t, err)

	_, err = svc.GetCustomer(customer.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteCustomer(customer.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCustomerDetailIncludesHistory(t *testing.T) {
	db := setupTestDB(t)
	customers := NewCustomerService(db)
	sales := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Feed Supplement", 20, 11.0)

	customer, err := customers.CreateCustomer(agrovet.ID, &CreateCustomerRequest{Name: "Repeat Buyer"})
	require.NoError(t, err)

	followUp := time.Now().Add(72 * time.Hour)
	_, err = customers.AddCommunication(customer.ID, agrovet.ID, &CreateCommunicationRequest{
		CommunicationType: "call",
		Message:           "Asked about vaccine availability",
		FollowUpDate:      &followUp,
	})
	require.NoError(t, err)

	_, err = sales.Checkout(agrovet.ID, &CheckoutRequest{
		Items:      []CartLine{{ItemID: item.ID, Quantity: 2}},
		CustomerID: &customer.ID,
	})
	require.NoError(t, err)

	detail, err := customers.GetCustomer(customer.ID, agrovet.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Communications, 1)
	assert.Len(t, detail.Sales, 1)
	assert.Equal(t, 22.0, detail.Customer.TotalPurchases)
}

func TestDeleteCustomerKeepsSales(t *testing.T) {
	db := setupTestDB(t)
	customers := NewCustomerService(db)
	sales := NewSaleService(db, nil)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	item := createTestItem(t, db, agrovet.ID, "Dewormer", 20, 6.0)

	customer, err := customers.CreateCustomer(agrovet.ID, &CreateCustomerRequest{Name: "Departed"})
	require.NoError(t, err)

	result, err := sales.Checkout(agrovet.ID, &CheckoutRequest{
		Items:      []CartLine{{ItemID: item.ID, Quantity: 1}},
		CustomerID: &customer.ID,
	})
	require.NoError(t, err)

	require.NoError(t, customers.DeleteCustomer(customer.ID, agrovet.ID))

	var sale models.Sale
	require.NoError(t, db.First(&sale, "id = ?", result.SaleID).Error)
	assert.Nil(t, sale.CustomerID)
}

func TestListCustomersSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCustomerService(db)

	agrovet := createTestUser(t, db, "shop@example.com", models.UserTypeAgrovet)
	for _, name := range []string{"Grace Njeri", "Peter Njoroge", "Samuel Kiprop"} {
		_, err := svc.CreateCustomer(agrovet.ID, &CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	results, total, err := svc.ListCustomers(agrovet.ID, utils.PaginationParams{
		Page: 1, Limit: 20, Search: "nj",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, results, 2)
}
