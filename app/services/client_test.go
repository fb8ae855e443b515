package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/app/services"
)

func TestProducts_DecodesBareArray(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/products", 200, `[
		{"_id":"p1","name":"Idli","price":60,"category":"Breakfast","isAvailable":true},
		{"_id":"p2","name":"Biryani","price":240,"category":"Lunch","isAvailable":false}
	]`)

	products, err := services.NewClient(backendBase).Products(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Idli", products[0].Name)
	assert.False(t, products[1].IsAvailable)
}

func TestProducts_CategoryFilterIsQueryEscaped(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/products?category=Breakfast", 200, `[]`)

	_, err := services.NewClient(backendBase).Products(context.Background(), "Breakfast")
	require.NoError(t, err)
	mt.AssertAllCalled(t)
}

func TestBackendError_MessagePassesThrough(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/products", 500, `{"message":"database down"}`)

	_, err := services.NewClient(backendBase).Products(context.Background(), "")

	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "database down", apiErr.Message)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/login", 200, `{
		"status":"success",
		"token":"jwt-abc",
		"user":{"_id":"u1","firstName":"Asha","lastName":"Rao","email":"asha@example.com","role":"user"}
	}`)

	token, user, err := services.NewClient(backendBase).Login(context.Background(), services.LoginInput{
		Email:    "asha@example.com",
		Password: "secret99",
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	require.NotNil(t, user)
	assert.Equal(t, "Asha", user.FirstName)
	assert.False(t, user.IsAdmin())
}

func TestUpdateOrderStatus_RefetchesOrder(t *testing.T) {
	mt := install(t)
	mt.Stub("PATCH", "/api/admin/orders/o-1", 200, `{"success":true}`)
	mt.Stub("GET", "/api/order/o-1", 200, `{"order":{"_id":"o-1","orderStatus":"Shipped","paymentStatus":"Paid"}}`)

	order, err := services.NewClient(backendBase).UpdateOrderStatus(
		context.Background(), "tok", "o-1",
		services.OrderStatusInput{OrderStatus: "Shipped", PaymentStatus: "Paid"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", order.OrderStatus)
	assert.Equal(t, "Paid", order.PaymentStatus)
	mt.AssertAllCalled(t)
}

func TestAdminProducts_DecodesBothShapes(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/admin/products", 200, `{"products":[{"_id":"p1","name":"Idli"}]}`)

	client := services.NewClient(backendBase)
	products, err := client.AdminProducts(context.Background(), "tok", "")
	require.NoError(t, err)
	require.Len(t, products, 1)

	mt2 := install(t)
	mt2.Stub("GET", "/api/admin/products", 200, `[{"_id":"p1","name":"Idli"},{"_id":"p2","name":"Dosa"}]`)

	products, err = client.AdminProducts(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
