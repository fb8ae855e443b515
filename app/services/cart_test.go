package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/http"
	"github.com/shashiranjanraj/swaad/pkg/testkit"
)

const backendBase = "https://backend.test"

func install(t *testing.T) *testkit.MockTransport {
	t.Helper()
	mt := testkit.NewMockTransport()
	http.DefaultClient.Transport = mt
	t.Cleanup(http.ResetTransport)
	return mt
}

func TestAddToCart_RejectsQuantityBelowOneWithoutNetwork(t *testing.T) {
	mt := install(t)
	client := services.NewClient(backendBase)

	for _, qty := range []int{0, -3} {
		_, err := client.AddToCart(context.Background(), "tok", "p1", qty)
		assert.ErrorIs(t, err, services.ErrQuantityTooLow)
	}

	assert.Empty(t, mt.Requests(), "invalid quantity must not reach the backend")
}

func TestAddToCart_AnswersWithRefetchedCart(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/cart/add", 200, `{"message":"added"}`)
	mt.Stub("GET", "/api/cart", 200, `{"items":[
		{"product":{"_id":"p1","name":"Masala Dosa","price":120},"quantity":2}
	]}`)

	client := services.NewClient(backendBase)
	cart, err := client.AddToCart(context.Background(), "tok", "p1", 2)
	require.NoError(t, err)

	// The returned cart is exactly the refetched payload, not a local edit.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].Product.ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.Count())

	mt.AssertAllCalled(t)
	for _, req := range mt.Requests() {
		assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"), req.URL)
	}
}

func TestUpdateCart_RejectsQuantityBelowOne(t *testing.T) {
	mt := install(t)
	client := services.NewClient(backendBase)

	_, err := client.UpdateCart(context.Background(), "tok", "p1", 0)
	assert.ErrorIs(t, err, services.ErrQuantityTooLow)
	assert.Empty(t, mt.Requests())
}

func TestRemoveFromCart_Refetches(t *testing.T) {
	mt := install(t)
	mt.Stub("DELETE", "/api/cart/remove/p1", 200, `{"message":"removed"}`)
	mt.Stub("GET", "/api/cart", 200, `{"items":[]}`)

	client := services.NewClient(backendBase)
	cart, err := client.RemoveFromCart(context.Background(), "tok", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Count())
	mt.AssertAllCalled(t)
}

func TestCart_UnauthorizedMapsToSentinel(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/cart", 401, `{"message":"jwt expired"}`)

	client := services.NewClient(backendBase)
	_, err := client.Cart(context.Background(), "stale")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestCart_SkipsDeletedProducts(t *testing.T) {
	mt := install(t)
	mt.Stub("GET", "/api/cart", 200, `{"items":[
		{"product":null,"quantity":3},
		{"product":{"_id":"p2","name":"Chai","price":30},"quantity":1}
	]}`)

	client := services.NewClient(backendBase)
	cart, err := client.Cart(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, 1, cart.Count())
	assert.Equal(t, "30", cart.Total().String())
}
