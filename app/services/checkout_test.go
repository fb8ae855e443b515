package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
)

const paymentBase = "https://payments.test"

func newFlow() *services.CheckoutService {
	return services.NewCheckoutService(
		services.NewClient(backendBase),
		services.NewPaymentClient(paymentBase, "pk_test_123"),
	)
}

func anAddress() *models.DeliveryAddress {
	return &models.DeliveryAddress{
		Street:      "12 MG Road",
		City:        "Bengaluru",
		State:       "Karnataka",
		PhoneNumber: "9876543210",
	}
}

func TestBegin_CODWithoutAddressNeverCallsBackend(t *testing.T) {
	mt := install(t)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodCOD, nil)
	assert.ErrorIs(t, err, services.ErrAddressRequired)
	assert.Equal(t, services.CheckoutSelectingMethod, co.State)
	assert.Empty(t, mt.Requests(), "the address gate must fire before any network call")
}

func TestBegin_CODPlacesOrder(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 200, `{"message":"Order placed","orderId":"o-77"}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodCOD, anAddress())
	require.NoError(t, err)
	assert.Equal(t, services.CheckoutPlaced, co.State)
	assert.Equal(t, "o-77", co.OrderID)
}

func TestBegin_UnknownMethodRejectedLocally(t *testing.T) {
	mt := install(t)

	co, err := newFlow().Begin(context.Background(), "tok", "paypal", nil)
	assert.ErrorIs(t, err, services.ErrBadMethod)
	assert.Equal(t, services.CheckoutSelectingMethod, co.State)
	assert.Empty(t, mt.Requests())
}

func TestBegin_CardRequiresClientSecret(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 200, `{"message":"ok"}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodCard, nil)
	assert.ErrorIs(t, err, services.ErrNoClientSecret)
	assert.Equal(t, services.CheckoutSelectingMethod, co.State,
		"a reply without a client secret must leave checkout at method selection")
}

func TestBegin_CardAdvancesToCardForm(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 200, `{
		"message":"ok",
		"clientSecret":"pi_123_secret_456",
		"products":[{"name":"Masala Dosa","price":120,"quantity":2}]
	}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodCard, nil)
	require.NoError(t, err)
	assert.Equal(t, services.CheckoutAwaitingCard, co.State)
	assert.Equal(t, "pi_123_secret_456", co.ClientSecret)
	require.Len(t, co.Lines, 1)
	assert.Equal(t, "Masala Dosa", co.Lines[0].Name)
}

func TestBegin_WhatsAppRequiresLink(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 200, `{"message":"ok"}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodWhatsApp, nil)
	assert.ErrorIs(t, err, services.ErrNoWhatsAppLink)
	assert.Equal(t, services.CheckoutSelectingMethod, co.State)
}

func TestBegin_WhatsAppAdvancesWithLink(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 200, `{"message":"ok","whatsappLink":"https://wa.me/911234567890?text=order"}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodWhatsApp, nil)
	require.NoError(t, err)
	assert.Equal(t, services.CheckoutAwaitingWhatsApp, co.State)
	assert.NotEmpty(t, co.WhatsAppLink)
}

func TestConfirmCard_SucceededPlacesOrder(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/v1/payment_intents/pi_123/confirm", 200, `{"status":"succeeded"}`)

	co := &services.Checkout{
		State:        services.CheckoutAwaitingCard,
		Method:       models.MethodCard,
		ClientSecret: "pi_123_secret_456",
	}
	require.NoError(t, newFlow().ConfirmCard(context.Background(), co, "tok_visa"))
	assert.Equal(t, services.CheckoutPlaced, co.State)
	mt.AssertAllCalled(t)
}

func TestConfirmCard_DeclineKeepsCardFormUp(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/v1/payment_intents/pi_123/confirm", 402, `{"error":{"message":"Your card was declined."}}`)

	co := &services.Checkout{
		State:        services.CheckoutAwaitingCard,
		ClientSecret: "pi_123_secret_456",
	}
	err := newFlow().ConfirmCard(context.Background(), co, "tok_chargeDeclined")

	var payErr *services.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "Your card was declined.", payErr.Message)
	assert.Equal(t, services.CheckoutAwaitingCard, co.State, "a decline must allow retrying with another card")
}

func TestConfirmCard_OnlyValidWhileAwaitingCard(t *testing.T) {
	install(t)

	co := &services.Checkout{State: services.CheckoutSelectingMethod}
	err := newFlow().ConfirmCard(context.Background(), co, "tok_visa")
	assert.ErrorIs(t, err, services.ErrBadTransition)
}

func TestConfirmWhatsApp_Transitions(t *testing.T) {
	co := &services.Checkout{State: services.CheckoutAwaitingWhatsApp}
	require.NoError(t, newFlow().ConfirmWhatsApp(co))
	assert.Equal(t, services.CheckoutPlaced, co.State)

	assert.ErrorIs(t, newFlow().ConfirmWhatsApp(co), services.ErrBadTransition)
}

func TestBegin_BackendFailureRevertsToSelection(t *testing.T) {
	mt := install(t)
	mt.Stub("POST", "/api/order/checkout", 500, `{"message":"cart is empty"}`)

	co, err := newFlow().Begin(context.Background(), "tok", models.MethodCard, nil)
	require.Error(t, err)

	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "cart is empty", apiErr.Message)
	assert.Equal(t, services.CheckoutSelectingMethod, co.State)
}
