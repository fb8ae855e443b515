package services

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/http"
)

// CheckoutLine is the receipt line the backend echoes back on card checkout.
type CheckoutLine struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CheckoutReply is the backend's answer to POST /api/order/checkout. Which
// field is populated depends on the chosen payment method.
type CheckoutReply struct {
	Message      string         `json:"message"`
	ClientSecret string         `json:"clientSecret,omitempty"`
	WhatsAppLink string         `json:"whatsappLink,omitempty"`
	OrderID      string         `json:"orderId,omitempty"`
	Products     []CheckoutLine `json:"products,omitempty"`
}

// PlaceOrder starts checkout for the current cart. For card the reply holds
// a payment intent client secret, for whatsapp a confirmation link, for cod
// the created order's ID. The backend snapshots and empties the cart itself.
func (c *Client) PlaceOrder(ctx context.Context, token, method string, address *models.DeliveryAddress) (*CheckoutReply, error) {
	body := map[string]interface{}{"paymentMethod": method}
	if address != nil {
		body["deliveryAddress"] = address
	}

	resp, err := send("order.checkout",
		http.Post(c.url("/api/order/checkout")).
			Bearer(token).
			Body(body).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var reply CheckoutReply
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Order fetches one order by ID for the confirmation and tracking pages.
func (c *Client) Order(ctx context.Context, token, orderID string) (*models.Order, error) {
	resp, err := send("order.fetch",
		http.Get(c.url("/api/order/"+url.PathEscape(orderID))).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var reply struct {
		Order *models.Order `json:"order"`
	}
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return reply.Order, nil
}

// PaymentIntentStatus reports the processor-side state of a card payment,
// used by the confirmation page to show paid/pending.
func (c *Client) PaymentIntentStatus(ctx context.Context, token, orderID string) (string, error) {
	resp, err := send("order.payment_intent",
		http.Get(c.url("/api/order/payment-intent/"+url.PathEscape(orderID))).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return "", err
	}

	var reply struct {
		Status string `json:"status"`
	}
	if err := parse(resp, &reply); err != nil {
		return "", err
	}
	return reply.Status, nil
}

// MyOrders fetches the signed-in user's order history, newest first.
func (c *Client) MyOrders(ctx context.Context, token string) ([]models.Order, error) {
	resp, err := send("order.history",
		http.Get(c.url("/api/user/orders")).
			Retry(2, 300*time.Millisecond).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var reply struct {
		Success bool `json:"success"`
		Data    struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return reply.Data.Orders, nil
}

// Profile fetches the signed-in user's account record.
func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	resp, err := send("user.profile",
		http.Get(c.url("/api/user/profile")).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var reply struct {
		Success bool `json:"success"`
		Data    struct {
			User *models.User `json:"user"`
		} `json:"data"`
	}
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return reply.Data.User, nil
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName"  validate:"required,max=50"`
}

// UpdateProfile changes the user's name, then refetches the record so the
// session cache mirrors what the backend stored.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (*models.User, error) {
	resp, err := send("user.update_profile",
		http.Put(c.url("/api/user/update-profile")).
			Bearer(token).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	if err := parse(resp, nil); err != nil {
		return nil, err
	}
	return c.Profile(ctx, token)
}
