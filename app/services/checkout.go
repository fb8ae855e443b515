package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

// Checkout flow states. The flow starts at method selection and only ever
// reaches "placed" through a payment-method specific gate.
const (
	CheckoutSelectingMethod  = "selecting-method"
	CheckoutAwaitingCard     = "awaiting-card-details"
	CheckoutAwaitingWhatsApp = "awaiting-whatsapp-confirmation"
	CheckoutPlaced           = "placed"
)

// Checkout flow errors.
var (
	ErrAddressRequired = errors.New("services: cash on delivery requires a delivery address")
	ErrBadMethod       = errors.New("services: unknown payment method")
	ErrBadTransition   = errors.New("services: action not valid in the current checkout state")
	ErrNoClientSecret  = errors.New("services: backend returned no client secret for card payment")
	ErrNoWhatsAppLink  = errors.New("services: backend returned no whatsapp link")
)

// Checkout is the in-flight checkout, persisted in the session between the
// method-selection request and the payment gate that completes it.
type Checkout struct {
	State        string         `json:"state"`
	Method       string         `json:"method"`
	ClientSecret string         `json:"clientSecret,omitempty"`
	WhatsAppLink string         `json:"whatsappLink,omitempty"`
	OrderID      string         `json:"orderId,omitempty"`
	Lines        []CheckoutLine `json:"lines,omitempty"`
}

// CheckoutService drives the checkout flow against the backend and the
// payment processor.
type CheckoutService struct {
	backend  *Client
	payments *PaymentClient
}

// NewCheckoutService wires the two upstream clients into one flow.
func NewCheckoutService(backend *Client, payments *PaymentClient) *CheckoutService {
	return &CheckoutService{backend: backend, payments: payments}
}

// Begin starts checkout with the chosen method. On any failure the returned
// checkout is back at method selection, never stuck half-placed.
//
// Cash on delivery requires a delivery address and is rejected before any
// network call when it is missing. Card requires the backend to hand back a
// client secret, whatsapp a confirmation link; a reply missing its gate
// value is treated as a failed checkout.
func (s *CheckoutService) Begin(ctx context.Context, token, method string, address *models.DeliveryAddress) (*Checkout, error) {
	co := &Checkout{State: CheckoutSelectingMethod, Method: method}

	switch method {
	case models.MethodCard, models.MethodWhatsApp:
	case models.MethodCOD:
		if address == nil {
			return co, ErrAddressRequired
		}
	default:
		return co, ErrBadMethod
	}

	reply, err := s.backend.PlaceOrder(ctx, token, method, address)
	if err != nil {
		return co, err
	}

	switch method {
	case models.MethodCard:
		if reply.ClientSecret == "" {
			return co, ErrNoClientSecret
		}
		co.State = CheckoutAwaitingCard
		co.ClientSecret = reply.ClientSecret
		co.OrderID = reply.OrderID
		co.Lines = reply.Products

	case models.MethodWhatsApp:
		if reply.WhatsAppLink == "" {
			return co, ErrNoWhatsAppLink
		}
		co.State = CheckoutAwaitingWhatsApp
		co.WhatsAppLink = reply.WhatsAppLink
		co.OrderID = reply.OrderID

	case models.MethodCOD:
		co.State = CheckoutPlaced
		co.OrderID = reply.OrderID
	}

	return co, nil
}

// ConfirmCard completes a card checkout with a card token. On a declined
// card the checkout stays at the card form so the user can retry; the
// processor's message comes back as a *PaymentError.
func (s *CheckoutService) ConfirmCard(ctx context.Context, co *Checkout, cardToken string) error {
	if co.State != CheckoutAwaitingCard {
		return ErrBadTransition
	}

	status, err := s.payments.ConfirmCardPayment(ctx, co.ClientSecret, cardToken)
	if err != nil {
		return err
	}
	if status != "succeeded" {
		return &PaymentError{Message: "payment is " + status + ", not completed"}
	}

	co.State = CheckoutPlaced
	return nil
}

// ConfirmWhatsApp completes a whatsapp checkout once the user reports they
// sent the order message.
func (s *CheckoutService) ConfirmWhatsApp(co *Checkout) error {
	if co.State != CheckoutAwaitingWhatsApp {
		return ErrBadTransition
	}
	co.State = CheckoutPlaced
	return nil
}

// ─── Session persistence ─────────────────────────────────────────────────────

const checkoutKey = "checkout"

// SaveCheckout persists the in-flight checkout into the session.
func SaveCheckout(sess *session.Session, co *Checkout) {
	b, err := json.Marshal(co)
	if err != nil {
		return
	}
	sess.Set(checkoutKey, string(b))
}

// LoadCheckout restores the in-flight checkout, or nil when none exists.
func LoadCheckout(sess *session.Session) *Checkout {
	raw, ok := sess.GetString(checkoutKey)
	if !ok {
		return nil
	}
	var co Checkout
	if err := json.Unmarshal([]byte(raw), &co); err != nil {
		return nil
	}
	return &co
}

// ClearCheckout drops the in-flight checkout from the session.
func ClearCheckout(sess *session.Session) {
	sess.Delete(checkoutKey)
}
