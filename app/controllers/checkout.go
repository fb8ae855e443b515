package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

type CheckoutController struct {
	backend *services.Client
	flow    *services.CheckoutService
}

func NewCheckoutController(backend *services.Client, flow *services.CheckoutService) *CheckoutController {
	return &CheckoutController{backend: backend, flow: flow}
}

// addressInput mirrors the delivery address form. Only cash on delivery
// sends it; the whole block is optional for the other methods.
type addressInput struct {
	Street      string `json:"street"      validate:"required,min=3,max=200"`
	City        string `json:"city"        validate:"required,max=100"`
	State       string `json:"state"       validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,digits=10"`
	ZipCode     string `json:"zipCode"     validate:"nullable,digits=6"`
}

type beginInput struct {
	PaymentMethod   string        `json:"paymentMethod" validate:"required,in=card,whatsapp,cod"`
	DeliveryAddress *addressInput `json:"deliveryAddress"`
}

// Show renders the checkout page: current flow state plus a fresh cart so
// the order summary always matches the backend.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	cart, err := c.backend.Cart(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}

	sess := session.FromCtx(r)
	co := services.LoadCheckout(sess)
	if co == nil {
		co = &services.Checkout{State: services.CheckoutSelectingMethod}
	}

	response.Success(w, map[string]interface{}{
		"checkout": co,
		"cart":     cart,
		"total":    cart.Total(),
		"methods":  []string{models.MethodCard, models.MethodWhatsApp, models.MethodCOD},
	})
}

// Begin starts checkout with the chosen method. Cash on delivery validates
// the address form before anything leaves the storefront; a missing or
// invalid address never costs a backend round trip.
func (c *CheckoutController) Begin(w http.ResponseWriter, r *http.Request) {
	var in beginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	var address *models.DeliveryAddress
	if in.PaymentMethod == models.MethodCOD {
		if in.DeliveryAddress == nil {
			response.ValidationError(w, map[string]string{
				"deliveryAddress": "A delivery address is required for cash on delivery.",
			})
			return
		}
		if errs := bind.Validate(in.DeliveryAddress); len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}
		address = &models.DeliveryAddress{
			Street:      in.DeliveryAddress.Street,
			City:        in.DeliveryAddress.City,
			State:       in.DeliveryAddress.State,
			PhoneNumber: in.DeliveryAddress.PhoneNumber,
			ZipCode:     in.DeliveryAddress.ZipCode,
		}
	}

	sess := session.FromCtx(r)
	co, err := c.flow.Begin(r.Context(), services.Token(r), in.PaymentMethod, address)
	if err != nil {
		// A failed start leaves nothing in the session to resume.
		services.ClearCheckout(sess)
		c.saveSession(w, r, sess)
		c.failCheckout(w, r, err)
		return
	}

	services.SaveCheckout(sess, co)
	c.saveSession(w, r, sess)

	if co.State == services.CheckoutPlaced {
		c.finish(w, r, sess, co)
		return
	}
	response.Success(w, map[string]interface{}{"checkout": co})
}

// ConfirmCard completes a card checkout with the card token minted in the
// browser. A decline keeps the card form up with the processor's message.
func (c *CheckoutController) ConfirmCard(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CardToken string `json:"cardToken" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	sess := session.FromCtx(r)
	co := services.LoadCheckout(sess)
	if co == nil {
		response.Error(w, http.StatusConflict, "No checkout in progress.")
		return
	}

	if err := c.flow.ConfirmCard(r.Context(), co, in.CardToken); err != nil {
		c.failCheckout(w, r, err)
		return
	}

	c.finish(w, r, sess, co)
}

// ConfirmWhatsApp completes a whatsapp checkout after the customer reports
// sending the order message.
func (c *CheckoutController) ConfirmWhatsApp(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	co := services.LoadCheckout(sess)
	if co == nil {
		response.Error(w, http.StatusConflict, "No checkout in progress.")
		return
	}

	if err := c.flow.ConfirmWhatsApp(co); err != nil {
		c.failCheckout(w, r, err)
		return
	}

	c.finish(w, r, sess, co)
}

// Cancel abandons the in-flight checkout and returns to method selection.
// The backend order, if one was created, stays Pending for admins to see.
func (c *CheckoutController) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	services.ClearCheckout(sess)
	c.saveSession(w, r, sess)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// finish clears the flow from the session and sends the browser to the
// confirmation page.
func (c *CheckoutController) finish(w http.ResponseWriter, r *http.Request, sess *session.Session, co *services.Checkout) {
	services.ClearCheckout(sess)
	c.saveSession(w, r, sess)

	target := "/orders"
	if co.OrderID != "" {
		target = "/orders/" + co.OrderID
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (c *CheckoutController) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
	}
}

func (c *CheckoutController) failCheckout(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrAddressRequired):
		response.ValidationError(w, map[string]string{
			"deliveryAddress": "A delivery address is required for cash on delivery.",
		})
	case errors.Is(err, services.ErrBadMethod):
		response.ValidationError(w, map[string]string{
			"paymentMethod": "The selected paymentMethod is invalid.",
		})
	case errors.Is(err, services.ErrBadTransition):
		response.Error(w, http.StatusConflict, "That step is not available right now.")
	case errors.Is(err, services.ErrNoClientSecret), errors.Is(err, services.ErrNoWhatsAppLink):
		logger.WithCtx(r.Context()).Error("checkout reply missing gate value", "error", err)
		response.Error(w, http.StatusBadGateway, "Checkout failed. Please try again.")
	default:
		fail(w, r, err)
	}
}
