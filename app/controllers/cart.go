package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

type CartController struct {
	backend *services.Client
}

func NewCartController(backend *services.Client) *CartController {
	return &CartController{backend: backend}
}

// lineInput is the add/update form payload. Quantity is gated at one both
// here and in the service so a zero or negative value never goes upstream.
type lineInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,gte=1"`
}

func (c *CartController) respond(w http.ResponseWriter, r *http.Request, cart *models.Cart) {
	response.Success(w, map[string]interface{}{
		"cart":  cart,
		"count": cart.Count(),
		"total": cart.Total(),
	})
}

// Show renders the cart page from a fresh backend fetch.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	cart, err := c.backend.Cart(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	c.respond(w, r, cart)
}

// Add puts a product in the cart and answers with the refetched cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in lineInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.backend.AddToCart(r.Context(), services.Token(r), in.ProductID, in.Quantity)
	if err != nil {
		c.failCart(w, r, err)
		return
	}
	c.respond(w, r, cart)
}

// Update sets a line's quantity and answers with the refetched cart.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	var in lineInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.backend.UpdateCart(r.Context(), services.Token(r), in.ProductID, in.Quantity)
	if err != nil {
		c.failCart(w, r, err)
		return
	}
	c.respond(w, r, cart)
}

// Remove drops a line and answers with the refetched cart.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		response.Error(w, http.StatusBadRequest, "Missing product ID")
		return
	}

	cart, err := c.backend.RemoveFromCart(r.Context(), services.Token(r), productID)
	if err != nil {
		c.failCart(w, r, err)
		return
	}
	c.respond(w, r, cart)
}

func (c *CartController) failCart(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrQuantityTooLow) {
		response.ValidationError(w, map[string]string{
			"quantity": "The quantity must be at least 1.",
		})
		return
	}
	fail(w, r, err)
}
