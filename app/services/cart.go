package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/http"
)

// ErrQuantityTooLow guards cart mutations: a quantity below one never
// leaves the storefront. Users remove lines explicitly instead.
var ErrQuantityTooLow = errors.New("services: quantity must be at least 1")

// Cart fetches the authoritative server-side cart.
func (c *Client) Cart(ctx context.Context, token string) (*models.Cart, error) {
	resp, err := send("cart.fetch",
		http.Get(c.url("/api/cart")).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := parse(resp, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity of a product, then refetches the cart so the view
// renders exactly what the backend holds.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	resp, err := send("cart.add",
		http.Post(c.url("/api/cart/add")).
			Bearer(token).
			Body(map[string]interface{}{"productId": productID, "quantity": quantity}).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	if err := parse(resp, nil); err != nil {
		return nil, err
	}
	return c.Cart(ctx, token)
}

// UpdateCart sets the quantity of an existing line, then refetches.
func (c *Client) UpdateCart(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	resp, err := send("cart.update",
		http.Put(c.url("/api/cart/update")).
			Bearer(token).
			Body(map[string]interface{}{"productId": productID, "quantity": quantity}).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	if err := parse(resp, nil); err != nil {
		return nil, err
	}
	return c.Cart(ctx, token)
}

// RemoveFromCart deletes a line entirely, then refetches.
func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) (*models.Cart, error) {
	resp, err := send("cart.remove",
		http.Delete(c.url("/api/cart/remove/"+url.PathEscape(productID))).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	if err := parse(resp, nil); err != nil {
		return nil, err
	}
	return c.Cart(ctx, token)
}
