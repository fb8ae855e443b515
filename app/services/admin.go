package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/http"
)

// ProductInput is the admin product create/edit form payload.
type ProductInput struct {
	Name        string          `json:"name"        validate:"required,max=120"`
	Description string          `json:"description" validate:"required,max=1000"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	ImageURL    string          `json:"imageUrl"    validate:"required"`
	Category    string          `json:"category"    validate:"required,in=Breakfast,Lunch,Dinner,Snacks,Beverages,Desserts"`
	IsAvailable bool            `json:"isAvailable"`
}

// AdminProducts lists all products, optionally one category. The admin
// endpoint has answered both {"products":[...]} and a bare array across
// backend versions, so both shapes decode.
func (c *Client) AdminProducts(ctx context.Context, token, category string) ([]models.Product, error) {
	endpoint := c.url("/api/admin/products")
	if category != "" {
		endpoint = c.url("/api/admin/products/category/" + url.PathEscape(category))
	}

	resp, err := send("admin.products.list",
		http.Get(endpoint).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := parse(resp, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Products != nil {
		return wrapped.Products, nil
	}
	var bare []models.Product
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// CreateProduct adds a catalog item and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (*models.Product, error) {
	resp, err := send("admin.products.create",
		http.Post(c.url("/api/admin/products")).
			Bearer(token).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// UpdateProduct replaces a catalog item's editable fields.
func (c *Client) UpdateProduct(ctx context.Context, token, productID string, in ProductInput) (*models.Product, error) {
	resp, err := send("admin.products.update",
		http.Put(c.url("/api/admin/products/"+url.PathEscape(productID))).
			Bearer(token).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// ToggleProductAvailability flips the sold-out flag.
func (c *Client) ToggleProductAvailability(ctx context.Context, token, productID string) (*models.Product, error) {
	resp, err := send("admin.products.toggle",
		http.Patch(c.url("/api/admin/products/"+url.PathEscape(productID)+"/toggle-availability")).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	return parseProduct(resp)
}

// DeleteProduct removes a catalog item. Existing order snapshots keep their
// copy of the product; only the live catalog and carts lose it.
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	resp, err := send("admin.products.delete",
		http.Delete(c.url("/api/admin/products/"+url.PathEscape(productID))).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return err
	}
	return parse(resp, nil)
}

func parseProduct(resp *http.Response) (*models.Product, error) {
	var reply struct {
		Product *models.Product `json:"product"`
	}
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return reply.Product, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

// UserInput is the admin user edit form payload.
type UserInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName"  validate:"required,max=50"`
	Email     string `json:"email"     validate:"required,email"`
	Role      string `json:"role"      validate:"required,in=user,admin"`
}

// AdminUsers lists all accounts.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	resp, err := send("admin.users.list",
		http.Get(c.url("/api/admin/users")).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := parse(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser edits an account and returns the stored record.
func (c *Client) UpdateUser(ctx context.Context, token, userID string, in UserInput) (*models.User, error) {
	resp, err := send("admin.users.update",
		http.Put(c.url("/api/admin/users/"+url.PathEscape(userID))).
			Bearer(token).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := parse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	resp, err := send("admin.users.delete",
		http.Delete(c.url("/api/admin/users/"+url.PathEscape(userID))).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return err
	}
	return parse(resp, nil)
}

// ─── Orders ──────────────────────────────────────────────────────────────────

// AdminOrdersReply bundles the order list with the dashboard aggregates.
type AdminOrdersReply struct {
	Orders []models.Order     `json:"orders"`
	Stats  *models.OrderStats `json:"stats"`
}

// AdminOrders lists every order plus the revenue/status aggregates the
// dashboard renders.
func (c *Client) AdminOrders(ctx context.Context, token string) (*AdminOrdersReply, error) {
	resp, err := send("admin.orders.list",
		http.Get(c.url("/api/admin/orders")).
			Bearer(token).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var reply struct {
		Success bool             `json:"success"`
		Data    AdminOrdersReply `json:"data"`
	}
	if err := parse(resp, &reply); err != nil {
		return nil, err
	}
	return &reply.Data, nil
}

// OrderStatusInput carries the two mutable order fields an admin can set.
type OrderStatusInput struct {
	OrderStatus   string `json:"orderStatus"   validate:"required,in=Pending,Processing,Shipped,Delivered,Cancelled"`
	PaymentStatus string `json:"paymentStatus" validate:"required,in=Pending,Paid,Failed"`
}

// UpdateOrderStatus patches an order's status pair, then refetches the
// record so the console shows what the backend actually stored.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, in OrderStatusInput) (*models.Order, error) {
	resp, err := send("admin.orders.update",
		http.Patch(c.url("/api/admin/orders/"+url.PathEscape(orderID))).
			Bearer(token).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}
	if err := parse(resp, nil); err != nil {
		return nil, err
	}
	return c.Order(ctx, token, orderID)
}
