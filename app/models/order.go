package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Checkout methods a customer can choose.
const (
	MethodCard     = "card"
	MethodWhatsApp = "whatsapp"
	MethodCOD      = "cod"
)

// Order status enum as the admin console drives it.
var OrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

// Payment status enum.
var PaymentStatuses = []string{"Pending", "Paid", "Failed"}

// DeliveryAddress is captured at checkout for cash-on-delivery orders.
type DeliveryAddress struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	PhoneNumber string `json:"phoneNumber"`
	ZipCode     string `json:"zipCode,omitempty"`
}

// OrderItem is one line of the immutable cart snapshot taken at checkout.
type OrderItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Order is the immutable snapshot created at checkout. Only the two status
// fields change afterwards, via admin transitions.
type Order struct {
	ID              string           `json:"_id"`
	TrackingID      string           `json:"trackingId"`
	Items           []OrderItem      `json:"items"`
	Total           decimal.Decimal  `json:"total"`
	OrderStatus     string           `json:"orderStatus"`
	PaymentStatus   string           `json:"paymentStatus"`
	PaymentMethod   string           `json:"paymentMethod"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Delivered and Cancelled are terminal: live tracking stops there.
func (o *Order) Terminal() bool {
	return o.OrderStatus == "Delivered" || o.OrderStatus == "Cancelled"
}

// OrderStats is the aggregate block the admin orders view renders.
type OrderStats struct {
	TotalOrders           int              `json:"totalOrders"`
	TotalRevenue          decimal.Decimal  `json:"totalRevenue"`
	OrdersByStatus        map[string]int   `json:"ordersByStatus"`
	OrdersByPaymentMethod map[string]int   `json:"ordersByPaymentMethod"`
}
