package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/collection"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

type AdminOrdersController struct {
	backend *services.Client
}

func NewAdminOrdersController(backend *services.Client) *AdminOrdersController {
	return &AdminOrdersController{backend: backend}
}

// Index renders the order dashboard: every order plus the revenue and
// status aggregates the backend computes.
func (c *AdminOrdersController) Index(w http.ResponseWriter, r *http.Request) {
	reply, err := c.backend.AdminOrders(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}

	stats := reply.Stats
	if stats == nil {
		// Older backend versions omit the aggregate block; compute it from
		// the order list so the dashboard renders either way.
		stats = localStats(reply.Orders)
	}

	response.Success(w, map[string]interface{}{
		"orders":          reply.Orders,
		"stats":           stats,
		"orderStatuses":   models.OrderStatuses,
		"paymentStatuses": models.PaymentStatuses,
	})
}

// UpdateStatus patches an order's status pair and answers with the
// refetched order, so the console shows what the backend stored rather
// than what the form sent.
func (c *AdminOrdersController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in services.OrderStatusInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.backend.UpdateOrderStatus(r.Context(), services.Token(r), chi.URLParam(r, "orderId"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"order": order})
}

func localStats(orders []models.Order) *models.OrderStats {
	return &models.OrderStats{
		TotalOrders: len(orders),
		TotalRevenue: collection.Reduce(orders, decimal.Zero,
			func(sum decimal.Decimal, o models.Order) decimal.Decimal {
				if o.PaymentStatus != "Paid" {
					return sum
				}
				return sum.Add(o.Total)
			}),
		OrdersByStatus:        collection.CountBy(orders, func(o models.Order) string { return o.OrderStatus }),
		OrdersByPaymentMethod: collection.CountBy(orders, func(o models.Order) string { return o.PaymentMethod }),
	}
}
