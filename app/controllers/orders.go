package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/sse"
	"github.com/shashiranjanraj/swaad/pkg/ws"
)

// trackInterval is how often the live tracking socket polls the backend.
const trackInterval = 5 * time.Second

type OrdersController struct {
	backend *services.Client
}

func NewOrdersController(backend *services.Client) *OrdersController {
	return &OrdersController{backend: backend}
}

// History lists the signed-in user's orders, newest first as the backend
// returns them.
func (c *OrdersController) History(w http.ResponseWriter, r *http.Request) {
	orders, err := c.backend.MyOrders(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"orders": orders})
}

// Show renders one order: the confirmation page right after checkout and
// the order detail page from history. Card orders also surface the
// processor-side payment state.
func (c *OrdersController) Show(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	token := services.Token(r)

	order, err := c.backend.Order(r.Context(), token, orderID)
	if err != nil {
		fail(w, r, err)
		return
	}
	if order == nil {
		response.NotFound(w)
		return
	}

	body := map[string]interface{}{"order": order}
	if order.PaymentMethod == models.MethodCard && order.PaymentStatus != "Paid" {
		// Best effort: the page still renders when the processor lookup
		// fails, just without the live payment state.
		if status, err := c.backend.PaymentIntentStatus(r.Context(), token, orderID); err == nil {
			body["paymentIntentStatus"] = status
		}
	}
	response.Success(w, body)
}

// Track streams the order's status over WebSocket until it is delivered or
// cancelled. Browsers that cannot open a socket use TrackSSE instead.
func (c *OrdersController) Track(w http.ResponseWriter, r *http.Request) {
	ws.Stream(w, r, trackInterval, c.statusFetcher(r)) //nolint:errcheck
}

// TrackSSE is the Server-Sent Events fallback for Track, pushing the same
// payloads as "status" events.
func (c *OrdersController) TrackSSE(w http.ResponseWriter, r *http.Request) {
	sse.Poll(w, r, trackInterval, "status", c.statusFetcher(r)) //nolint:errcheck
}

// statusFetcher builds the polling closure both tracking transports share.
func (c *OrdersController) statusFetcher(r *http.Request) func(ctx context.Context) (interface{}, bool, error) {
	orderID := chi.URLParam(r, "orderId")
	token := services.Token(r)

	return func(ctx context.Context) (interface{}, bool, error) {
		order, err := c.backend.Order(ctx, token, orderID)
		if err != nil {
			return nil, false, err
		}
		if order == nil {
			return nil, false, fmt.Errorf("order %s not found", orderID)
		}
		return map[string]interface{}{
			"orderId":       order.ID,
			"trackingId":    order.TrackingID,
			"orderStatus":   order.OrderStatus,
			"paymentStatus": order.PaymentStatus,
		}, order.Terminal(), nil
	}
}
