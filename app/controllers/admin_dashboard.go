package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/workerpool"
)

// fanoutPool caps the upstream calls aggregating pages may run at once,
// shared across requests so bursts cannot stampede the backend.
var fanoutPool = workerpool.New(16)

type AdminDashboardController struct {
	backend *services.Client
}

func NewAdminDashboardController(backend *services.Client) *AdminDashboardController {
	return &AdminDashboardController{backend: backend}
}

// Show renders the console landing page. Its three backend calls are
// independent, so they run through the shared pool in parallel; the first
// error wins and the page fails as a whole.
func (c *AdminDashboardController) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := services.Token(r)

	var (
		products []models.Product
		users    []models.User
		orders   *services.AdminOrdersReply
		pErr     error
		uErr     error
		oErr     error
	)

	workerpool.FanOut(fanoutPool,
		func() { products, pErr = c.backend.AdminProducts(ctx, token, "") },
		func() { users, uErr = c.backend.AdminUsers(ctx, token) },
		func() { orders, oErr = c.backend.AdminOrders(ctx, token) },
	)

	for _, err := range []error{pErr, uErr, oErr} {
		if err != nil {
			fail(w, r, err)
			return
		}
	}

	stats := orders.Stats
	if stats == nil {
		stats = localStats(orders.Orders)
	}

	response.Success(w, map[string]interface{}{
		"productCount": len(products),
		"userCount":    len(users),
		"stats":        stats,
	})
}
