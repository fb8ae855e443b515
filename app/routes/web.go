// Package routes wires every storefront view onto the router.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/swaad/app/controllers"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/config"
	"github.com/shashiranjanraj/swaad/pkg/metrics"
	"github.com/shashiranjanraj/swaad/pkg/middleware"
	"github.com/shashiranjanraj/swaad/pkg/reqid"
	"github.com/shashiranjanraj/swaad/pkg/router"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

// Register builds the full route table. The backend and payment clients are
// injected so tests can point them at stub servers.
func Register(r *router.Router, backend *services.Client, payments *services.PaymentClient) {
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		session.Middleware(session.DefaultOptions()),
	)

	flow := services.NewCheckoutService(backend, payments)

	auth := controllers.NewAuthController(backend)
	catalog := controllers.NewCatalogController(backend)
	cart := controllers.NewCartController(backend)
	checkout := controllers.NewCheckoutController(backend, flow)
	orders := controllers.NewOrdersController(backend)
	profile := controllers.NewProfileController(backend)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// The menu is the landing page and browsable anonymously.
	r.Get("/", "home", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	})
	r.Get("/menu", "catalog.menu", catalog.Menu)

	// Credential endpoints carry a tighter rate limit than the rest of the
	// storefront.
	guest := r.Group("", middleware.RateLimit(20, time.Minute))
	guest.Post("/login", "auth.login", auth.Login)
	guest.Post("/register", "auth.register", auth.Register)
	guest.Post("/forgot-password", "auth.forgot_password", auth.ForgotPassword)
	guest.Post("/reset-password/{token}", "auth.reset_password", auth.ResetPassword)

	r.Post("/logout", "auth.logout", auth.Logout)

	// Everything below needs a signed-in session.
	user := r.Group("", services.RequireUser)

	user.Get("/cart", "cart.show", cart.Show)
	user.Post("/cart/add", "cart.add", cart.Add)
	user.Put("/cart/update", "cart.update", cart.Update)
	user.Delete("/cart/remove/{productId}", "cart.remove", cart.Remove)

	user.Get("/checkout", "checkout.show", checkout.Show)
	user.Post("/checkout", "checkout.begin", checkout.Begin)
	user.Post("/checkout/card", "checkout.confirm_card", checkout.ConfirmCard)
	user.Post("/checkout/whatsapp", "checkout.confirm_whatsapp", checkout.ConfirmWhatsApp)
	user.Post("/checkout/cancel", "checkout.cancel", checkout.Cancel)

	user.Get("/orders", "orders.history", orders.History)
	user.Get("/orders/{orderId}", "orders.show", orders.Show)
	user.Get("/orders/{orderId}/track", "orders.track", orders.Track)
	user.Get("/orders/{orderId}/track/sse", "orders.track_sse", orders.TrackSSE)

	user.Get("/profile", "profile.show", profile.Show)
	user.Put("/profile", "profile.update", profile.Update)
	user.Post("/profile/password", "profile.password", profile.UpdatePassword)

	registerAdmin(r, backend)
}

func registerAdmin(r *router.Router, backend *services.Client) {
	dashboard := controllers.NewAdminDashboardController(backend)
	products := controllers.NewAdminProductsController(backend)
	users := controllers.NewAdminUsersController(backend)
	orders := controllers.NewAdminOrdersController(backend)

	admin := r.Group("/admin", services.RequireAdmin)

	admin.Get("/dashboard", "admin.dashboard", dashboard.Show)

	admin.Get("/products", "admin.products.index", products.Index)
	admin.Post("/products", "admin.products.create", products.Create)
	admin.Put("/products/{productId}", "admin.products.update", products.Update)
	admin.Patch("/products/{productId}/toggle-availability", "admin.products.toggle", products.ToggleAvailability)
	admin.Delete("/products/{productId}", "admin.products.delete", products.Delete)

	admin.Get("/users", "admin.users.index", users.Index)
	admin.Put("/users/{userId}", "admin.users.update", users.Update)
	admin.Delete("/users/{userId}", "admin.users.delete", users.Delete)

	admin.Get("/orders", "admin.orders.index", orders.Index)
	admin.Patch("/orders/{orderId}", "admin.orders.update", orders.UpdateStatus)
}

// NewBackendClient builds the production backend client from config.
func NewBackendClient() *services.Client {
	return services.NewClient(config.BackendURL())
}

// NewPaymentClient builds the production payment client from config.
func NewPaymentClient() *services.PaymentClient {
	return services.NewPaymentClient(config.PaymentURL(), config.PaymentPublicKey())
}
