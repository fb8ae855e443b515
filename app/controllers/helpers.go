// Package controllers holds the storefront's view handlers. Each handler is
// a thin translation layer: bind and validate the form, call the backend
// through app/services, answer with the JSON envelope or a redirect.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

// fail translates a services error into the right storefront answer.
// A rejected token sends the browser back to login; backend errors pass
// their own message through; anything else is a generic 502 since the
// upstream, not the storefront, is what broke.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		response.Error(w, apiErr.Status, apiErr.Message)
		return
	}

	var payErr *services.PaymentError
	if errors.As(err, &payErr) {
		response.Error(w, http.StatusPaymentRequired, payErr.Message)
		return
	}

	logger.WithCtx(r.Context()).Error("upstream call failed", "error", err)
	response.Error(w, http.StatusBadGateway, "The kitchen is unreachable right now. Please try again.")
}
