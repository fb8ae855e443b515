// Package services talks to the two remote collaborators the storefront has:
// the food-delivery backend (catalog, cart, orders, users) and the payment
// processor (card confirmation). Every method is a thin, instrumented wrapper
// over one REST call; no state lives here beyond the base URLs.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/swaad/pkg/http"
	"github.com/shashiranjanraj/swaad/pkg/metrics"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// Handlers translate it into a redirect to the login page.
var ErrUnauthorized = errors.New("services: unauthorized")

// APIError carries a non-2xx backend reply through to the handler so the
// backend's own message can be shown to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("services: backend returned %d: %s", e.Status, e.Message)
}

// Client issues authenticated calls against the food-delivery backend.
type Client struct {
	base string
}

// NewClient builds a client for the given backend base URL,
// e.g. config.BackendURL().
func NewClient(base string) *Client {
	return &Client{base: base}
}

// url joins the base URL with an API path.
func (c *Client) url(path string) string { return c.base + path }

// send executes req, recording upstream metrics under the given operation
// name. Transport failures count as upstream errors too.
func send(op string, req *http.Request) (*http.Response, error) {
	defer metrics.ObserveUpstream("backend", op, time.Now())

	resp, err := req.Send()
	if err != nil {
		metrics.CountUpstreamError("backend", op)
		return nil, err
	}
	if !resp.OK() {
		metrics.CountUpstreamError("backend", op)
	}
	return resp, nil
}

// parse maps the response onto dest (when dest is non-nil) or returns the
// error the backend reported. 401 and 403 collapse into ErrUnauthorized so
// every view handles token expiry the same way.
func parse(resp *http.Response, dest interface{}) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return ErrUnauthorized
	}
	if !resp.OK() {
		return &APIError{Status: resp.StatusCode, Message: backendMessage(resp.Raw)}
	}
	if dest == nil {
		return nil
	}
	return resp.JSON(dest)
}

// backendMessage pulls the human-readable message out of a backend error
// body. Falls back to the raw body when it is not the usual shape.
func backendMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return string(raw)
}

// ctxOrBackground guards against handlers passing a nil context.
func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
