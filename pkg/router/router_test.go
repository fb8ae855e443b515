package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRouter_NamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/orders/{orderId}", "orders.show", ok)

	path, found := r.Path("orders.show")
	require.True(t, found)
	assert.Equal(t, "/orders/{orderId}", path)

	url, err := r.URL("orders.show", map[string]string{"orderId": "o-42"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/o-42", url)

	_, err = r.URL("orders.show", nil)
	assert.Error(t, err)
}

func TestRouter_GroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	admin := r.Group("/admin", tag("outer"))
	admin.Group("/orders", tag("inner")).Get("/", "admin.orders", ok)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRouter_RoutesSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", ok)
	r.Get("/a", "a.show", ok)
	r.Get("/b", "b.show", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, http.MethodPost, infos[2].Method)
}
