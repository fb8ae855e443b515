package routes_test

import (
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/app/routes"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/http"
	"github.com/shashiranjanraj/swaad/pkg/router"
	"github.com/shashiranjanraj/swaad/pkg/session"
	"github.com/shashiranjanraj/swaad/pkg/testkit"
)

const (
	backendBase = "https://backend.test"
	paymentBase = "https://payments.test"
)

// newApp builds the full route table against stubbed upstreams.
func newApp(t *testing.T) (*router.Router, *testkit.MockTransport) {
	t.Helper()

	mt := testkit.NewMockTransport()
	http.DefaultClient.Transport = mt
	t.Cleanup(http.ResetTransport)

	r := router.New()
	routes.Register(r,
		services.NewClient(backendBase),
		services.NewPaymentClient(paymentBase, "pk_test_123"),
	)
	return r, mt
}

func do(r *router.Router, method, path, body string, cookie *gohttp.Cookie) *httptest.ResponseRecorder {
	var req *gohttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *gohttp.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultOptions().CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// signIn stubs the login call and returns the resulting session cookie.
func signIn(t *testing.T, r *router.Router, mt *testkit.MockTransport, role string) *gohttp.Cookie {
	t.Helper()

	mt.Stub("POST", "/api/login", 200, `{
		"status":"success",
		"token":"jwt-abc",
		"user":{"_id":"u1","firstName":"Asha","lastName":"Rao","email":"asha@example.com","role":"`+role+`"}
	}`)

	rec := do(r, "POST", "/login", `{"email":"asha@example.com","password":"secret99"}`, nil)
	require.Equal(t, gohttp.StatusSeeOther, rec.Code)
	return sessionCookie(t, rec)
}

func TestGuestIsRedirectedToLogin(t *testing.T) {
	r, _ := newApp(t)

	for _, path := range []string{"/cart", "/checkout", "/orders", "/profile"} {
		rec := do(r, "GET", path, "", nil)
		assert.Equal(t, gohttp.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestMenuIsBrowsableAnonymously(t *testing.T) {
	r, mt := newApp(t)
	mt.Stub("GET", "/api/products", 200, `[
		{"_id":"p1","name":"Idli","price":60,"category":"Breakfast","isAvailable":true},
		{"_id":"p2","name":"Biryani","price":240,"category":"Lunch","isAvailable":true}
	]`)

	rec := do(r, "GET", "/menu", "", nil)
	assert.Equal(t, gohttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Breakfast"`)
	assert.Contains(t, rec.Body.String(), `"Biryani"`)
}

func TestLoginStartsSessionAndRedirectsByRole(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")
	assert.NotEmpty(t, cookie.Value)

	mt.Stub("GET", "/api/cart", 200, `{"items":[]}`)
	rec := do(r, "GET", "/cart", "", cookie)
	assert.Equal(t, gohttp.StatusOK, rec.Code)
}

func TestAdminLoginLandsOnConsole(t *testing.T) {
	r, mt := newApp(t)

	mt.Stub("POST", "/api/login", 200, `{
		"status":"success","token":"jwt-admin",
		"user":{"_id":"a1","firstName":"Ravi","role":"admin"}
	}`)
	rec := do(r, "POST", "/login", `{"email":"admin@example.com","password":"secret99"}`, nil)
	assert.Equal(t, gohttp.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orders", rec.Header().Get("Location"))
}

func TestLogoutEndsTheSession(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	rec := do(r, "POST", "/logout", "", cookie)
	assert.Equal(t, gohttp.StatusSeeOther, rec.Code)
	assert.Equal(t, "/menu", rec.Header().Get("Location"))

	// The old cookie no longer signs anyone in.
	rec = do(r, "GET", "/cart", "", cookie)
	assert.Equal(t, gohttp.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestExpiredBackendTokenRedirectsToLogin(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	mt.Stub("GET", "/api/cart", 401, `{"message":"jwt expired"}`)
	rec := do(r, "GET", "/cart", "", cookie)
	assert.Equal(t, gohttp.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestCheckoutCODRequiresAddressBeforeAnyUpstreamCall(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	rec := do(r, "POST", "/checkout", `{"paymentMethod":"cod"}`, cookie)
	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)

	rec = do(r, "POST", "/checkout", `{
		"paymentMethod":"cod",
		"deliveryAddress":{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","phoneNumber":"98765"}
	}`, cookie)
	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "phoneNumber")

	mt.AssertNotCalled(t, "/api/order/checkout")
}

func TestCheckoutCODPlacesAndRedirects(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	mt.Stub("POST", "/api/order/checkout", 200, `{"message":"Order placed","orderId":"o-77"}`)
	rec := do(r, "POST", "/checkout", `{
		"paymentMethod":"cod",
		"deliveryAddress":{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","phoneNumber":"9876543210"}
	}`, cookie)

	assert.Equal(t, gohttp.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders/o-77", rec.Header().Get("Location"))
}

func TestCheckoutInvalidMethodRejected(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	rec := do(r, "POST", "/checkout", `{"paymentMethod":"paypal"}`, cookie)
	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
	mt.AssertNotCalled(t, "/api/order/checkout")
}

func TestAdminConsoleForbiddenForCustomers(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	rec := do(r, "GET", "/admin/orders", "", cookie)
	assert.Equal(t, gohttp.StatusForbidden, rec.Code)
}

func TestAdminUpdatesOrderStatus(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "admin")

	mt.Stub("PATCH", "/api/admin/orders/o-1", 200, `{"success":true}`)
	mt.Stub("GET", "/api/order/o-1", 200, `{"order":{"_id":"o-1","orderStatus":"Shipped","paymentStatus":"Paid"}}`)

	rec := do(r, "PATCH", "/admin/orders/o-1", `{"orderStatus":"Shipped","paymentStatus":"Paid"}`, cookie)
	assert.Equal(t, gohttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Shipped"`)
	mt.AssertAllCalled(t)
}

func TestOrderTrackingSSEThroughTheFullStack(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	mt.Stub("GET", "/api/order/o-9", 200, `{
		"order":{"_id":"o-9","trackingId":"TRK-9","orderStatus":"Delivered","paymentStatus":"Paid"}
	}`)

	// The stream must survive the logger and metrics wrappers, which need to
	// pass Flush through to the real writer.
	rec := do(r, "GET", "/orders/o-9/track/sse", "", cookie)
	assert.Equal(t, gohttp.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: status")
	assert.Contains(t, rec.Body.String(), `"orderStatus":"Delivered"`)
}

func TestOrderTrackingWebSocketThroughTheFullStack(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	mt.Stub("GET", "/api/order/o-9", 200, `{
		"order":{"_id":"o-9","trackingId":"TRK-9","orderStatus":"Delivered","paymentStatus":"Paid"}
	}`)

	// A real server so the upgrade can hijack the connection behind the
	// logger and metrics wrappers.
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/orders/o-9/track"
	header := gohttp.Header{"Cookie": []string{cookie.Name + "=" + cookie.Value}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err, "websocket handshake failed")
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"orderStatus":"Delivered"`)
	assert.Contains(t, string(msg), `"trackingId":"TRK-9"`)
}

func TestAdminProductWithoutPriceRejected(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "admin")

	rec := do(r, "POST", "/admin/products", `{
		"name":"Idli","description":"Steamed rice cakes",
		"imageUrl":"https://cdn.test/idli.jpg","category":"Breakfast"
	}`, cookie)

	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "price")
	mt.AssertNotCalled(t, "/api/admin/products")
}

func TestCartQuantityGateAtTheEdge(t *testing.T) {
	r, mt := newApp(t)
	cookie := signIn(t, r, mt, "user")

	rec := do(r, "POST", "/cart/add", `{"productId":"p1","quantity":0}`, cookie)
	assert.Equal(t, gohttp.StatusUnprocessableEntity, rec.Code)
	mt.AssertNotCalled(t, "/api/cart/add")
}
