package testkit_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/pkg/testkit"
)

func roundTrip(t *testing.T, mt *testkit.MockTransport, method, url string) (int, string) {
	t.Helper()

	resp, err := mt.RoundTrip(httptest.NewRequest(method, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStub_SamePathAnswersPerCall(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/api/cart", 200, `{"items":[]}`)
	mt.Stub("GET", "/api/cart", 200, `{"items":[{"quantity":2}]}`)

	_, body := roundTrip(t, mt, http.MethodGet, "https://backend.test/api/cart")
	assert.Equal(t, `{"items":[]}`, body)

	_, body = roundTrip(t, mt, http.MethodGet, "https://backend.test/api/cart")
	assert.Equal(t, `{"items":[{"quantity":2}]}`, body)

	// Once every stub is consumed, further calls reuse the last match.
	_, body = roundTrip(t, mt, http.MethodGet, "https://backend.test/api/cart")
	assert.Equal(t, `{"items":[{"quantity":2}]}`, body)

	mt.AssertAllCalled(t)
}

func TestRoundTrip_UnstubbedCallFails(t *testing.T) {
	mt := testkit.NewMockTransport()
	mt.Stub("GET", "/api/cart", 200, `{"items":[]}`)

	_, err := mt.RoundTrip(httptest.NewRequest(http.MethodPost, "https://backend.test/api/cart/add", nil))
	assert.Error(t, err)

	// The miss is still recorded for AssertNotCalled.
	require.Len(t, mt.Requests(), 1)
	assert.Equal(t, http.MethodPost, mt.Requests()[0].Method)
}
