package sse_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/swaad/pkg/sse"
)

func TestPoll_SendsInitialEventAndStopsWhenDone(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/o-1/track/sse", nil)
	rec := httptest.NewRecorder()

	err := sse.Poll(rec, req, time.Second, "status", func(ctx context.Context) (interface{}, bool, error) {
		return map[string]string{"orderStatus": "Delivered"}, true, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: status")
	assert.Contains(t, rec.Body.String(), `"orderStatus":"Delivered"`)
}

func TestPoll_StopsOnFetchError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/o-1/track/sse", nil)
	rec := httptest.NewRecorder()

	err := sse.Poll(rec, req, time.Second, "status", func(ctx context.Context) (interface{}, bool, error) {
		return nil, false, context.DeadlineExceeded
	})
	assert.Error(t, err)
}

func TestPoll_SkipsDuplicatePayloads(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders/o-1/track/sse", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	calls := 0
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	err := sse.Poll(rec, req, 10*time.Millisecond, "status", func(ctx context.Context) (interface{}, bool, error) {
		calls++
		return map[string]string{"orderStatus": "Pending"}, false, nil
	})
	require.NoError(t, err)
	assert.Greater(t, calls, 1)

	// One data event; repeats arrive as keepalive comments only.
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event: status"))
	assert.Contains(t, body, ": keepalive")
}
