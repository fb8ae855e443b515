// Package sse streams live updates over Server-Sent Events.
//
// It is the fallback transport for order tracking: browsers that cannot
// open a WebSocket subscribe here instead and get the same status payloads
// as plain text/event-stream events.
//
//	sse.Poll(w, r, 5*time.Second, "status", func(ctx context.Context) (interface{}, bool, error) {
//	    order, err := backend.Order(ctx, token, id)
//	    if err != nil {
//	        return nil, false, err
//	    }
//	    return order, order.Terminal(), nil
//	})
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FetchFunc produces the next payload to push. done=true ends the stream
// cleanly after the payload is sent.
type FetchFunc func(ctx context.Context) (payload interface{}, done bool, err error)

// Stream is one open SSE connection.
type Stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// New sets the SSE headers and returns the stream, or nil when the
// ResponseWriter cannot flush (no streaming through this proxy).
func New(w http.ResponseWriter) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &Stream{w: w, flusher: flusher}
}

// Send writes one named event with a JSON payload.
func (s *Stream) Send(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flusher.Flush()
	return nil
}

// Comment writes an SSE comment line, used as a keepalive heartbeat.
func (s *Stream) Comment(msg string) {
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flusher.Flush()
}

// Poll pushes fetch results as events every interval until fetch reports
// done, fetch fails, or the client disconnects. Identical consecutive
// payloads are skipped; a heartbeat comment keeps idle connections open.
func Poll(w http.ResponseWriter, r *http.Request, interval time.Duration, event string, fetch FetchFunc) error {
	stream := New(w)
	if stream == nil {
		return fmt.Errorf("sse: streaming not supported")
	}

	ctx := r.Context()

	var last []byte
	push := func() (bool, error) {
		payload, done, err := fetch(ctx)
		if err != nil {
			return false, err
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return false, err
		}
		if string(b) == string(last) {
			stream.Comment("keepalive")
			return done, nil
		}
		last = b
		fmt.Fprintf(stream.w, "event: %s\ndata: %s\n\n", event, b)
		stream.flusher.Flush()
		return done, nil
	}

	if done, err := push(); err != nil || done {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			done, err := push()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}
