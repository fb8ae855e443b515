// Package ws streams live updates to the browser over WebSocket using
// gorilla/websocket.
//
// The storefront uses it for order tracking: the tracking page opens a
// socket and the server pushes the order's status every few seconds until
// it reaches a terminal state or the customer navigates away.
//
//	ws.Stream(w, r, 5*time.Second, func(ctx context.Context) (interface{}, bool, error) {
//	    order, err := backend.Order(ctx, token, id)
//	    if err != nil {
//	        return nil, false, err
//	    }
//	    return order, order.Terminal(), nil
//	})
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/swaad/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// FetchFunc produces the next payload to push. done=true closes the stream
// cleanly after the payload is sent. Errors end the stream too; transient
// upstream hiccups should be swallowed inside fn when retrying is wanted.
type FetchFunc func(ctx context.Context) (payload interface{}, done bool, err error)

// Stream upgrades the request and pushes fetch results to the client every
// interval until fetch reports done, fetch fails, or the client leaves.
// Identical consecutive payloads are not re-sent.
func Stream(w http.ResponseWriter, r *http.Request, interval time.Duration, fetch FetchFunc) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine: consumes control frames and detects the client
	// closing the tab.
	go func() {
		defer cancel()
		conn.SetReadLimit(1024)
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.WithCtx(ctx).Warn("ws: unexpected close", "error", err)
				}
				return
			}
		}
	}()

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
			return done, nil
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return false, err
		}
		last = b
		return done, nil
	}

	// First payload goes out immediately so the page renders without
	// waiting a full interval.
	if done, err := push(); err != nil || done {
		return err
	}

	ticker := time.NewTicker(interval)
	pinger := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-ticker.C:
			done, err := push()
			if err != nil {
				return err
			}
			if done {
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
				conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "order complete"))
				return nil
			}
		}
	}
}
