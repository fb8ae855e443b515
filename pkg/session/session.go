// Package session provides cookie-keyed server-side sessions for the
// storefront, backed by Redis with an in-memory fallback.
//
// The session is where the storefront keeps its only client-side state: the
// bearer token handed out by the backend at login and the cached user record.
// Payloads are encrypted with pkg/crypt before they are stored, so neither
// Redis nor process memory ever holds a plaintext credential.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("token", token)
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/swaad/pkg/cache"
	"github.com/shashiranjanraj/swaad/pkg/crypt"
)

// ─── Options ─────────────────────────────────────────────────────────────────

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "swaad_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ─── Backing stores ──────────────────────────────────────────────────────────

func redisKey(id string) string { return "swaad:session:" + id }

// memStore holds sessions when Redis is unavailable. Entries expire lazily on
// read and are swept by Middleware's janitor.
type memEntry struct {
	payload   string
	expiresAt time.Time
}

var (
	memMu    sync.Mutex
	memStore = map[string]memEntry{}
)

func storeSave(id, payload string, ttl time.Duration) error {
	if cache.Available() {
		return cache.Set(redisKey(id), payload, ttl)
	}

	memMu.Lock()
	memStore[id] = memEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	memMu.Unlock()
	return nil
}

func storeLoad(id string) (string, bool) {
	if cache.Available() {
		var payload string
		if cache.Get(redisKey(id), &payload) {
			return payload, true
		}
		return "", false
	}

	memMu.Lock()
	defer memMu.Unlock()
	e, ok := memStore[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(memStore, id)
		return "", false
	}
	return e.payload, true
}

func storeDelete(id string) {
	if cache.Available() {
		cache.Del(redisKey(id)) //nolint:errcheck
		return
	}
	memMu.Lock()
	delete(memStore, id)
	memMu.Unlock()
}

func sweepExpired() {
	memMu.Lock()
	now := time.Now()
	for id, e := range memStore {
		if now.After(e.expiresAt) {
			delete(memStore, id)
		}
	}
	memMu.Unlock()
}

// ─── Session ─────────────────────────────────────────────────────────────────

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// load fetches and decrypts session data from the backing store.
func load(id string) map[string]interface{} {
	payload, ok := storeLoad(id)
	if !ok {
		return map[string]interface{}{}
	}

	var data map[string]interface{}
	if err := crypt.DecryptJSON(payload, &data); err != nil {
		// Key rotation or tampering: discard the stored session.
		storeDelete(id)
		return map[string]interface{}{}
	}
	return data
}

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Invalidate destroys the session (logout): in-memory data and the backing
// record are both cleared.
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
	storeDelete(s.id)
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save encrypts and persists the session, then writes the cookie to the
// response. A no-op when nothing changed.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	payload, err := crypt.EncryptJSON(s.data)
	if err != nil {
		return fmt.Errorf("session: encrypt: %w", err)
	}

	if err := storeSave(s.id, payload, s.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// ─── Middleware ──────────────────────────────────────────────────────────────

var janitorOnce sync.Once

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(opts Options) func(http.Handler) http.Handler {
	janitorOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				sweepExpired()
			}
		}()
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				sess.id = cookie.Value
				sess.data = load(sess.id)
			} else {
				id, _ := newID()
				sess.id = id
				sess.data = map[string]interface{}{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}
