// Package config exposes typed accessors over the storefront's environment.
//
// Values come from the process environment, optionally seeded from a .env file
// in the working directory (loaded once via godotenv). Every accessor falls
// back to a sensible local-development default, so `swaad serve` works out of
// the box against the hosted food-delivery backend.
package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort    = "8080"
	defaultAppEnv     = "local"
	defaultAppKey     = "change-me-in-production"
	defaultBackendURL = "https://food-delivery-node-h1lq.onrender.com"
	defaultPaymentURL = "https://api.stripe.com"
	defaultRedisAddr  = "localhost:6379"
	defaultSessionTTL = 2 * time.Hour
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load reads .env into the process environment. Missing .env is not an error;
// containerised deploys inject real environment variables instead.
func Load() error {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			loadErr = err
		}
	})
	return loadErr
}

func get(key, fallback string) string {
	_ = Load()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// AppPort is the port the storefront listens on.
func AppPort() string { return get("APP_PORT", defaultAppPort) }

// AppEnv is the runtime environment: local, staging, production.
func AppEnv() string { return get("APP_ENV", defaultAppEnv) }

// AppKey is the secret used to encrypt session payloads at rest.
func AppKey() string { return get("APP_KEY", defaultAppKey) }

// BackendURL is the base URL of the food-delivery REST API.
// All /api/... calls are issued against this host.
func BackendURL() string { return strings.TrimRight(get("BACKEND_URL", defaultBackendURL), "/") }

// PaymentURL is the base URL of the payment processor's REST API.
// The storefront only ever calls the confirm-payment endpoint on it.
func PaymentURL() string { return strings.TrimRight(get("PAYMENT_URL", defaultPaymentURL), "/") }

// PaymentPublicKey authenticates the client-side confirm call. Publishable,
// not secret: raw card data never transits the storefront.
func PaymentPublicKey() string { return get("PAYMENT_PUBLIC_KEY", "") }

// RedisAddr is the address of the Redis instance backing sessions.
// When Redis is unreachable the session store falls back to process memory.
func RedisAddr() string { return get("REDIS_ADDR", defaultRedisAddr) }

// RedisPassword is the Redis AUTH password, empty when unset.
func RedisPassword() string { return get("REDIS_PASSWORD", "") }

// SessionTTL is how long an idle session survives.
func SessionTTL() time.Duration {
	if v := get("SESSION_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultSessionTTL
}

// Get reads any environment key with a fallback. Prefer the typed accessors.
func Get(key, fallback string) string { return get(key, fallback) }
