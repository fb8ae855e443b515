// Package auth reads the bearer tokens issued by the food-delivery backend.
//
// The backend signs and verifies its own tokens; the storefront never holds
// the secret. Claims are parsed unverified and used only for UI gating such
// as showing the admin console link. Authorization itself happens on the
// backend, which re-checks the token on every call.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the token payload the backend embeds at login.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Peek decodes the token's claims without verifying the signature.
func Peek(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never expire locally; the backend is the judge either way.
func Expired(c *Claims) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(c.ExpiresAt.Time)
}
