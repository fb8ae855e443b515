package services

import (
	"encoding/json"
	gohttp "net/http"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/auth"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

// Session keys for the signed-in identity.
const (
	tokenKey = "token"
	userKey  = "user"
)

// SignIn stores the bearer token and cached user record in the session.
// Any in-flight checkout from a previous identity is dropped.
func SignIn(sess *session.Session, token string, user *models.User) {
	sess.Set(tokenKey, token)
	if b, err := json.Marshal(user); err == nil {
		sess.Set(userKey, string(b))
	}
	ClearCheckout(sess)
}

// RefreshUser replaces only the cached user record, leaving the token and
// any in-flight checkout alone.
func RefreshUser(sess *session.Session, user *models.User) {
	if b, err := json.Marshal(user); err == nil {
		sess.Set(userKey, string(b))
	}
}

// SignOut destroys the whole session: token, cached user, and any
// in-flight checkout all go at once.
func SignOut(sess *session.Session) {
	sess.Invalidate()
}

// Token returns the signed-in user's bearer token, or "" when anonymous.
func Token(r *gohttp.Request) string {
	token, _ := session.FromCtx(r).GetString(tokenKey)
	return token
}

// Current returns the cached user record, or nil when anonymous.
func Current(r *gohttp.Request) *models.User {
	raw, ok := session.FromCtx(r).GetString(userKey)
	if !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// IsAdmin reports whether the session claims the admin role. The cached
// record decides; when it is missing the token's role claim breaks the tie.
// Either way this only gates the UI, the backend enforces for real.
func IsAdmin(r *gohttp.Request) bool {
	if user := Current(r); user != nil {
		return user.IsAdmin()
	}
	claims, err := auth.Peek(Token(r))
	if err != nil {
		return false
	}
	return claims.Role == models.RoleAdmin
}

// RequireUser guards signed-in pages. Anonymous visitors get redirected to
// the login page; expired tokens count as anonymous.
func RequireUser(next gohttp.Handler) gohttp.Handler {
	return gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		token := Token(r)
		if token == "" {
			gohttp.Redirect(w, r, "/login", gohttp.StatusSeeOther)
			return
		}
		if claims, err := auth.Peek(token); err == nil && auth.Expired(claims) {
			logger.WithCtx(r.Context()).Info("session token expired, signing out")
			SignOut(session.FromCtx(r))
			gohttp.Redirect(w, r, "/login", gohttp.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards the admin console. Non-admins get 403, not a
// redirect, so the console's existence is the only thing revealed.
func RequireAdmin(next gohttp.Handler) gohttp.Handler {
	return gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		if Token(r) == "" {
			gohttp.Redirect(w, r, "/login", gohttp.StatusSeeOther)
			return
		}
		if !IsAdmin(r) {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
