package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

type AuthController struct {
	backend *services.Client
}

func NewAuthController(backend *services.Client) *AuthController {
	return &AuthController{backend: backend}
}

// Login exchanges credentials for a session. On success the browser is sent
// to the menu; admins land on their console instead.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.backend.Login(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	sess := session.FromCtx(r)
	services.SignIn(sess, token, user)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not start your session.")
		return
	}

	target := "/menu"
	if user.IsAdmin() {
		target = "/admin/orders"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Register creates an account and signs the new user in right away.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.backend.Register(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	sess := session.FromCtx(r)
	services.SignIn(sess, token, user)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not start your session.")
		return
	}

	http.Redirect(w, r, "/menu", http.StatusSeeOther)
}

// Logout destroys the session and returns to the menu as an anonymous
// visitor. The backend token simply stops being sent; it is not revocable.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	services.SignOut(sess)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("session save failed on logout", "error", err)
	}
	http.Redirect(w, r, "/menu", http.StatusSeeOther)
}

// ForgotPassword asks the backend to mail a reset link. The answer is the
// same whether or not the address exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.backend.ForgotPassword(r.Context(), in.Email); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{
		"message": "If that address has an account, a reset email is on its way.",
	})
}

// ResetPassword sets a new password using the token from the reset email,
// then sends the visitor to the login form.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in services.ResetPasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.backend.ResetPassword(r.Context(), chi.URLParam(r, "token"), in); err != nil {
		fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
