package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/logger"
	"github.com/shashiranjanraj/swaad/pkg/response"
	"github.com/shashiranjanraj/swaad/pkg/session"
)

type ProfileController struct {
	backend *services.Client
}

func NewProfileController(backend *services.Client) *ProfileController {
	return &ProfileController{backend: backend}
}

// Show renders the account page from a fresh backend fetch rather than the
// session cache, so edits made elsewhere are visible.
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := c.backend.Profile(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"user": user})
}

// Update changes the user's name and refreshes the session cache with the
// record the backend stored.
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.backend.UpdateProfile(r.Context(), services.Token(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	sess := session.FromCtx(r)
	services.RefreshUser(sess, user)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("session refresh failed after profile update", "error", err)
	}

	response.Success(w, map[string]interface{}{"user": user})
}

// UpdatePassword changes the password. The bearer token stays valid, so the
// user is not signed out.
func (c *ProfileController) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var in services.UpdatePasswordInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.backend.UpdatePassword(r.Context(), services.Token(r), in); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Password updated."})
}
