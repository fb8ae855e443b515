package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

type AdminUsersController struct {
	backend *services.Client
}

func NewAdminUsersController(backend *services.Client) *AdminUsersController {
	return &AdminUsersController{backend: backend}
}

// Index lists every account.
func (c *AdminUsersController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.backend.AdminUsers(r.Context(), services.Token(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"users": users})
}

// Update edits an account's name, email, or role.
func (c *AdminUsersController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UserInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.backend.UpdateUser(r.Context(), services.Token(r), chi.URLParam(r, "userId"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"user": user})
}

// Delete removes an account. An admin deleting their own account still
// keeps their session until the token is next rejected upstream.
func (c *AdminUsersController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.backend.DeleteUser(r.Context(), services.Token(r), chi.URLParam(r, "userId")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "User deleted."})
}
