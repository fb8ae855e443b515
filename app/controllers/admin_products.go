package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/bind"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

type AdminProductsController struct {
	backend *services.Client
}

func NewAdminProductsController(backend *services.Client) *AdminProductsController {
	return &AdminProductsController{backend: backend}
}

// Index lists all products for the admin console, optionally one category
// via ?category=.
func (c *AdminProductsController) Index(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidCategory(category) {
		response.Error(w, http.StatusBadRequest, "Unknown category: "+category)
		return
	}

	products, err := c.backend.AdminProducts(r.Context(), services.Token(r), category)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"products":   products,
		"categories": models.Categories,
	})
}

// Create adds a catalog item.
func (c *AdminProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.backend.CreateProduct(r.Context(), services.Token(r), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{"product": product})
}

// Update replaces a catalog item's editable fields.
func (c *AdminProductsController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.backend.UpdateProduct(r.Context(), services.Token(r), chi.URLParam(r, "productId"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

// ToggleAvailability flips the sold-out flag and answers with the stored
// record so the console renders the backend's truth.
func (c *AdminProductsController) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	product, err := c.backend.ToggleProductAvailability(r.Context(), services.Token(r), chi.URLParam(r, "productId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

// Delete removes a catalog item.
func (c *AdminProductsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.backend.DeleteProduct(r.Context(), services.Token(r), chi.URLParam(r, "productId")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Product deleted."})
}
