package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/app/services"
	"github.com/shashiranjanraj/swaad/pkg/collection"
	"github.com/shashiranjanraj/swaad/pkg/response"
)

type CatalogController struct {
	backend *services.Client
}

func NewCatalogController(backend *services.Client) *CatalogController {
	return &CatalogController{backend: backend}
}

// Menu renders the catalog, optionally filtered with ?category=. An unknown
// category is rejected here rather than forwarded; the picker only offers
// known ones, so anything else is a hand-edited URL.
func (c *CatalogController) Menu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidCategory(category) {
		response.Error(w, http.StatusBadRequest, "Unknown category: "+category)
		return
	}

	products, err := c.backend.Products(r.Context(), category)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"products":   products,
		"sections":   collection.GroupBy(products, func(p models.Product) string { return p.Category }),
		"categories": models.Categories,
		"category":   category,
		"user":       services.Current(r),
	})
}
