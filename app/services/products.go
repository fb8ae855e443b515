package services

import (
	"context"
	"net/url"
	"time"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/http"
)

// Products fetches the catalog, optionally filtered to one category.
// The backend replies with a bare JSON array. Reads retry once since the
// menu page is the storefront's front door.
func (c *Client) Products(ctx context.Context, category string) ([]models.Product, error) {
	endpoint := c.url("/api/products")
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	resp, err := send("catalog.list",
		http.Get(endpoint).
			Retry(2, 300*time.Millisecond).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := parse(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}
