package models

import "github.com/shopspring/decimal"

// Categories the catalog understands. The backend validates the filter too;
// this list only drives the category picker and admin form validation.
var Categories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Snacks",
	"Beverages",
	"Desserts",
}

// ValidCategory reports whether c is one of the known catalog categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is one catalog item. Read-only on the customer side; the admin
// panel mutates it through /api/admin/products.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"isAvailable"`
}
