package models

import "github.com/shopspring/decimal"

// CartLine is one (product, quantity) pairing in the user's cart.
// Product is a pointer because the backend keeps lines whose product has
// since been deleted from the catalog; those arrive as null.
type CartLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Cart mirrors the server-side cart. It is refetched after every mutation;
// the view never edits a held copy.
type Cart struct {
	Items []CartLine `json:"items"`
}

// Count returns the total quantity across lines, skipping lines whose
// product no longer exists.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.Items {
		if line.Product == nil {
			continue
		}
		total += line.Quantity
	}
	return total
}

// Total sums price times quantity over the fetched payload. Display only;
// the backend computes the authoritative total at checkout.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		if line.Product == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		total = total.Add(line.Product.Price.Mul(qty))
	}
	return total
}
