package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the canonical product shape used everywhere inside the client.
// The server still emits a handful of legacy field spellings (a singular
// category string, countInStock instead of stockQuantity); the products
// gateway normalizes those into this one shape at the boundary, so nothing
// past the gateway ever deals with optional or duck-typed fields.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AvailableStock int             `json:"available_stock"`
	Categories     []string        `json:"categories,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.AvailableStock > 0
}

// ClampQuantity bounds a requested quantity to [1, AvailableStock].
// Callers use this before dispatching cart mutations; the cart store itself
// trusts the quantity it is given.
func (p Product) ClampQuantity(qty int) int {
	if qty < 1 {
		qty = 1
	}
	if qty > p.AvailableStock {
		qty = p.AvailableStock
	}
	return qty
}
