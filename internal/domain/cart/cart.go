package cart

import (
	"github.com/shopspring/decimal"

	"github.com/example/storefront-client/internal/pricing"
)

// LineItem is one product entry in the cart. Lines are keyed by ProductID and
// unique per cart; the slice keeps insertion order for display, which is
// irrelevant to any computation.
type LineItem struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	Quantity       int             `json:"quantity"`
}

// ShippingAddress is the delivery destination captured during checkout.
// All four fields must be filled before the shipping step can be left.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Complete reports whether every required field is present.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// State is the full cart state. Totals are derived, never set directly: the
// reducer recomputes them synchronously after every line mutation, so no
// observer can see stale derived values.
type State struct {
	Items           []LineItem       `json:"items"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Totals          pricing.Totals   `json:"totals"`
}

// NewState returns the empty cart a session starts with.
func NewState() State {
	return State{Totals: pricing.Zero()}
}

// Find returns the line for a product, if present.
func (s State) Find(productID string) (LineItem, bool) {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// HasShippingAddress reports whether a usable shipping address was saved.
// Mirrors the checkout guard, which keys off the address field alone.
func (s State) HasShippingAddress() bool {
	return s.ShippingAddress != nil && s.ShippingAddress.Address != ""
}

// pricingLines projects the line list into the calculator's input shape.
func (s State) pricingLines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(s.Items))
	for _, item := range s.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
