package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/pricing"
)

// Item is a line of a placed order: a snapshot of the cart line at order
// time. Later price or stock changes on the product never touch it.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the item's extended price.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the client-side read model of one server-owned order.
type Order struct {
	ID              string               `json:"id"`
	Items           []Item               `json:"items"`
	ShippingAddress cart.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method"`
	Totals          pricing.Totals       `json:"totals"`
	IsPaid          bool                 `json:"is_paid"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
	Status          Status               `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
}

// CanCancel reports whether the cancel action is offered. Cancellation is
// unavailable once the order is delivered, cancelled, or paid; the server is
// still the final authority and may reject for its own reasons.
func (o Order) CanCancel() bool {
	if o.IsPaid {
		return false
	}
	switch o.Status {
	case StatusDelivered, StatusCancelled:
		return false
	}
	return true
}

// ShowPayNow reports whether the pay-now action is shown. It disappears once
// the order is paid or cancelled; an order left unpaid by a failed payment
// attempt keeps it, which is how a partial checkout stays resumable.
func (o Order) ShowPayNow() bool {
	return !o.IsPaid && o.Status != StatusCancelled
}
