package cart

import "github.com/example/storefront-client/internal/domain/product"

// Action names, used for logging and snapshots of dispatched mutations.
const (
	ActionItemAdded       = "ItemAdded"
	ActionItemRemoved     = "ItemRemoved"
	ActionQuantityUpdated = "QuantityUpdated"
	ActionShippingSaved   = "ShippingAddressSaved"
	ActionPaymentSaved    = "PaymentMethodSaved"
	ActionCleared         = "Cleared"
	ActionReset           = "Reset"
)

// Action is a cart mutation. Each action is reduced by a pure function, so a
// sequence of actions replayed against the empty state always yields the same
// cart.
type Action interface {
	// Name identifies the action kind.
	Name() string
}

// AddItem puts a product into the cart. If a line for the product already
// exists its quantity is REPLACED with Quantity, not added to it. The store
// does not clamp: callers validate against available stock beforehand.
type AddItem struct {
	Product  product.Product
	Quantity int
}

// RemoveItem deletes the line for a product. Removing an absent product is a
// no-op, not an error.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the quantity on an existing line. A missing product is
// silently ignored. A quantity of zero or less removes the line, matching the
// invariant that a cart line always holds at least one unit.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// SaveShippingAddress overwrites the shipping address. No validation.
type SaveShippingAddress struct {
	Address ShippingAddress
}

// SavePaymentMethod overwrites the chosen payment method. No validation.
type SavePaymentMethod struct {
	Method string
}

// Clear empties the line list and zeroes the derived totals. The shipping
// address and payment method deliberately survive: a shopper who places an
// order keeps both for the next one.
type Clear struct{}

// Reset reinitializes the whole cart, shipping address and payment method
// included.
type Reset struct{}

func (AddItem) Name() string             { return ActionItemAdded }
func (RemoveItem) Name() string          { return ActionItemRemoved }
func (UpdateQuantity) Name() string      { return ActionQuantityUpdated }
func (SaveShippingAddress) Name() string { return ActionShippingSaved }
func (SavePaymentMethod) Name() string   { return ActionPaymentSaved }
func (Clear) Name() string               { return ActionCleared }
func (Reset) Name() string               { return ActionReset }
