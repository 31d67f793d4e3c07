package cart

import "github.com/example/storefront-client/internal/pricing"

// Reduce applies a single action to the state and returns the next state.
// It never mutates its input: the line slice is copied before any change, so
// snapshots of earlier states stay valid. Totals are recomputed inside the
// reducer for every line mutation.
func Reduce(s State, a Action) State {
	switch action := a.(type) {
	case AddItem:
		return reduceAddItem(s, action)
	case RemoveItem:
		return reduceRemoveItem(s, action)
	case UpdateQuantity:
		return reduceUpdateQuantity(s, action)
	case SaveShippingAddress:
		addr := action.Address
		s.ShippingAddress = &addr
		return s
	case SavePaymentMethod:
		s.PaymentMethod = action.Method
		return s
	case Clear:
		s.Items = nil
		s.Totals = pricing.Zero()
		return s
	case Reset:
		return NewState()
	default:
		return s
	}
}

func reduceAddItem(s State, a AddItem) State {
	items := copyItems(s.Items)

	replaced := false
	for i := range items {
		if items[i].ProductID == a.Product.ID {
			// Existing line: the quantity is replaced, not accumulated.
			items[i].Quantity = a.Quantity
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, LineItem{
			ProductID:      a.Product.ID,
			Name:           a.Product.Name,
			UnitPrice:      a.Product.Price,
			AvailableStock: a.Product.AvailableStock,
			Quantity:       a.Quantity,
		})
	}

	s.Items = items
	s.Totals = pricing.Calculate(s.pricingLines())
	return s
}

func reduceRemoveItem(s State, a RemoveItem) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID != a.ProductID {
			items = append(items, item)
		}
	}

	s.Items = items
	s.Totals = pricing.Calculate(s.pricingLines())
	return s
}

func reduceUpdateQuantity(s State, a UpdateQuantity) State {
	if a.Quantity <= 0 {
		// A line never holds less than one unit; dropping to zero removes it.
		return reduceRemoveItem(s, RemoveItem{ProductID: a.ProductID})
	}

	items := copyItems(s.Items)
	found := false
	for i := range items {
		if items[i].ProductID == a.ProductID {
			items[i].Quantity = a.Quantity
			found = true
			break
		}
	}
	if !found {
		// Unknown product: silently keep the current state.
		return s
	}

	s.Items = items
	s.Totals = pricing.Calculate(s.pricingLines())
	return s
}

func copyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
