package cart

import "github.com/example/storefront-client/internal/pricing"

// Snapshot is the serializable subset of the cart that survives a session:
// lines, shipping address, payment method and the derived totals. Request
// lifecycle flags never appear here; the type simply has no place for them,
// which is how the persistence contract excludes them.
type Snapshot struct {
	Items           []LineItem       `json:"items"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Totals          pricing.Totals   `json:"totals"`
}

// Snapshot captures the current state for persistence.
func (st *Store) Snapshot() Snapshot {
	s := st.state
	return Snapshot{
		Items:           copyItems(s.Items),
		ShippingAddress: s.ShippingAddress,
		PaymentMethod:   s.PaymentMethod,
		Totals:          s.Totals,
	}
}

// RestoreSnapshot replaces the store's state with a persisted snapshot.
// Totals are recomputed from the restored lines rather than trusted from
// disk, keeping the derived-fields invariant even across tampered or stale
// snapshots. An empty restored cart keeps the all-zero totals of a fresh one.
func (st *Store) RestoreSnapshot(snap Snapshot) State {
	state := State{
		Items:           copyItems(snap.Items),
		ShippingAddress: snap.ShippingAddress,
		PaymentMethod:   snap.PaymentMethod,
		Totals:          pricing.Zero(),
	}
	if len(state.Items) > 0 {
		state.Totals = pricing.Calculate(state.pricingLines())
	}
	st.state = state
	return st.state
}
