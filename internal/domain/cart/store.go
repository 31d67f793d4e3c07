package cart

import "log"

// Store holds the cart state for one logical session and funnels every
// mutation through the reducer. It is owned by a single session and mutated
// only from that session's event flow, so it carries no locking.
type Store struct {
	state State
}

// NewStore creates a store holding the empty cart.
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Dispatch reduces the action into the state and returns the new state.
// Totals are already recomputed when Dispatch returns, so a render that
// follows a dispatch can never observe stale derived values.
func (st *Store) Dispatch(a Action) State {
	st.state = Reduce(st.state, a)
	log.Printf("[Cart] %s: %d line(s), total %s", a.Name(), len(st.state.Items), st.state.Totals.GrandTotal)
	return st.state
}

// State returns the current cart state.
func (st *Store) State() State {
	return st.state
}
