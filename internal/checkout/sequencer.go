package checkout

import (
	"log"

	"github.com/example/storefront-client/internal/domain/cart"
)

// Step is one station of the checkout flow.
type Step string

const (
	StepCart       Step = "cart"
	StepShipping   Step = "shipping"
	StepPayment    Step = "payment"
	StepReview     Step = "review"
	StepPlaceOrder Step = "placeorder"
)

// steps in flow order.
var steps = []Step{StepCart, StepShipping, StepPayment, StepReview, StepPlaceOrder}

// rank returns the step's position in the flow, -1 for unknown steps.
func rank(s Step) int {
	for i, step := range steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Resolve applies the checkout guards to a requested step and returns the
// step actually entered. Payment and everything past it require a shipping
// address with a non-empty address field; review and place-order additionally
// require a chosen payment method. A guarded-off request lands on the step
// that satisfies its missing prerequisite, mirroring the page redirects of
// the storefront.
func Resolve(requested Step, s cart.State) Step {
	r := rank(requested)
	if r < 0 {
		return StepCart
	}
	if r >= rank(StepPayment) && !s.HasShippingAddress() {
		return StepShipping
	}
	if r >= rank(StepReview) && s.PaymentMethod == "" {
		return StepPayment
	}
	return requested
}

// CanPlaceOrder reports whether submission is allowed: both prerequisites
// satisfied and at least one line in the cart.
func CanPlaceOrder(s cart.State) bool {
	return !s.IsEmpty() && s.HasShippingAddress() && s.PaymentMethod != ""
}

// Sequencer tracks the shopper's position in the checkout flow over a cart
// store. Entering a step never mutates cart data, so going back and forward
// re-populates forms from whatever the store already holds.
type Sequencer struct {
	cart    *cart.Store
	current Step
}

// NewSequencer starts a flow at the cart step.
func NewSequencer(store *cart.Store) *Sequencer {
	return &Sequencer{cart: store, current: StepCart}
}

// Current returns the step the shopper is on.
func (q *Sequencer) Current() Step {
	return q.current
}

// Goto moves toward the requested step, landing wherever the guards allow,
// and returns the step entered.
func (q *Sequencer) Goto(requested Step) Step {
	entered := Resolve(requested, q.cart.State())
	if entered != requested {
		log.Printf("[Checkout] %s guarded, redirecting to %s", requested, entered)
	}
	q.current = entered
	return entered
}

// Back steps toward the cart by one station. Previously entered shipping and
// payment data stay in the cart store untouched.
func (q *Sequencer) Back() Step {
	if r := rank(q.current); r > 0 {
		q.current = steps[r-1]
	}
	return q.current
}
