package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/domain/product"
)

func cartWith(items bool, shipping bool, payment bool) cart.State {
	s := cart.NewState()
	if items {
		s = cart.Reduce(s, cart.AddItem{
			Product:  product.Product{ID: "p1", Name: "p", Price: decimal.NewFromInt(10), AvailableStock: 5},
			Quantity: 1,
		})
	}
	if shipping {
		s = cart.Reduce(s, cart.SaveShippingAddress{Address: cart.ShippingAddress{
			Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
		}})
	}
	if payment {
		s = cart.Reduce(s, cart.SavePaymentMethod{Method: "PayPal"})
	}
	return s
}

// ============================================
// Guard Tests
// ============================================

func TestResolve_Guards(t *testing.T) {
	tests := []struct {
		name      string
		requested Step
		shipping  bool
		payment   bool
		entered   Step
	}{
		{"cart always enterable", StepCart, false, false, StepCart},
		{"shipping always enterable", StepShipping, false, false, StepShipping},
		{"payment without shipping redirects to shipping", StepPayment, false, false, StepShipping},
		{"payment with shipping enters", StepPayment, true, false, StepPayment},
		{"review without shipping redirects to shipping", StepReview, false, true, StepShipping},
		{"review without payment redirects to payment", StepReview, true, false, StepPayment},
		{"review with both enters", StepReview, true, true, StepReview},
		{"placeorder without payment redirects to payment", StepPlaceOrder, true, false, StepPayment},
		{"placeorder without shipping redirects to shipping", StepPlaceOrder, false, false, StepShipping},
		{"placeorder with both enters", StepPlaceOrder, true, true, StepPlaceOrder},
		{"unknown step falls back to cart", Step("profile"), true, true, StepCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := cartWith(true, tt.shipping, tt.payment)
			assert.Equal(t, tt.entered, Resolve(tt.requested, state))
		})
	}
}

func TestResolve_BlankAddressFieldCountsAsMissing(t *testing.T) {
	// The guard keys off the address field alone; a saved address with a
	// blank street is still a redirect.
	s := cart.NewState()
	s = cart.Reduce(s, cart.SaveShippingAddress{Address: cart.ShippingAddress{City: "Springfield"}})

	assert.Equal(t, StepShipping, Resolve(StepPayment, s))
}

func TestCanPlaceOrder(t *testing.T) {
	assert.True(t, CanPlaceOrder(cartWith(true, true, true)))
	assert.False(t, CanPlaceOrder(cartWith(false, true, true)), "empty cart blocks submission")
	assert.False(t, CanPlaceOrder(cartWith(true, false, true)))
	assert.False(t, CanPlaceOrder(cartWith(true, true, false)))
}

// ============================================
// Sequencer Tests
// ============================================

func TestSequencer_GotoFollowsGuards(t *testing.T) {
	store := cart.NewStore()
	q := NewSequencer(store)

	assert.Equal(t, StepCart, q.Current())
	assert.Equal(t, StepShipping, q.Goto(StepPayment), "no shipping address yet")

	store.Dispatch(cart.SaveShippingAddress{Address: cart.ShippingAddress{
		Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	}})
	assert.Equal(t, StepPayment, q.Goto(StepPayment))
	assert.Equal(t, StepPayment, q.Goto(StepReview), "no payment method yet")

	store.Dispatch(cart.SavePaymentMethod{Method: "Stripe"})
	assert.Equal(t, StepReview, q.Goto(StepReview))
}

func TestSequencer_BackKeepsCartData(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.SaveShippingAddress{Address: cart.ShippingAddress{
		Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	}})
	store.Dispatch(cart.SavePaymentMethod{Method: "Stripe"})

	q := NewSequencer(store)
	q.Goto(StepReview)

	assert.Equal(t, StepPayment, q.Back())
	assert.Equal(t, StepShipping, q.Back())
	assert.Equal(t, StepCart, q.Back())
	assert.Equal(t, StepCart, q.Back(), "back from cart stays on cart")

	// Going backward erases nothing: fields re-populate from the store.
	state := store.State()
	assert.Equal(t, "Stripe", state.PaymentMethod)
	assert.NotNil(t, state.ShippingAddress)
}
