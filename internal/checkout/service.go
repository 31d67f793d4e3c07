package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/domain/order"
	"github.com/example/storefront-client/internal/gateway"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingShipping = errors.New("shipping address is required")
	ErrMissingPayment  = errors.New("payment method is required")
)

// OrderPlacer is the slice of the orders gateway the service needs.
type OrderPlacer interface {
	Create(ctx context.Context, req gateway.CreateOrderRequest) (*order.Order, error)
}

// Service completes the checkout flow: it snapshots the cart into an
// order-creation payload, submits it, and clears the cart on success. The
// created order is returned so the caller can navigate to its detail view.
type Service struct {
	cart   *cart.Store
	orders OrderPlacer
}

// NewService wires a checkout service over a cart store and orders gateway.
func NewService(store *cart.Store, orders OrderPlacer) *Service {
	return &Service{cart: store, orders: orders}
}

// PlaceOrder submits the current cart. A guard failure returns before any
// gateway call; a gateway failure leaves the cart untouched so the shopper
// can retry.
func (s *Service) PlaceOrder(ctx context.Context) (*order.Order, error) {
	state := s.cart.State()
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !state.HasShippingAddress() {
		return nil, ErrMissingShipping
	}
	if state.PaymentMethod == "" {
		return nil, ErrMissingPayment
	}

	created, err := s.orders.Create(ctx, gateway.NewCreateOrderRequest(state))
	if err != nil {
		return nil, err
	}

	s.cart.Dispatch(cart.Clear{})
	log.Printf("[Checkout] order %s placed, cart cleared", created.ID)
	return created, nil
}
