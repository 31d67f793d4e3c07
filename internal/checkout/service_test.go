package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/domain/order"
	"github.com/example/storefront-client/internal/domain/product"
	"github.com/example/storefront-client/internal/gateway"
)

func testProductForService(id, price string, stock int) product.Product {
	return product.Product{
		ID:             id,
		Name:           "product " + id,
		Price:          decimal.RequireFromString(price),
		AvailableStock: stock,
	}
}

// mockOrderPlacer records every Create call for assertions.
type mockOrderPlacer struct {
	CreateCalls []gateway.CreateOrderRequest
	CreateErr   error
	Created     *order.Order
}

func (m *mockOrderPlacer) Create(_ context.Context, req gateway.CreateOrderRequest) (*order.Order, error) {
	m.CreateCalls = append(m.CreateCalls, req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.Created, nil
}

func readyCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	store.Dispatch(cart.AddItem{
		Product:  testProductForService("p1", "60", 10),
		Quantity: 2,
	})
	store.Dispatch(cart.SaveShippingAddress{Address: cart.ShippingAddress{
		Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
	}})
	store.Dispatch(cart.SavePaymentMethod{Method: "PayPal"})
	return store
}

func TestService_PlaceOrder_Success(t *testing.T) {
	store := readyCart(t)
	placer := &mockOrderPlacer{Created: &order.Order{ID: "order-1", Status: order.StatusPending}}
	svc := NewService(store, placer)

	created, err := svc.PlaceOrder(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "order-1", created.ID)

	require.Len(t, placer.CreateCalls, 1)
	req := placer.CreateCalls[0]
	require.Len(t, req.OrderItems, 1)
	assert.Equal(t, "p1", req.OrderItems[0].Product)
	assert.Equal(t, 2, req.OrderItems[0].Qty)
	assert.Equal(t, "PayPal", req.PaymentMethod)
	assert.InDelta(t, 120.0, req.ItemsPrice, 0.001)
	assert.InDelta(t, 12.0, req.TaxPrice, 0.001)
	assert.InDelta(t, 0.0, req.ShippingPrice, 0.001)
	assert.InDelta(t, 132.0, req.TotalPrice, 0.001)

	// Success clears items and totals but keeps shipping/payment.
	state := store.State()
	assert.True(t, state.IsEmpty())
	assert.True(t, state.Totals.GrandTotal.IsZero())
	assert.Equal(t, "PayPal", state.PaymentMethod)
	assert.NotNil(t, state.ShippingAddress)
}

func TestService_PlaceOrder_EmptyCart(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.SaveShippingAddress{Address: cart.ShippingAddress{Address: "1 Main St"}})
	store.Dispatch(cart.SavePaymentMethod{Method: "PayPal"})
	placer := &mockOrderPlacer{}
	svc := NewService(store, placer)

	_, err := svc.PlaceOrder(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, placer.CreateCalls, "guard failures never reach the gateway")
}

func TestService_PlaceOrder_MissingPrerequisites(t *testing.T) {
	store := cart.NewStore()
	store.Dispatch(cart.AddItem{Product: testProductForService("p1", "10", 5), Quantity: 1})
	svc := NewService(store, &mockOrderPlacer{})

	_, err := svc.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrMissingShipping)

	store.Dispatch(cart.SaveShippingAddress{Address: cart.ShippingAddress{Address: "1 Main St"}})
	_, err = svc.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrMissingPayment)
}

func TestService_PlaceOrder_GatewayFailureKeepsCart(t *testing.T) {
	store := readyCart(t)
	placer := &mockOrderPlacer{CreateErr: errors.New("insufficient stock")}
	svc := NewService(store, placer)

	_, err := svc.PlaceOrder(context.Background())

	require.Error(t, err)
	assert.False(t, store.State().IsEmpty(), "failed submission must not clear the cart")
}
