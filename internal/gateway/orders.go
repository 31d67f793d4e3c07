package gateway

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront-client/internal/domain/cart"
	"github.com/example/storefront-client/internal/domain/order"
	"github.com/example/storefront-client/internal/pricing"
)

// orderItemDTO is the wire shape of an order line.
type orderItemDTO struct {
	Product      string  `json:"product"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Qty          int     `json:"qty"`
}

// shippingAddressDTO is the wire shape of a shipping address.
type shippingAddressDTO struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (d shippingAddressDTO) normalize() cart.ShippingAddress {
	return cart.ShippingAddress{
		Address:    d.Address,
		City:       d.City,
		PostalCode: d.PostalCode,
		Country:    d.Country,
	}
}

// orderDTO is the wire shape of an order.
type orderDTO struct {
	ID              string             `json:"_id"`
	OrderItems      []orderItemDTO     `json:"orderItems"`
	ShippingAddress shippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice"`
	IsPaid          bool               `json:"isPaid"`
	PaidAt          string             `json:"paidAt,omitempty"`
	Status          string             `json:"status"`
	CreatedAt       string             `json:"createdAt"`
}

func (d orderDTO) normalize() order.Order {
	items := make([]order.Item, 0, len(d.OrderItems))
	for _, it := range d.OrderItems {
		items = append(items, order.Item{
			ProductID: it.Product,
			Name:      it.Name,
			UnitPrice: decimal.NewFromFloat(it.Price),
			Quantity:  it.Qty,
		})
	}

	var paidAt *time.Time
	if d.PaidAt != "" {
		if ts, err := time.Parse(time.RFC3339, d.PaidAt); err == nil {
			paidAt = &ts
		}
	}
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)

	return order.Order{
		ID:              d.ID,
		Items:           items,
		ShippingAddress: d.ShippingAddress.normalize(),
		PaymentMethod:   d.PaymentMethod,
		Totals: pricing.Totals{
			ItemsTotal: decimal.NewFromFloat(d.ItemsPrice),
			Tax:        decimal.NewFromFloat(d.TaxPrice),
			Shipping:   decimal.NewFromFloat(d.ShippingPrice),
			GrandTotal: decimal.NewFromFloat(d.TotalPrice),
		},
		IsPaid:    d.IsPaid,
		PaidAt:    paidAt,
		Status:    order.Status(d.Status),
		CreatedAt: createdAt,
	}
}

// CreateOrderRequest is the order-creation payload built from the cart.
type CreateOrderRequest struct {
	OrderItems      []orderItemDTO     `json:"orderItems"`
	ShippingAddress shippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice"`
}

// NewCreateOrderRequest snapshots a cart state into the creation payload.
// Prices cross the wire as plain numbers; exact decimals live only inside
// the client.
func NewCreateOrderRequest(s cart.State) CreateOrderRequest {
	req := CreateOrderRequest{
		PaymentMethod: s.PaymentMethod,
		ItemsPrice:    s.Totals.ItemsTotal.InexactFloat64(),
		TaxPrice:      s.Totals.Tax.InexactFloat64(),
		ShippingPrice: s.Totals.Shipping.InexactFloat64(),
		TotalPrice:    s.Totals.GrandTotal.InexactFloat64(),
	}
	if s.ShippingAddress != nil {
		req.ShippingAddress = shippingAddressDTO{
			Address:    s.ShippingAddress.Address,
			City:       s.ShippingAddress.City,
			PostalCode: s.ShippingAddress.PostalCode,
			Country:    s.ShippingAddress.Country,
		}
	}
	for _, item := range s.Items {
		req.OrderItems = append(req.OrderItems, orderItemDTO{
			Product:      item.ProductID,
			Name:         item.Name,
			Price:        item.UnitPrice.InexactFloat64(),
			CountInStock: item.AvailableStock,
			Qty:          item.Quantity,
		})
	}
	return req
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Orders []order.Order
	Page   int
	Pages  int
	Total  int
}

// Orders is the typed gateway for the orders resource.
type Orders struct {
	c *Client
}

// Create submits a new order and returns the created read model.
func (g *Orders) Create(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	var dto orderDTO
	if err := g.c.post(ctx, "/orders", req, &dto); err != nil {
		return nil, err
	}
	o := dto.normalize()
	return &o, nil
}

// Get fetches one order.
func (g *Orders) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto orderDTO
	if err := g.c.get(ctx, "/orders/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, err
	}
	o := dto.normalize()
	return &o, nil
}

// Mine fetches the signed-in user's orders.
func (g *Orders) Mine(ctx context.Context) ([]order.Order, error) {
	var dtos []orderDTO
	if err := g.c.get(ctx, "/orders/myorders", nil, &dtos); err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.normalize())
	}
	return orders, nil
}

// List fetches one page of all orders (admin).
func (g *Orders) List(ctx context.Context, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	params := url.Values{}
	params.Set("pageNumber", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Orders []orderDTO `json:"orders"`
		Page   int        `json:"page"`
		Pages  int        `json:"pages"`
		Total  int        `json:"total"`
	}
	if err := g.c.get(ctx, "/orders", params, &resp); err != nil {
		return nil, err
	}

	out := &OrderPage{Page: resp.Page, Pages: resp.Pages, Total: resp.Total}
	for _, dto := range resp.Orders {
		out.Orders = append(out.Orders, dto.normalize())
	}
	return out, nil
}

// UserOrders fetches another user's orders (admin).
func (g *Orders) UserOrders(ctx context.Context, userID string) ([]order.Order, error) {
	var dtos []orderDTO
	if err := g.c.get(ctx, "/orders/user/"+url.PathEscape(userID), nil, &dtos); err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.normalize())
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status (admin). Transition rules are
// the server's; the client just relays the request.
func (g *Orders) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var dto orderDTO
	body := map[string]string{"status": string(status)}
	if err := g.c.put(ctx, "/orders/"+url.PathEscape(id)+"/status", body, &dto); err != nil {
		return nil, err
	}
	o := dto.normalize()
	return &o, nil
}

// Pay records a completed payment on an order, marking it paid.
func (g *Orders) Pay(ctx context.Context, id string, result PaymentResult) (*order.Order, error) {
	var dto orderDTO
	if err := g.c.put(ctx, "/orders/"+url.PathEscape(id)+"/pay", result, &dto); err != nil {
		return nil, err
	}
	o := dto.normalize()
	return &o, nil
}

// Cancel cancels an order with a reason.
func (g *Orders) Cancel(ctx context.Context, id, reason string) (*order.Order, error) {
	var dto orderDTO
	body := map[string]string{"reason": reason}
	if err := g.c.put(ctx, "/orders/"+url.PathEscape(id)+"/cancel", body, &dto); err != nil {
		return nil, err
	}
	o := dto.normalize()
	return &o, nil
}
