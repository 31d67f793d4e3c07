package gateway

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// CardDetails is the card form content submitted to the payment endpoint.
// It exists only for the lifetime of one payment attempt and is never
// persisted anywhere on the client.
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpDate    string `json:"expDate"`
	CVV        string `json:"cvv"`
	OTP        string `json:"otp"`
}

// PaymentRequest is the process-payment payload.
type PaymentRequest struct {
	OrderID       string      `json:"orderId"`
	Amount        float64     `json:"amount"`
	PaymentMethod string      `json:"paymentMethod"`
	CardDetails   CardDetails `json:"cardDetails"`
}

// NewPaymentRequest builds the payload from exact-decimal client state.
func NewPaymentRequest(orderID string, amount decimal.Decimal, method string, card CardDetails) PaymentRequest {
	return PaymentRequest{
		OrderID:       orderID,
		Amount:        amount.InexactFloat64(),
		PaymentMethod: method,
		CardDetails:   card,
	}
}

// PaymentResult is the gateway's verdict on a payment attempt.
type PaymentResult struct {
	Success       bool   `json:"success"`
	ID            string `json:"id"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	TransactionID string `json:"transactionId"`
}

// Payments is the typed gateway for the payments resource.
type Payments struct {
	c *Client
}

// Process submits a payment for an order.
func (g *Payments) Process(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	var result PaymentResult
	if err := g.c.post(ctx, "/payments/process", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches one payment record.
func (g *Payments) Get(ctx context.Context, id string) (*PaymentResult, error) {
	var result PaymentResult
	if err := g.c.get(ctx, "/payments/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History fetches one page of the user's payment history.
func (g *Payments) History(ctx context.Context, page int) ([]PaymentResult, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var results []PaymentResult
	if err := g.c.get(ctx, "/payments/history", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Refund requests a refund for a payment.
func (g *Payments) Refund(ctx context.Context, id string) (*PaymentResult, error) {
	var result PaymentResult
	if err := g.c.post(ctx, "/payments/"+url.PathEscape(id)+"/refund", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
