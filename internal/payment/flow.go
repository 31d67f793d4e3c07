package payment

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/storefront-client/internal/domain/order"
	"github.com/example/storefront-client/internal/gateway"
)

// Step is the payment dialog's position.
type Step string

const (
	StepCard    Step = "card"
	StepOTP     Step = "otp"
	StepSuccess Step = "success"
)

// Default simulated latencies, mirroring the storefront's timings.
const (
	defaultCardDelay    = 1500 * time.Millisecond
	defaultProcessDelay = 2 * time.Second
	defaultSuccessDelay = 2 * time.Second
)

// ErrPaymentDeclined is returned when the gateway reports a non-success
// result without an HTTP error.
var ErrPaymentDeclined = errors.New("failed to process payment, please try again")

// Attempt is the ephemeral state of one payment dialog. It never outlives
// the dialog: Close discards it wholesale, success resets it.
type Attempt struct {
	Step Step
	Card Card
	OTP  string
	// Err is the inline message shown on the current step, empty when none.
	Err string
}

// Processor is the slice of the payments gateway the flow needs.
type Processor interface {
	Process(ctx context.Context, req gateway.PaymentRequest) (*gateway.PaymentResult, error)
}

// Orders is the slice of the orders gateway the flow needs: recording the
// payment result on the order and re-fetching it afterwards.
type Orders interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	Pay(ctx context.Context, id string, result gateway.PaymentResult) (*order.Order, error)
}

// Flow drives the simulated two-step payment: card entry, validation with a
// simulated network delay, OTP entry, gateway call, then a success pause and
// an order re-fetch before the dialog closes.
type Flow struct {
	processor Processor
	orders    Orders
	attempt   Attempt

	// sleep is injected so tests run without real delays. It must honor
	// context cancellation: closing the dialog aborts a pending wait.
	sleep        func(ctx context.Context, d time.Duration) error
	cardDelay    time.Duration
	processDelay time.Duration
	successDelay time.Duration
}

// NewFlow creates a payment flow positioned on card entry.
func NewFlow(processor Processor, orders Orders) *Flow {
	return &Flow{
		processor:    processor,
		orders:       orders,
		attempt:      Attempt{Step: StepCard},
		sleep:        sleepCtx,
		cardDelay:    defaultCardDelay,
		processDelay: defaultProcessDelay,
		successDelay: defaultSuccessDelay,
	}
}

// WithDelays overrides the simulated latencies; zero values keep defaults.
func (f *Flow) WithDelays(card, process, success time.Duration) *Flow {
	if card > 0 {
		f.cardDelay = card
	}
	if process > 0 {
		f.processDelay = process
	}
	if success > 0 {
		f.successDelay = success
	}
	return f
}

// withSleeper swaps the delay function, for tests.
func (f *Flow) withSleeper(sleep func(ctx context.Context, d time.Duration) error) *Flow {
	f.sleep = sleep
	return f
}

// Attempt returns the current dialog state.
func (f *Flow) Attempt() Attempt {
	return f.attempt
}

// SetCard updates the card form through the input masks.
func (f *Flow) SetCard(c Card) {
	c.CardNumber = MaskCardNumber(c.CardNumber)
	c.ExpDate = MaskExpDate(f.attempt.Card.ExpDate, c.ExpDate)
	c.CVV = MaskCVV(c.CVV)
	f.attempt.Card = c
}

// SetOTP updates the one-time password through its input mask.
func (f *Flow) SetOTP(otp string) {
	f.attempt.OTP = MaskOTP(otp)
}

// SubmitCard validates the card form. A format failure surfaces its message
// and stays on card entry; success waits out the simulated validation delay
// and moves to OTP entry.
func (f *Flow) SubmitCard(ctx context.Context) error {
	f.attempt.Err = ""

	if err := f.attempt.Card.Validate(); err != nil {
		f.attempt.Err = err.Error()
		return err
	}

	if err := f.sleep(ctx, f.cardDelay); err != nil {
		return err
	}

	f.attempt.Step = StepOTP
	return nil
}

// SubmitOTP submits the payment for an order. On a gateway failure the
// server's message is surfaced and the dialog stays on OTP entry; the order
// is left unpaid and remains payable later. On success the flow pauses on
// the success step, re-fetches the order, and resets for the next dialog.
func (f *Flow) SubmitOTP(ctx context.Context, o *order.Order) (*order.Order, error) {
	f.attempt.Err = ""

	if err := ValidateOTP(f.attempt.OTP); err != nil {
		f.attempt.Err = err.Error()
		return nil, err
	}

	if err := f.sleep(ctx, f.processDelay); err != nil {
		return nil, err
	}

	card := gateway.CardDetails{
		CardNumber: f.attempt.Card.CardNumber,
		CardName:   f.attempt.Card.CardName,
		ExpDate:    f.attempt.Card.ExpDate,
		CVV:        f.attempt.Card.CVV,
		OTP:        f.attempt.OTP,
	}
	req := gateway.NewPaymentRequest(o.ID, o.Totals.GrandTotal, o.PaymentMethod, card)

	result, err := f.processor.Process(ctx, req)
	if err != nil {
		f.attempt.Err = surfaceMessage(err)
		return nil, err
	}
	if !result.Success {
		f.attempt.Err = ErrPaymentDeclined.Error()
		return nil, ErrPaymentDeclined
	}

	// Record the result on the order. Until this lands, the order stays
	// unpaid server-side and remains payable later, so a failure here keeps
	// the shopper on OTP entry like any other gateway failure.
	if _, err := f.orders.Pay(ctx, o.ID, *result); err != nil {
		f.attempt.Err = surfaceMessage(err)
		return nil, err
	}

	log.Printf("[Payment] order %s paid, transaction %s", o.ID, result.TransactionID)
	f.attempt.Step = StepSuccess

	if err := f.sleep(ctx, f.successDelay); err != nil {
		return nil, err
	}

	refreshed, err := f.orders.Get(ctx, o.ID)
	if err != nil {
		// Payment went through; the stale order is still returned so the
		// caller can navigate, and a later fetch will show it paid.
		log.Printf("[Payment] order %s re-fetch failed: %v", o.ID, err)
		refreshed = o
	}

	f.reset()
	return refreshed, nil
}

// Back returns from OTP entry to card entry. Card fields stay as entered.
func (f *Flow) Back() {
	if f.attempt.Step == StepOTP {
		f.attempt.Step = StepCard
		f.attempt.Err = ""
	}
}

// Close discards the attempt. Nothing survives: card fields, OTP, and any
// inline error are gone, and the next dialog starts from card entry.
func (f *Flow) Close() {
	f.reset()
}

func (f *Flow) reset() {
	f.attempt = Attempt{Step: StepCard}
}

// surfaceMessage extracts the human-readable message for the dialog.
func surfaceMessage(err error) string {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ErrPaymentDeclined.Error()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
