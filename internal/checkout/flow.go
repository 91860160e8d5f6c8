// internal/checkout/flow.go
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bookstall/internal/cart"
	"bookstall/internal/config"
	"bookstall/internal/logging"
)

const (
	msgEmptyCart      = "Your cart is empty."
	msgMissingDetails = "Please enter your name and email."
	msgFailed         = "We could not send your order. Please contact the seller directly with your order details."
)

var validate = validator.New()

type Options struct {
	Payment config.PaymentConfig
	// DismissAfter closes the checkout after a successful order. Zero keeps it open.
	DismissAfter time.Duration
	Logger       *zap.Logger
	// NewOrderID overrides order identifier generation.
	NewOrderID func() string
}

// Flow is the checkout state machine for the session cart.
// A nil notifier selects the manual payment branch instead of submitting orders.
type Flow struct {
	mu           sync.Mutex
	cart         *cart.Store
	notifier     Notifier
	payment      config.PaymentConfig
	dismissAfter time.Duration
	newOrderID   func() string
	logger       *zap.Logger
	tracer       trace.Tracer
	orders       metric.Int64Counter

	state        State
	buyer        Buyer
	instructions *Instructions
	message      string
	orderID      string
	inFlight     bool
	generation   uint64
	dismissTimer *time.Timer
}

func NewFlow(store *cart.Store, notifier Notifier, opts Options) *Flow {
	counter, err := otel.Meter("bookstall/checkout").Int64Counter("checkout.orders",
		metric.WithDescription("Order placements by outcome"),
	)
	if err != nil {
		counter = noop.Int64Counter{}
	}
	newOrderID := opts.NewOrderID
	if newOrderID == nil {
		newOrderID = NewOrderID
	}
	return &Flow{
		cart:         store,
		notifier:     notifier,
		payment:      opts.Payment,
		dismissAfter: opts.DismissAfter,
		newOrderID:   newOrderID,
		logger:       logging.OrNop(opts.Logger),
		tracer:       otel.Tracer("bookstall/checkout"),
		orders:       counter,
		state:        StateIdle,
	}
}

// Open shows the checkout form. It is rejected while the cart is empty.
func (f *Flow) Open() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return f.snapshotLocked(), ErrSubmissionInFlight
	}
	if f.cart.IsEmpty() {
		f.message = msgEmptyCart
		return f.snapshotLocked(), ErrEmptyCart
	}

	f.resetLocked()
	f.state = StateFormOpen
	if strings.TrimSpace(f.buyer.Country) == "" {
		f.buyer.Country = f.payment.DomesticCountry
	}
	f.showInstructionsLocked()
	return f.snapshotLocked(), nil
}

// ChangeCountry replaces the payment instructions for the new country.
func (f *Flow) ChangeCountry(country string) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return f.snapshotLocked(), ErrSubmissionInFlight
	}
	if !f.formActiveLocked() {
		return f.snapshotLocked(), ErrInvalidTransition
	}
	f.buyer.Country = strings.TrimSpace(country)
	f.message = ""
	f.showInstructionsLocked()
	return f.snapshotLocked(), nil
}

// UpdateBuyer records the form fields. An empty country keeps the current one.
func (f *Flow) UpdateBuyer(b Buyer) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return f.snapshotLocked(), ErrSubmissionInFlight
	}
	if !f.formActiveLocked() {
		return f.snapshotLocked(), ErrInvalidTransition
	}
	country := strings.TrimSpace(b.Country)
	if country == "" {
		country = f.buyer.Country
	}
	changed := country != f.buyer.Country

	f.buyer = Buyer{
		Name:    strings.TrimSpace(b.Name),
		Email:   strings.TrimSpace(b.Email),
		Address: strings.TrimSpace(b.Address),
		Country: country,
	}
	if changed {
		f.showInstructionsLocked()
	}
	return f.snapshotLocked(), nil
}

// PaymentLink builds the UPI deep link for the current instructions.
func (f *Flow) PaymentLink() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.instructions == nil {
		return "", ErrNoPaymentLink
	}
	return f.instructions.DeepLink()
}

// PlaceOrder submits the order to the notifier. Validation failures leave the
// state untouched. A failed notification keeps the cart so the buyer can retry
// or contact the seller.
func (f *Flow) PlaceOrder(ctx context.Context) (Outcome, error) {
	f.mu.Lock()

	if f.inFlight {
		f.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	switch f.state {
	case StateInstructionsShown, StateFailed, StateManualInstructions:
	default:
		f.mu.Unlock()
		return "", ErrInvalidTransition
	}

	if f.cart.IsEmpty() {
		f.message = msgEmptyCart
		f.mu.Unlock()
		return "", ErrEmptyCart
	}
	if err := validate.Struct(f.buyer); err != nil {
		f.message = msgMissingDetails
		f.mu.Unlock()
		return "", fmt.Errorf("%w: %v", ErrMissingBuyerDetails, err)
	}

	// The cart may have changed since the form was opened.
	f.showInstructionsLocked()

	if f.notifier == nil {
		method := f.instructions.Method
		f.state = StateManualInstructions
		f.message = f.instructions.ManualMessage()
		f.mu.Unlock()
		f.record(ctx, OutcomeManual)
		f.logger.Info("no order notifier configured, showing manual payment instructions",
			zap.String("payment_method", method))
		return OutcomeManual, nil
	}

	lines := f.cart.Lines()
	var total float64
	for _, line := range lines {
		total += line.LineTotal()
	}
	order, err := NewOrderRequest(f.newOrderID(), f.buyer, lines, total, f.payment.DomesticCountry)
	if err != nil {
		f.mu.Unlock()
		return "", err
	}
	f.state = StateSubmitting
	f.message = ""
	f.inFlight = true
	gen := f.generation
	f.mu.Unlock()

	return f.submit(ctx, order, gen)
}

func (f *Flow) submit(ctx context.Context, order OrderRequest, gen uint64) (Outcome, error) {
	ctx, span := f.tracer.Start(ctx, "checkout.place_order",
		trace.WithAttributes(
			attribute.String("order.id", order.OrderID),
			attribute.String("payment.method", order.PaymentMethod),
			attribute.String("order.total", order.TotalAmount),
		),
	)
	defer span.End()

	notifyErr := f.notifier.Notify(ctx, order)

	if notifyErr == nil {
		// Outside the flow lock: cart subscribers may read the flow.
		f.cart.Clear()
	}

	f.mu.Lock()
	f.inFlight = false
	visible := f.generation == gen
	if notifyErr != nil {
		if visible {
			f.state = StateFailed
			f.message = msgFailed
		}
		f.mu.Unlock()

		span.RecordError(notifyErr)
		f.record(ctx, OutcomeFailed)
		f.logger.Warn("order notification failed",
			zap.String("order_id", order.OrderID),
			zap.Bool("visible", visible),
			zap.Error(notifyErr))
		return OutcomeFailed, fmt.Errorf("%w: %v", ErrNotificationFailed, notifyErr)
	}

	if visible {
		f.state = StateSucceeded
		f.orderID = order.OrderID
		f.message = fmt.Sprintf("Order %s placed! The seller will contact you at %s.", order.OrderID, order.Email)
		f.scheduleDismissLocked()
	}
	f.mu.Unlock()

	f.record(ctx, OutcomeSucceeded)
	f.logger.Info("order submitted",
		zap.String("order_id", order.OrderID),
		zap.String("payment_method", order.PaymentMethod),
		zap.String("total", order.TotalAmount),
		zap.Bool("visible", visible))
	return OutcomeSucceeded, nil
}

// Cancel closes the checkout without touching the cart. An in-flight submission
// keeps running but its result is no longer shown.
func (f *Flow) Cancel() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resetLocked()
	f.state = StateIdle
	return f.snapshotLocked()
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Flow) formActiveLocked() bool {
	switch f.state {
	case StateFormOpen, StateInstructionsShown, StateFailed, StateManualInstructions:
		return true
	}
	return false
}

func (f *Flow) showInstructionsLocked() {
	instr := BuildInstructions(f.payment, f.buyer.Country, f.cart.Total())
	f.instructions = &instr
	f.state = StateInstructionsShown
}

// resetLocked hides everything shown and invalidates pending results and timers.
func (f *Flow) resetLocked() {
	f.generation++
	if f.dismissTimer != nil {
		f.dismissTimer.Stop()
		f.dismissTimer = nil
	}
	f.instructions = nil
	f.message = ""
}

func (f *Flow) scheduleDismissLocked() {
	if f.dismissAfter <= 0 {
		return
	}
	gen := f.generation
	f.dismissTimer = time.AfterFunc(f.dismissAfter, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.generation != gen || f.state != StateSucceeded {
			return
		}
		f.state = StateIdle
		f.instructions = nil
		f.dismissTimer = nil
	})
}

func (f *Flow) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:      f.state,
		Buyer:      f.buyer,
		Message:    f.message,
		OrderID:    f.orderID,
		Submitting: f.inFlight,
	}
	if f.instructions != nil {
		instr := *f.instructions
		snap.Instructions = &instr
	}
	return snap
}

func (f *Flow) record(ctx context.Context, outcome Outcome) {
	f.orders.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}
