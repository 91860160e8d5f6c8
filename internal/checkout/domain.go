// internal/checkout/domain.go
package checkout

import (
	"context"
	"errors"
	"fmt"
)

// State is a step of the checkout surface.
type State string

const (
	StateIdle               State = "idle"
	StateFormOpen           State = "form_open"
	StateInstructionsShown  State = "payment_instructions_shown"
	StateSubmitting         State = "submitting"
	StateSucceeded          State = "succeeded"
	StateFailed             State = "failed"
	StateManualInstructions State = "manual_instructions"
)

// Outcome is the result of a PlaceOrder call that got past validation.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeManual    Outcome = "manual"
)

var (
	ErrValidationRejected  = errors.New("checkout rejected")
	ErrEmptyCart           = fmt.Errorf("%w: cart is empty", ErrValidationRejected)
	ErrMissingBuyerDetails = fmt.Errorf("%w: name and email are required", ErrValidationRejected)
	ErrInvalidTransition   = fmt.Errorf("%w: not allowed at this step", ErrValidationRejected)
	ErrNoPaymentLink       = fmt.Errorf("%w: payment link is only available for domestic orders", ErrValidationRejected)
	ErrSubmissionInFlight  = errors.New("order submission already in progress")
	ErrNotificationFailed  = errors.New("order notification failed")
)

// Notifier delivers an order to the seller. Any error means the order was not delivered.
type Notifier interface {
	Notify(ctx context.Context, order OrderRequest) error
}

// Buyer holds the details typed into the checkout form.
type Buyer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// Snapshot is a read-only view of the flow for rendering.
type Snapshot struct {
	State        State         `json:"state"`
	Buyer        Buyer         `json:"buyer"`
	Instructions *Instructions `json:"instructions,omitempty"`
	Message      string        `json:"message,omitempty"`
	OrderID      string        `json:"order_id,omitempty"`
	Submitting   bool          `json:"submitting"`
}
