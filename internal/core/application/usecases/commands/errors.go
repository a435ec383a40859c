package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrPaymentGateway wraps refund failures. The transition is aborted and
	// nothing is committed.
	ErrPaymentGateway = errors.New("payment gateway error")

	// ErrPersistence wraps storage failures other than "not found".
	ErrPersistence = errors.New("persistence error")
)

// PartialFailureError is returned when the gateway refunded the payment but
// the cancellation could not be committed. The order in storage still shows
// the captured payment; an operator has to reconcile it.
type PartialFailureError struct {
	OrderID       kernel.UUID
	PaymentIntent string
	// IncidentRecorded is false when even the incident could not be stored.
	IncidentRecorded bool
	Cause            error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("refund of %s for order %s succeeded but cancellation was not committed: %v",
		e.PaymentIntent, e.OrderID, e.Cause)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{ErrPersistence, e.Cause}
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func gatewayError(err error) error {
	return fmt.Errorf("%w: %w", ErrPaymentGateway, err)
}
