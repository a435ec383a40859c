package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNoCapturedPayment is returned when a refund is required but the order
	// carries no payment intent reference.
	ErrNoCapturedPayment = errs.NewValueIsRequiredError("payment intent reference")
)

// Order is the aggregate root of the fulfillment lifecycle. It is loaded per
// request, mutated in place by one transition and handed back for a commit.
//
// Order follows these invariants:
//   - id is a valid UUID and never changes
//   - status and paymentStatus are valid enumeration values
//   - paymentStatus reaches PaymentRefunded only through MarkRefunded,
//     which requires a captured payment and a payment intent reference
//   - shipment is set only by Ship
type Order struct {
	id            kernel.UUID
	status        Status
	paymentStatus PaymentStatus

	// paymentIntent is the gateway reference of the captured payment; empty
	// when nothing was captured.
	paymentIntent string

	shipment Shipment

	// version is the persisted revision this instance was loaded at.
	version int

	isConstructed bool
}

// NewOrder creates an order the way checkout does: Pending or Approved, no
// shipment, version 0.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Approved, order.PaymentApproved, "pi_123")
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, status Status, paymentStatus PaymentStatus, paymentIntent string) (*Order, error) {
	if status != Pending && status != Approved {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid initial status", status),
		)
	}

	return RestoreOrder(id, status, paymentStatus, paymentIntent, Shipment{}, 0)
}

// RestoreOrder rebuilds an order from storage. Only field validity is
// checked: rows written under the permissive policy may legitimately combine
// e.g. Cancelled with a shipment.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	paymentIntent string,
	shipment Shipment,
	version int,
) (*Order, error) {
	var errVersion error
	if version < 0 {
		errVersion = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}

	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
		errVersion,
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		status:        status,
		paymentStatus: paymentStatus,
		paymentIntent: paymentIntent,
		shipment:      shipment,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate guards against zero-value orders.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) PaymentIntent() string {
	return o.paymentIntent
}

func (o *Order) Shipment() Shipment {
	return o.shipment
}

func (o *Order) Version() int {
	return o.version
}

// StartProcessing moves the order to InProcess. The payment status is left
// untouched.
func (o *Order) StartProcessing(policy TransitionPolicy) error {
	if err := policy.Check(StartProcessing, o.status); err != nil {
		return err
	}

	o.status = InProcess
	return nil
}

// Ship records the shipment and moves the order to Shipped.
func (o *Order) Ship(policy TransitionPolicy, shipment Shipment) error {
	if err := policy.Check(Ship, o.status); err != nil {
		return err
	}
	if shipment.IsZero() {
		return errs.NewValueIsRequiredError("shipment")
	}

	o.shipment = shipment
	o.status = Shipped
	return nil
}

// RequiresRefund reports whether cancelling must first refund the payment.
// It turns false after MarkRefunded, which makes repeated cancellation safe.
func (o *Order) RequiresRefund() bool {
	return o.paymentStatus.IsCaptured()
}

// ValidateCancel checks Cancel preconditions without side effects so callers
// can verify them before contacting the payment gateway.
func (o *Order) ValidateCancel(policy TransitionPolicy) error {
	if err := policy.Check(Cancel, o.status); err != nil {
		return err
	}
	if o.RequiresRefund() && o.paymentIntent == "" {
		return ErrNoCapturedPayment
	}
	return nil
}

// MarkRefunded records a refund that the payment gateway confirmed.
func (o *Order) MarkRefunded() error {
	if !o.RequiresRefund() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			fmt.Errorf("%s payment cannot be refunded", o.paymentStatus),
		)
	}
	if o.paymentIntent == "" {
		return ErrNoCapturedPayment
	}

	o.paymentStatus = PaymentRefunded
	return nil
}

// Cancel moves the order to Cancelled. A captured payment must have been
// refunded first; other payment statuses are left as they are.
func (o *Order) Cancel(policy TransitionPolicy) error {
	if err := policy.Check(Cancel, o.status); err != nil {
		return err
	}
	if o.RequiresRefund() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status",
			errors.New("captured payment must be refunded before cancellation"),
		)
	}

	o.status = Cancelled
	return nil
}

// ShippedAt is a convenience accessor for the shipment date.
func (o *Order) ShippedAt() *time.Time {
	return o.shipment.ShippedAt()
}
