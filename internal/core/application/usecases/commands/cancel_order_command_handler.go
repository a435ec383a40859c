package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders and refunds captured payments.
//
// Decision rule:
//   - PaymentApproved: refund through the payment gateway, mark the payment
//     Refunded, then cancel the order
//   - any other payment status: cancel the order, payment status unchanged
//
// The refund happens inside the order's transaction while the row is locked,
// so a concurrent or repeated cancellation sees PaymentRefunded and skips
// the gateway. A gateway failure rolls everything back. A commit failure
// after a successful refund yields *PartialFailureError and a refund incident.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(deps, stripeGateway, incidentRecorder)
//	cmd, _ := NewCancelOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	var partial *PartialFailureError
//	switch {
//	case errors.As(err, &partial):
//	    // refunded but not cancelled, see refund incidents
//	case errors.Is(err, ErrPaymentGateway):
//	    // order unchanged; Stripe replays a stored refund failure for
//	    // 24h, so a retry only helps after the cause is fixed upstream
//	}
type CancelOrderCommandHandler struct {
	lifecycle lifecycle
	gateway   ports.PaymentGateway
	incidents ports.RefundIncidentRecorder
}

// NewCancelOrderCommandHandler requires a payment gateway. incidents may be
// nil, in which case partial failures are only logged.
func NewCancelOrderCommandHandler(
	deps LifecycleDeps,
	gateway ports.PaymentGateway,
	incidents ports.RefundIncidentRecorder,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		lifecycle: newLifecycle(deps, "cancel_order_handler"),
		gateway:   gateway,
		incidents: incidents,
	}
}

// Handle applies the decision rule and commits at most once, after at most
// one gateway call.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.lifecycle.run(ctx, order.Cancel, cmd.OrderID(), h.cancel, h.partialFailure)
}

func (h CancelOrderCommandHandler) cancel(ctx context.Context, o *order.Order) (bool, error) {
	policy := h.lifecycle.deps.Policy
	if err := o.ValidateCancel(policy); err != nil {
		return false, err
	}

	refunded := false
	if o.RequiresRefund() {
		if err := h.gateway.Refund(ctx, o.ID(), o.PaymentIntent()); err != nil {
			h.lifecycle.observeRefund(OutcomeGatewayFailed)
			return false, gatewayError(err)
		}
		h.lifecycle.observeRefund(OutcomeSucceeded)
		refunded = true

		if err := o.MarkRefunded(); err != nil {
			return refunded, err
		}
	}

	return refunded, o.Cancel(policy)
}

func (h CancelOrderCommandHandler) partialFailure(ctx context.Context, o *order.Order, cause error) error {
	logger := h.lifecycle.deps.Logger
	partial := &PartialFailureError{
		OrderID:       o.ID(),
		PaymentIntent: o.PaymentIntent(),
		Cause:         cause,
	}

	if h.incidents != nil {
		// The request context may already be cancelled; the incident must
		// still be written.
		recordCtx := context.WithoutCancel(ctx)
		err := h.incidents.Record(recordCtx, ports.RefundIncident{
			OrderID:       o.ID(),
			PaymentIntent: o.PaymentIntent(),
			Cause:         cause.Error(),
			OccurredAt:    h.lifecycle.now(),
		})
		if err != nil {
			logger.ErrorContext(ctx, "Failed to record refund incident",
				"order_id", o.ID().String(), "error", errors.Join(cause, err))
		} else {
			partial.IncidentRecorded = true
		}
	}

	logger.ErrorContext(ctx, "Refund issued but cancellation not committed",
		"order_id", o.ID().String(),
		"payment_intent", o.PaymentIntent(),
		"incident_recorded", partial.IncidentRecorded,
		"error", cause,
	)
	return partial
}
