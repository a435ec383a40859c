package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// MarkShippedCommandHandler records the shipment of an order. The shipping
// date is taken from LifecycleDeps.Clock in UTC.
type MarkShippedCommandHandler struct {
	lifecycle lifecycle
}

func NewMarkShippedCommandHandler(deps LifecycleDeps) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		lifecycle: newLifecycle(deps, "mark_shipped_handler"),
	}
}

// Handle rejects an unconstructed command before any persistence call, then
// loads the order, applies Ship and commits once.
func (h MarkShippedCommandHandler) Handle(ctx context.Context, cmd MarkShippedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	policy := h.lifecycle.deps.Policy
	return h.lifecycle.run(ctx, order.Ship, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			shipment, err := order.NewShipment(cmd.Carrier(), cmd.TrackingNumber(), h.lifecycle.now())
			if err != nil {
				return false, err
			}
			return false, o.Ship(policy, shipment)
		},
		nil,
	)
}
