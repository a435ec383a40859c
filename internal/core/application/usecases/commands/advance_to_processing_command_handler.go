package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// AdvanceToProcessingCommandHandler moves an order to InProcess without
// touching its payment status.
//
// Example:
//
//	handler := NewAdvanceToProcessingCommandHandler(LifecycleDeps{UoWFactory: uowFactory})
//	cmd, _ := NewAdvanceToProcessingCommand(orderID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order, nothing was committed
//	}
type AdvanceToProcessingCommandHandler struct {
	lifecycle lifecycle
}

func NewAdvanceToProcessingCommandHandler(deps LifecycleDeps) AdvanceToProcessingCommandHandler {
	return AdvanceToProcessingCommandHandler{
		lifecycle: newLifecycle(deps, "advance_to_processing_handler"),
	}
}

// Handle loads the order, applies StartProcessing and commits once.
func (h AdvanceToProcessingCommandHandler) Handle(ctx context.Context, cmd AdvanceToProcessingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	policy := h.lifecycle.deps.Policy
	return h.lifecycle.run(ctx, order.StartProcessing, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			return false, o.StartProcessing(policy)
		},
		nil,
	)
}
