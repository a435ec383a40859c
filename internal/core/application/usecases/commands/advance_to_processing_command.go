package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceToProcessingCommandIsNotConstructed = errors.New(
	"AdvanceToProcessingCommand must be created via NewAdvanceToProcessingCommand constructor",
)

// AdvanceToProcessingCommand requests moving an order to InProcess.
type AdvanceToProcessingCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceToProcessingCommand(orderID kernel.UUID) (AdvanceToProcessingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceToProcessingCommand{}, err
	}

	return AdvanceToProcessingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceToProcessingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceToProcessingCommandIsNotConstructed)
}

func (c AdvanceToProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}
