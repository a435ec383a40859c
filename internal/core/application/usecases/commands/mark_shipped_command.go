package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkShippedCommandIsNotConstructed = errors.New(
	"MarkShippedCommand must be created via NewMarkShippedCommand constructor",
)

// MarkShippedCommand carries the carrier hand-off data for an order.
//
// Example:
//
//	cmd, err := NewMarkShippedCommand(orderID, "DHL", "JD014600006281230704")
//	if errors.Is(err, errs.ErrValueIsRequired) {
//	    // carrier or tracking number missing
//	}
type MarkShippedCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	carrier        string
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewMarkShippedCommand trims carrier and tracking number and requires both.
func NewMarkShippedCommand(orderID kernel.UUID, carrier, trackingNumber string) (MarkShippedCommand, error) {
	cmd := MarkShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrier(carrier),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return MarkShippedCommand{}, err
	}

	return cmd, nil
}

func (c MarkShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShippedCommandIsNotConstructed)
}

func (c MarkShippedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkShippedCommand) Carrier() string {
	return c.carrier
}

func (c MarkShippedCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *MarkShippedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkShippedCommand) setCarrier(carrier string) error {
	carrier = strings.TrimSpace(carrier)
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	c.carrier = carrier
	return nil
}

func (c *MarkShippedCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	c.trackingNumber = trackingNumber
	return nil
}
