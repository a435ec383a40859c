package commands

import (
	"errors"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveRefundIncidentCommandIsNotConstructed = errors.New(
	"ResolveRefundIncidentCommand must be created via NewResolveRefundIncidentCommand constructor",
)

// ResolveRefundIncidentCommand closes a refund incident an operator has
// reconciled with the payment provider.
type ResolveRefundIncidentCommand struct {
	incidentID int64

	guard guard.ConstructorGuard
}

func NewResolveRefundIncidentCommand(incidentID int64) (ResolveRefundIncidentCommand, error) {
	if incidentID <= 0 {
		return ResolveRefundIncidentCommand{}, errs.NewValueIsOutOfRangeError("incident id", incidentID, 1, int64(math.MaxInt64))
	}

	return ResolveRefundIncidentCommand{
		incidentID: incidentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveRefundIncidentCommand) Validate() error {
	return c.guard.Validate(ErrResolveRefundIncidentCommandIsNotConstructed)
}

func (c ResolveRefundIncidentCommand) IncidentID() int64 {
	return c.incidentID
}
