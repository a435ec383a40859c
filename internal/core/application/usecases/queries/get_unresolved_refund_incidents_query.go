package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetUnresolvedRefundIncidentsQueryIsNotConstructed = errors.New(
	"GetUnresolvedRefundIncidentsQuery must be created via NewGetUnresolvedRefundIncidentsQuery constructor",
)

// GetUnresolvedRefundIncidentsQuery lists the refunds waiting for an
// operator, oldest first.
type GetUnresolvedRefundIncidentsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnresolvedRefundIncidentsQuery() GetUnresolvedRefundIncidentsQuery {
	return GetUnresolvedRefundIncidentsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnresolvedRefundIncidentsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnresolvedRefundIncidentsQueryIsNotConstructed)
}

type RefundIncidentResponse struct {
	ID            int64
	OrderID       kernel.UUID
	PaymentIntent string
	Cause         string
	OccurredAt    time.Time
}
