package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// RefundIncident records a refund the gateway accepted while the matching
// cancellation failed to commit. Operators reconcile incidents by hand.
type RefundIncident struct {
	ID            int64
	OrderID       kernel.UUID
	PaymentIntent string
	Cause         string
	OccurredAt    time.Time
	ResolvedAt    *time.Time
}

// RefundIncidentRecorder stores incidents outside the failed transaction.
type RefundIncidentRecorder interface {
	Record(ctx context.Context, incident RefundIncident) error
	ListUnresolved(ctx context.Context) ([]RefundIncident, error)
	Resolve(ctx context.Context, id int64, at time.Time) error
}
