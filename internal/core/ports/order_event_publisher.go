package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after a lifecycle transition committed.
type OrderStatusChanged struct {
	OrderID        kernel.UUID
	Transition     order.Transition
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	PreviousStatus order.Status
	OccurredAt     time.Time
}

// OrderEventPublisher delivers lifecycle events to downstream consumers.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
