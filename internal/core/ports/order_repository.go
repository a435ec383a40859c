// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, the payment gateway, messaging and locking.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Checkout owns creation; the lifecycle core
	// only uses it for seeding.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored fields with the aggregate's current values.
	// It fails with errs.ErrVersionIsInvalid when the stored version moved on
	// since the aggregate was loaded, and bumps the version otherwise.
	// The aggregate keeps its loaded version, so reload it before another
	// Update; a second Update on the same instance reports a version conflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order or returns an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding
	// transaction ends. It serializes concurrent transitions on one order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
