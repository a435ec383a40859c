package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrOrderLocked is returned by Lock when another operation holds the order.
var ErrOrderLocked = errors.New("order is locked by another operation")

// OrderLocker serializes lifecycle operations on one order across service
// instances. The returned release func must be called exactly once.
type OrderLocker interface {
	Lock(ctx context.Context, id kernel.UUID) (release func(context.Context) error, err error)
}
