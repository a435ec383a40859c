package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Transition outcomes reported to the TransitionObserver.
const (
	OutcomeSucceeded      = "succeeded"
	OutcomeNotFound       = "not_found"
	OutcomeRejected       = "rejected"
	OutcomeLocked         = "locked"
	OutcomeGatewayFailed  = "gateway_failed"
	OutcomePersistFailed  = "persistence_failed"
	OutcomePartialFailure = "partial_failure"
)

// TransitionObserver receives one call per handled command and one per
// refund attempt. Implemented by the metrics package.
type TransitionObserver interface {
	ObserveTransition(transition order.Transition, outcome string)
	ObserveRefund(outcome string)
}

// LifecycleDeps are the collaborators shared by the lifecycle command
// handlers. UoWFactory is required; Policy defaults to the permissive policy
// and Logger to slog.Default(). The other fields are optional.
type LifecycleDeps struct {
	UoWFactory OrderUoWFactory
	Policy     order.TransitionPolicy
	Locker     ports.OrderLocker
	Publisher  ports.OrderEventPublisher
	Observer   TransitionObserver
	Logger     *slog.Logger
	Clock      func() time.Time
}

// applyFunc performs the domain transition on a loaded order. refunded
// reports whether money already left through the payment gateway, which
// turns later persistence failures into partial failures.
type applyFunc func(ctx context.Context, o *order.Order) (refunded bool, err error)

// partialFailureHandler is consulted when a refund went through but the
// transaction did not commit.
type partialFailureHandler func(ctx context.Context, o *order.Order, cause error) error

type lifecycle struct {
	deps LifecycleDeps
}

func newLifecycle(deps LifecycleDeps, component string) lifecycle {
	if deps.Policy.Name() == "" {
		deps.Policy = order.PermissivePolicy()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	deps.Logger = deps.Logger.With("component", component)
	return lifecycle{deps: deps}
}

func (l lifecycle) now() time.Time {
	return l.deps.Clock().UTC()
}

// run executes one transition inside a unit of work. It commits at most once
// and only after apply succeeded.
func (l lifecycle) run(
	ctx context.Context,
	transition order.Transition,
	id kernel.UUID,
	apply applyFunc,
	onPartialFailure partialFailureHandler,
) (err error) {
	defer func() {
		l.observe(transition, err)
	}()

	if l.deps.Locker != nil {
		release, lockErr := l.deps.Locker.Lock(ctx, id)
		if lockErr != nil {
			return lockErr
		}
		defer func() {
			if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
				l.deps.Logger.WarnContext(ctx, "Failed to release order lock",
					"order_id", id.String(), "error", relErr)
			}
		}()
	}

	uow := l.deps.UoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return persistenceError(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if err != nil {
		return persistenceError(err)
	}

	previous := o.Status()

	refunded, err := apply(ctx, o)
	if err != nil {
		if refunded {
			return onPartialFailure(ctx, o, err)
		}
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if refunded {
			return onPartialFailure(ctx, o, err)
		}
		return persistenceError(err)
	}

	if err = uow.Commit(ctx); err != nil {
		if refunded {
			return onPartialFailure(ctx, o, err)
		}
		return persistenceError(err)
	}

	l.deps.Logger.InfoContext(ctx, "Order transition committed",
		"order_id", id.String(),
		"transition", string(transition),
		"from", previous.String(),
		"status", o.Status().String(),
		"payment_status", o.PaymentStatus().String(),
		"refunded", refunded,
	)
	l.publish(ctx, transition, previous, o)
	return nil
}

func (l lifecycle) publish(ctx context.Context, transition order.Transition, previous order.Status, o *order.Order) {
	if l.deps.Publisher == nil {
		return
	}

	event := ports.OrderStatusChanged{
		OrderID:        o.ID(),
		Transition:     transition,
		Status:         o.Status(),
		PaymentStatus:  o.PaymentStatus(),
		PreviousStatus: previous,
		OccurredAt:     l.now(),
	}
	if err := l.deps.Publisher.PublishStatusChanged(ctx, event); err != nil {
		l.deps.Logger.WarnContext(ctx, "Failed to publish order status change",
			"order_id", o.ID().String(), "transition", string(transition), "error", err)
	}
}

func (l lifecycle) observe(transition order.Transition, err error) {
	if l.deps.Observer == nil {
		return
	}
	l.deps.Observer.ObserveTransition(transition, outcomeOf(err))
}

func (l lifecycle) observeRefund(outcome string) {
	if l.deps.Observer != nil {
		l.deps.Observer.ObserveRefund(outcome)
	}
}

func outcomeOf(err error) string {
	var partial *PartialFailureError
	switch {
	case err == nil:
		return OutcomeSucceeded
	case errors.As(err, &partial):
		return OutcomePartialFailure
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, ports.ErrOrderLocked):
		return OutcomeLocked
	case errors.Is(err, ErrPaymentGateway):
		return OutcomeGatewayFailed
	case errors.Is(err, ErrPersistence):
		return OutcomePersistFailed
	default:
		return OutcomeRejected
	}
}
