package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Refund(ctx context.Context, orderID kernel.UUID, paymentIntent string) error {
	args := m.Called(ctx, orderID, paymentIntent)
	return args.Error(0)
}

type MockIncidentRecorder struct{ mock.Mock }

func (m *MockIncidentRecorder) Record(ctx context.Context, incident ports.RefundIncident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockIncidentRecorder) ListUnresolved(ctx context.Context) ([]ports.RefundIncident, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RefundIncident), args.Error(1)
}

func (m *MockIncidentRecorder) Resolve(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, id kernel.UUID) (func(context.Context) error, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveTransition(transition order.Transition, outcome string) {
	m.Called(transition, outcome)
}

func (m *MockObserver) ObserveRefund(outcome string) {
	m.Called(outcome)
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lifecycleDeps(factory *MockOrderUoWFactory) commands.LifecycleDeps {
	return commands.LifecycleDeps{
		UoWFactory: factory,
		Logger:     quietLogger(),
		Clock:      func() time.Time { return fixedNow },
	}
}

func restoreOrder(t *testing.T, status order.Status, payment order.PaymentStatus, intent string) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), status, payment, intent, order.Shipment{}, 1)
	require.NoError(t, err)
	return o
}
