package rabbitmq_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRabbitMQ(t *testing.T) *amqp.Connection {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	conn, err := amqp.DialConfig("amqp://"+host+":"+mappedPort.Port()+"/", amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()

		_ = conn.Close()
		_ = container.Terminate(cleanupCtx)
	})
	return conn
}

func TestNewOrderStatusChangedMessage(t *testing.T) {
	id := kernel.NewUUID()
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	msg := rabbitmq.NewOrderStatusChangedMessage(ports.OrderStatusChanged{
		OrderID:        id,
		Transition:     order.StartProcessing,
		Status:         order.InProcess,
		PaymentStatus:  order.PaymentApproved,
		PreviousStatus: order.Approved,
		OccurredAt:     at,
	})

	assert.Equal(t, "OrderStatusChanged", msg.EventType)
	assert.Equal(t, id.String(), msg.OrderID)
	assert.Equal(t, "start_processing", msg.Transition)
	assert.Equal(t, "Processing", msg.Status)
	assert.Equal(t, "Approved", msg.PaymentStatus)
	assert.Equal(t, "Approved", msg.PreviousStatus)
	assert.Equal(t, time.UTC, msg.OccurredAt.Location())
	assert.True(t, msg.OccurredAt.Equal(at))
}

func TestPublisher_PublishStatusChanged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping RabbitMQ container test in short mode")
	}

	conn := startRabbitMQ(t)

	publisher, err := rabbitmq.NewPublisher(conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	consumeCh, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumeCh.Close() })

	msgs, err := consumeCh.Consume(
		rabbitmq.OrderStatusChangedQueue,
		"publisher-test",
		true,  // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	require.NoError(t, err)

	id := kernel.NewUUID()
	err = publisher.PublishStatusChanged(t.Context(), ports.OrderStatusChanged{
		OrderID:        id,
		Transition:     order.Cancel,
		Status:         order.Cancelled,
		PaymentStatus:  order.PaymentRefunded,
		PreviousStatus: order.Approved,
		OccurredAt:     time.Now(),
	})
	require.NoError(t, err)

	select {
	case delivery := <-msgs:
		assert.Equal(t, "application/json", delivery.ContentType)
		assert.Equal(t, "OrderStatusChanged", delivery.Type)

		var got rabbitmq.OrderStatusChangedMessage
		require.NoError(t, json.Unmarshal(delivery.Body, &got))
		assert.Equal(t, id.String(), got.OrderID)
		assert.Equal(t, "cancel", got.Transition)
		assert.Equal(t, "Cancelled", got.Status)
		assert.Equal(t, "Refunded", got.PaymentStatus)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for OrderStatusChanged")
	}
}
