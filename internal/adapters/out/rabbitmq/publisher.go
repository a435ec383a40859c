// Package rabbitmq publishes order lifecycle events to RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderStatusChangedQueue = "order.status.changed"

	orderStatusChangedEventType = "OrderStatusChanged"
	publishTimeout              = 3 * time.Second
)

// OrderStatusChangedMessage is the JSON body published for every committed
// transition. Statuses are their display names.
type OrderStatusChangedMessage struct {
	EventType      string    `json:"eventType"`
	OrderID        string    `json:"orderId"`
	Transition     string    `json:"transition"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	PreviousStatus string    `json:"previousStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Publisher implements ports.OrderEventPublisher on one AMQP channel.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens a channel on conn and declares the durable queue, so
// publishing never fails because of missing infrastructure.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		OrderStatusChangedQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderStatusChangedQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(NewOrderStatusChangedMessage(event))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", orderStatusChangedEventType, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",                      // default exchange
		OrderStatusChangedQueue, // queue name as routing key
		false,                   // mandatory
		false,                   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.OrderID.String() + ":" + string(event.Transition) + ":" + event.OccurredAt.Format(time.RFC3339Nano),
			Timestamp:    event.OccurredAt,
			Type:         orderStatusChangedEventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", orderStatusChangedEventType, err)
	}
	return nil
}

func NewOrderStatusChangedMessage(event ports.OrderStatusChanged) OrderStatusChangedMessage {
	return OrderStatusChangedMessage{
		EventType:      orderStatusChangedEventType,
		OrderID:        event.OrderID.String(),
		Transition:     string(event.Transition),
		Status:         event.Status.String(),
		PaymentStatus:  event.PaymentStatus.String(),
		PreviousStatus: event.PreviousStatus.String(),
		OccurredAt:     event.OccurredAt.UTC(),
	}
}
