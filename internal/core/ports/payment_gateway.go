package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// PaymentGateway issues refunds against captured payments.
type PaymentGateway interface {
	// Refund reverses the payment identified by paymentIntent. orderID keys
	// the gateway-side idempotency so a retried call cannot refund twice.
	Refund(ctx context.Context, orderID kernel.UUID, paymentIntent string) error
}
