// Package stripe implements ports.PaymentGateway on top of the Stripe
// Refunds API.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	// ErrRefundNotCompleted is returned when Stripe accepted the request but
	// reported the refund as failed or canceled.
	ErrRefundNotCompleted = errors.New("refund not completed")

	ErrAPIKeyIsRequired = errors.New("stripe API key is required")
)

// Config configures the gateway. APIURL overrides the Stripe endpoint, for
// stripe-mock or tests.
type Config struct {
	APIKey     string
	APIURL     string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Gateway refunds captured payment intents.
type Gateway struct {
	api    *client.API
	logger *slog.Logger
}

func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyIsRequired
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	logger := cfg.Logger.With("component", "stripe_gateway")

	backendConfig := &stripe.BackendConfig{
		HTTPClient: cfg.HTTPClient,
		// No retries inside the gateway.
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     leveledLogger{logger: logger},
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)
	api := client.New(cfg.APIKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Gateway{api: api, logger: logger}, nil
}

// Refund refunds the full amount of paymentIntent. The idempotency key is
// derived from the order ID, so Stripe answers a repeated call with the
// original refund instead of issuing a second one.
//
// Stripe stores the result of every request that started executing,
// failures included, for 24 hours. A retry within that window replays the
// stored failure without reaching the payment again; only requests that
// never got a response (network errors) are executed anew.
func (g *Gateway) Refund(ctx context.Context, orderID kernel.UUID, paymentIntent string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntent),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.SetIdempotencyKey(IdempotencyKey(orderID))
	params.AddMetadata("order_id", orderID.String())

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return fmt.Errorf("stripe refund of %s: %s (%s): %w",
				paymentIntent, stripeErr.Code, stripeErr.Msg, err)
		}
		return fmt.Errorf("stripe refund of %s: %w", paymentIntent, err)
	}

	switch refund.Status {
	case stripe.RefundStatusFailed, stripe.RefundStatusCanceled:
		return fmt.Errorf("%w: refund %s of %s is %s (%s)",
			ErrRefundNotCompleted, refund.ID, paymentIntent, refund.Status, refund.FailureReason)
	}

	g.logger.InfoContext(ctx, "Refund issued",
		"order_id", orderID.String(),
		"payment_intent", paymentIntent,
		"refund_id", refund.ID,
		"refund_status", string(refund.Status),
	)
	return nil
}

// IdempotencyKey is the Stripe idempotency key used for the refund of an
// order.
func IdempotencyKey(orderID kernel.UUID) string {
	return "order-refund-" + orderID.String()
}

// leveledLogger routes stripe-go's internal logging into slog.
type leveledLogger struct {
	logger *slog.Logger
}

func (l leveledLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l leveledLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
