package order

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Shipment is the carrier hand-off recorded by Ship. The zero value means
// "not shipped".
type Shipment struct {
	carrier        string
	trackingNumber string
	shippedAt      time.Time
}

// NewShipment requires a non-empty carrier and tracking number. Both errors
// are reported together.
func NewShipment(carrier, trackingNumber string, shippedAt time.Time) (Shipment, error) {
	var errCarrier, errTracking error
	if carrier == "" {
		errCarrier = errs.NewValueIsRequiredError("carrier")
	}
	if trackingNumber == "" {
		errTracking = errs.NewValueIsRequiredError("tracking number")
	}
	if err := errors.Join(errCarrier, errTracking); err != nil {
		return Shipment{}, err
	}
	if shippedAt.IsZero() {
		return Shipment{}, errs.NewValueIsRequiredError("shipping date")
	}

	return Shipment{carrier: carrier, trackingNumber: trackingNumber, shippedAt: shippedAt}, nil
}

func (s Shipment) Carrier() string {
	return s.carrier
}

func (s Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// ShippedAt returns nil for the zero Shipment.
func (s Shipment) ShippedAt() *time.Time {
	if s.shippedAt.IsZero() {
		return nil
	}
	t := s.shippedAt
	return &t
}

func (s Shipment) IsZero() bool {
	return s.carrier == "" && s.trackingNumber == "" && s.shippedAt.IsZero()
}
