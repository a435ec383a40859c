// Package queries contains read operations. Queries bypass the aggregates
// and read straight from the database into response models.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery asks for the header and line items of one order.
//
// Example:
//
//	query, err := NewGetOrderDetailsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderDetailsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return GetOrderDetailsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderDetailsQueryResponse is the read model of one order. Lines are
// sorted by insertion order; Total is the sum of line subtotals.
type GetOrderDetailsQueryResponse struct {
	ID             kernel.UUID
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	PaymentIntent  string
	Carrier        string
	TrackingNumber string
	ShippingDate   *time.Time
	Version        int
	Lines          []OrderLineResponse
	Total          decimal.Decimal
}

type OrderLineResponse struct {
	ProductName string
	Count       int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}
