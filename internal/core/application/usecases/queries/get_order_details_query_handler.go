package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads an order and its line items with raw SQL.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist. An
// order without line items has an empty Lines slice and a zero Total.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	response, err := h.header(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	details, err := h.lines(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	response.Lines = make([]OrderLineResponse, 0, len(details))
	for _, d := range details {
		response.Lines = append(response.Lines, OrderLineResponse{
			ProductName: d.ProductName,
			Count:       d.Count,
			Price:       d.Price,
			Subtotal:    d.Subtotal(),
		})
	}
	response.Total = order.Total(details)

	return response, nil
}

func (h GetOrderDetailsQueryHandler) header(ctx context.Context, id kernel.UUID) (GetOrderDetailsQueryResponse, error) {
	var (
		response      GetOrderDetailsQueryResponse
		status        int
		paymentStatus int
		shippingDate  sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			payment_status,
			payment_intent,
			carrier,
			tracking_number,
			shipping_date,
			version
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Row()

	err := row.Scan(
		&status,
		&paymentStatus,
		&response.PaymentIntent,
		&response.Carrier,
		&response.TrackingNumber,
		&shippingDate,
		&response.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	response.ID = id
	response.Status = order.Status(status)
	response.PaymentStatus = order.PaymentStatus(paymentStatus)
	if err = errors.Join(response.Status.Validate(), response.PaymentStatus.Validate()); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	if shippingDate.Valid {
		t := shippingDate.Time.In(time.UTC)
		response.ShippingDate = &t
	}

	return response, nil
}

func (h GetOrderDetailsQueryHandler) lines(ctx context.Context, id kernel.UUID) ([]order.Detail, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_name,
			count,
			price
		FROM order_details
		WHERE order_id = ?
		ORDER BY id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]order.Detail, 0)
	for rows.Next() {
		var (
			productName string
			count       int
			price       decimal.Decimal
		)
		if err = rows.Scan(&productName, &count, &price); err != nil {
			return nil, err
		}

		detail, detailErr := order.NewDetail(productName, count, price)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
