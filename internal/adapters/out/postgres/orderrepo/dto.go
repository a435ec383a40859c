// Package orderrepo maps the order aggregate to the orders table and back.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row shape of the orders table. Status and PaymentStatus
// hold the numeric enum values.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status         int       `gorm:"type:smallint;not null;index"`
	PaymentStatus  int       `gorm:"type:smallint;not null"`
	PaymentIntent  string    `gorm:"type:varchar(255);not null;default:''"`
	Carrier        string    `gorm:"type:varchar(100);not null;default:''"`
	TrackingNumber string    `gorm:"type:varchar(100);not null;default:''"`
	ShippingDate   *time.Time
	Version        int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDetailDTO is one line item. The lifecycle never writes it; checkout
// owns the rows and the details query reads them.
type OrderDetailDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Count       int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

func fromDomain(o *order.Order) OrderDTO {
	shipment := o.Shipment()
	return OrderDTO{
		ID:             o.ID().Bytes(),
		Status:         int(o.Status()),
		PaymentStatus:  int(o.PaymentStatus()),
		PaymentIntent:  o.PaymentIntent(),
		Carrier:        shipment.Carrier(),
		TrackingNumber: shipment.TrackingNumber(),
		ShippingDate:   shipment.ShippedAt(),
		Version:        o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var shipment order.Shipment
	if dto.ShippingDate != nil {
		shipment, err = order.NewShipment(dto.Carrier, dto.TrackingNumber, dto.ShippingDate.UTC())
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.PaymentIntent,
		shipment,
		dto.Version,
	)
}

// updateColumns lists every mutable column explicitly so zero values such as
// an empty payment intent are written too.
func updateColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":          dto.Status,
		"payment_status":  dto.PaymentStatus,
		"payment_intent":  dto.PaymentIntent,
		"carrier":         dto.Carrier,
		"tracking_number": dto.TrackingNumber,
		"shipping_date":   dto.ShippingDate,
		"version":         dto.Version + 1,
	}
}
