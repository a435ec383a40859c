// Package incidentrepo stores refund incidents: refunds the payment gateway
// accepted while the matching cancellation failed to commit.
package incidentrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefundIncidentDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null"`
	PaymentIntent string    `gorm:"type:varchar(255);not null"`
	Cause         string    `gorm:"type:text;not null"`
	OccurredAt    time.Time `gorm:"not null"`
	ResolvedAt    *time.Time
}

func (RefundIncidentDTO) TableName() string {
	return "refund_incidents"
}

// GormRefundIncidentRecorder implements ports.RefundIncidentRecorder. It uses
// the plain connection, never the transaction of the failed command.
type GormRefundIncidentRecorder struct {
	db *gorm.DB
}

func NewGormRefundIncidentRecorder(db *gorm.DB) *GormRefundIncidentRecorder {
	return &GormRefundIncidentRecorder{db: db}
}

func (r *GormRefundIncidentRecorder) Record(ctx context.Context, incident ports.RefundIncident) error {
	if err := incident.OrderID.Validate(); err != nil {
		return err
	}

	dto := RefundIncidentDTO{
		OrderID:       incident.OrderID.Bytes(),
		PaymentIntent: incident.PaymentIntent,
		Cause:         incident.Cause,
		OccurredAt:    incident.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListUnresolved returns open incidents, oldest first.
func (r *GormRefundIncidentRecorder) ListUnresolved(ctx context.Context) ([]ports.RefundIncident, error) {
	var dtos []RefundIncidentDTO
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	incidents := make([]ports.RefundIncident, 0, len(dtos))
	for _, dto := range dtos {
		orderID, idErr := kernel.UUIDFromGoogle(dto.OrderID)
		if idErr != nil {
			return nil, idErr
		}
		incidents = append(incidents, ports.RefundIncident{
			ID:            dto.ID,
			OrderID:       orderID,
			PaymentIntent: dto.PaymentIntent,
			Cause:         dto.Cause,
			OccurredAt:    dto.OccurredAt.UTC(),
			ResolvedAt:    dto.ResolvedAt,
		})
	}
	return incidents, nil
}

// Resolve closes an open incident. Unknown or already resolved IDs yield
// errs.ErrObjectNotFound.
func (r *GormRefundIncidentRecorder) Resolve(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&RefundIncidentDTO{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Update("resolved_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("refund incident", id)
	}
	return nil
}
