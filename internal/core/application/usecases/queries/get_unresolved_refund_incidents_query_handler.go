package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetUnresolvedRefundIncidentsQueryHandler reads through the incident port,
// the same store RefundIncidentReportJob reports from.
type GetUnresolvedRefundIncidentsQueryHandler struct {
	incidents ports.RefundIncidentRecorder
}

func NewGetUnresolvedRefundIncidentsQueryHandler(
	incidents ports.RefundIncidentRecorder,
) GetUnresolvedRefundIncidentsQueryHandler {
	return GetUnresolvedRefundIncidentsQueryHandler{incidents: incidents}
}

// Handle never returns nil slices, so an empty backlog renders as [].
func (h GetUnresolvedRefundIncidentsQueryHandler) Handle(
	ctx context.Context,
	query GetUnresolvedRefundIncidentsQuery,
) ([]RefundIncidentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	unresolved, err := h.incidents.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]RefundIncidentResponse, 0, len(unresolved))
	for _, incident := range unresolved {
		res = append(res, RefundIncidentResponse{
			ID:            incident.ID,
			OrderID:       incident.OrderID,
			PaymentIntent: incident.PaymentIntent,
			Cause:         incident.Cause,
			OccurredAt:    incident.OccurredAt,
		})
	}
	return res, nil
}
