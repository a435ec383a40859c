package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// ResolveRefundIncidentCommandHandler marks a refund incident resolved, which
// stops RefundIncidentReportJob from reporting it.
type ResolveRefundIncidentCommandHandler struct {
	incidents ports.RefundIncidentRecorder
	clock     func() time.Time
	logger    *slog.Logger
}

// NewResolveRefundIncidentCommandHandler defaults clock to time.Now and
// logger to slog.Default().
func NewResolveRefundIncidentCommandHandler(
	incidents ports.RefundIncidentRecorder,
	clock func() time.Time,
	logger *slog.Logger,
) ResolveRefundIncidentCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ResolveRefundIncidentCommandHandler{
		incidents: incidents,
		clock:     clock,
		logger:    logger.With("component", "resolve_refund_incident_handler"),
	}
}

// Handle returns errs.ObjectNotFoundError for unknown or already resolved
// incidents.
func (h ResolveRefundIncidentCommandHandler) Handle(ctx context.Context, cmd ResolveRefundIncidentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	resolvedAt := h.clock().UTC()
	if err := h.incidents.Resolve(ctx, cmd.IncidentID(), resolvedAt); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Refund incident resolved",
		"incident_id", cmd.IncidentID(), "resolved_at", resolvedAt)
	return nil
}
