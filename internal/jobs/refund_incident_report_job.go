package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultIncidentReportSchedule runs the report every five minutes.
const DefaultIncidentReportSchedule = "0 */5 * * * *"

// RefundIncidentReportJob periodically logs every unresolved refund incident
// at error level so operators reconcile them. It never retries a refund.
type RefundIncidentReportJob struct {
	incidents ports.RefundIncidentRecorder
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRefundIncidentReportJob uses a six-field cron schedule (with seconds).
// An empty schedule means DefaultIncidentReportSchedule.
func NewRefundIncidentReportJob(
	incidents ports.RefundIncidentRecorder,
	schedule string,
	logger *slog.Logger,
) *RefundIncidentReportJob {
	if schedule == "" {
		schedule = DefaultIncidentReportSchedule
	}
	return &RefundIncidentReportJob{
		incidents: incidents,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "refund_incident_report_job"),
	}
}

// Start schedules the report. An invalid schedule is returned as an error.
func (j *RefundIncidentReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Refund incident report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refund incident report job started", "schedule", j.schedule)
	return nil
}

// Run reports the unresolved incidents once and returns how many there were.
func (j *RefundIncidentReportJob) Run(ctx context.Context) (int, error) {
	unresolved, err := j.incidents.ListUnresolved(ctx)
	if err != nil {
		return 0, err
	}

	for _, incident := range unresolved {
		j.logger.ErrorContext(ctx, "Unresolved refund incident",
			"incident_id", incident.ID,
			"order_id", incident.OrderID.String(),
			"payment_intent", incident.PaymentIntent,
			"cause", incident.Cause,
			"occurred_at", incident.OccurredAt,
		)
	}
	return len(unresolved), nil
}

// Stop waits for a running report to finish.
func (j *RefundIncidentReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Refund incident report job stopped")
}
