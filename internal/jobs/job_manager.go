package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	refundIncidentReportJob *RefundIncidentReportJob
}

// NewJobManager wires the jobs to their ports.
func NewJobManager(
	incidents ports.RefundIncidentRecorder,
	incidentReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		refundIncidentReportJob: NewRefundIncidentReportJob(incidents, incidentReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.refundIncidentReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start refund incident report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.refundIncidentReportJob.Stop()
}
