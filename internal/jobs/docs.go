// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. RefundIncidentReportJob - Lists refunds that were issued while the
// matching cancellation failed to commit, and logs each at error level.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(incidentRecorder, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed report run is logged and retried on the next tick. Operators list
// open incidents with GET /api/v1/refund-incidents and close a reconciled one
// with POST /api/v1/refund-incidents/{incidentId}/resolution, after which the
// job stops reporting it.
package jobs
