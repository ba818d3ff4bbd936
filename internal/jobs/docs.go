// Package jobs provides scheduled background tasks for the delivery service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchJob - Periodically matches pending deliveries with eligible
// partners so deliveries left unmatched (no partner available at creation
// time) are picked up without operator action.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The dispatch job logs every failure. An unmatched backlog is not an error:
// the handler commits and leaves those deliveries pending for the next tick.
package jobs
