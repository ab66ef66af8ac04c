// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery marketplace.
//
// # Available Jobs
//
// 1. AutoAssignJob - Periodically dispatches the oldest pending delivery to the best ranked courier
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(autoAssignHandler, "*/5 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch job uses a six-field cron expression with a seconds column,
// configured through the environment. Each tick handles at most one
// delivery, so the schedule also acts as a dispatch rate limit.
//
// # Error Handling
//
// An empty pending queue and an empty courier pool are expected business
// outcomes and are not logged as errors. Everything else indicates a
// system issue and is logged.
package jobs
