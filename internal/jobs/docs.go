// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a leading seconds field.
//
// # Available Jobs
//
//  1. CodeStoreProbeJob - pings Redis while the code store runs on process
//     memory and switches it back once Redis answers again
//
// # Usage
//
//	probe := jobs.NewCodeStoreProbeJob(codeStore, "*/30 * * * * *", 2*time.Second, logger)
//	jobManager := jobs.NewJobManager(logger, probe)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed probe is expected while Redis is down and only logged at debug
// level. Failed job starts stop any already running jobs.
package jobs
