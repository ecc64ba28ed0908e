package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultProbeSchedule runs the probe every 30 seconds.
const DefaultProbeSchedule = "*/30 * * * * *"

// Prober checks a dependency and brings it back into use when it answers.
type Prober interface {
	Probe(ctx context.Context) error
	PrimaryDown() bool
}

// CodeStoreProbeJob retries the Redis tier of the code store while the store
// runs on process memory.
type CodeStoreProbeJob struct {
	prober   Prober
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCodeStoreProbeJob creates the job. An empty schedule means
// DefaultProbeSchedule; the format has a leading seconds field.
func NewCodeStoreProbeJob(prober Prober, schedule string, timeout time.Duration, logger *slog.Logger) *CodeStoreProbeJob {
	if schedule == "" {
		schedule = DefaultProbeSchedule
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &CodeStoreProbeJob{
		prober:   prober,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "code_store_probe_job"),
	}
}

// Start registers the probe with the scheduler and starts it.
func (j *CodeStoreProbeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Code store probe job started", "schedule", j.schedule)
	return nil
}

// Run probes once. It does nothing while the primary tier is in use.
func (j *CodeStoreProbeJob) Run() {
	if !j.prober.PrimaryDown() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.prober.Probe(ctx); err != nil {
		j.logger.DebugContext(ctx, "Code store primary still unavailable", "error", err)
	}
}

// Stop stops the scheduler and waits for a running probe to finish.
func (j *CodeStoreProbeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Code store probe job stopped")
}
