package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DemoReportRefresher re-simulates the demo portfolios and caches the reports
type DemoReportRefresher interface {
	RefreshDemoReports(ctx context.Context) error
}

// DemoReportsJob keeps the demo portfolio reports warm
type DemoReportsJob struct {
	refresher DemoReportRefresher
	timeout   time.Duration
	log       zerolog.Logger
}

// NewDemoReportsJob creates a new DemoReportsJob. A non-positive timeout
// lets a run take as long as it needs.
func NewDemoReportsJob(refresher DemoReportRefresher, timeout time.Duration) *DemoReportsJob {
	return &DemoReportsJob{
		refresher: refresher,
		timeout:   timeout,
		log:       zerolog.Nop(),
	}
}

// SetLogger sets the logger for the job
func (j *DemoReportsJob) SetLogger(log zerolog.Logger) {
	j.log = log.With().Str("job", j.Name()).Logger()
}

// Name returns the job name
func (j *DemoReportsJob) Name() string {
	return "demo_reports"
}

// Run executes the demo reports job
func (j *DemoReportsJob) Run() error {
	runID := uuid.NewString()
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.refresher.RefreshDemoReports(ctx); err != nil {
		return fmt.Errorf("demo reports run %s: %w", runID, err)
	}

	j.log.Info().
		Str("run_id", runID).
		Dur("elapsed", time.Since(start)).
		Msg("Demo reports refreshed")
	return nil
}
