package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finsentinel/sentinel/internal/config"
	"github.com/finsentinel/sentinel/internal/scheduler"
)

// RegisterJobs creates the background jobs and registers those with a
// schedule. Jobs are always created so they can be run manually.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	demoReports := scheduler.NewDemoReportsJob(container.MonteCarloService, cfg.Simulation.Timeout)
	demoReports.SetLogger(log)

	jobs := &JobInstances{
		DemoReports: demoReports,
	}

	if cfg.DemoRefreshSchedule == "" {
		log.Info().Str("job", demoReports.Name()).Msg("Job schedule disabled")
		return jobs, nil
	}

	if err := container.Scheduler.AddJob(cfg.DemoRefreshSchedule, demoReports); err != nil {
		return nil, fmt.Errorf("failed to register %s job: %w", demoReports.Name(), err)
	}

	return jobs, nil
}
