// Package di provides dependency injection wiring and initialization.
//
// The Container holds every long-lived service instance. It is built once by
// Wire and passed to the server, so no package keeps global mutable state.
package di

import (
	"github.com/finsentinel/sentinel/internal/metrics"
	"github.com/finsentinel/sentinel/internal/modules/fusion"
	"github.com/finsentinel/sentinel/internal/modules/montecarlo"
	"github.com/finsentinel/sentinel/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	Metrics           *metrics.Metrics
	MonteCarloService *montecarlo.Service
	ProfileStore      *fusion.ProfileStore
	FusionService     *fusion.Service
	Scheduler         *scheduler.Scheduler
}

// JobInstances holds the registered background jobs so they can be triggered manually
type JobInstances struct {
	DemoReports *scheduler.DemoReportsJob
}
