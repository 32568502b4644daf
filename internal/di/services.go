package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finsentinel/sentinel/internal/config"
	"github.com/finsentinel/sentinel/internal/metrics"
	"github.com/finsentinel/sentinel/internal/modules/fusion"
	"github.com/finsentinel/sentinel/internal/modules/montecarlo"
	"github.com/finsentinel/sentinel/internal/scheduler"
)

// InitializeServices creates every service and stores it in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.Metrics = metrics.New()

	sim := cfg.Simulation
	container.MonteCarloService = montecarlo.NewService(montecarlo.ServiceConfig{
		Seed: sim.Seed,
		Defaults: montecarlo.Defaults{
			Simulations: sim.DefaultSimulations,
			HorizonDays: sim.DefaultHorizonDays,
		},
		Limits: montecarlo.Limits{
			MaxSimulations: sim.MaxSimulations,
			MaxHorizonDays: sim.MaxHorizonDays,
			MaxAssets:      sim.MaxAssets,
			MaxDraws:       sim.MaxDraws,
		},
		Workers: sim.Workers,
		Timeout: sim.Timeout,
	}, container.Metrics, log)

	store, err := fusion.NewProfileStore(cfg.FusionProfile)
	if err != nil {
		return fmt.Errorf("failed to create fusion profile store: %w", err)
	}
	container.ProfileStore = store
	container.FusionService = fusion.NewService(store, container.Metrics, log)

	container.Scheduler = scheduler.New(container.Metrics, log)

	log.Info().
		Uint64("seed", sim.Seed).
		Int("workers", container.MonteCarloService.Workers()).
		Str("fusion_profile", store.Active().Name).
		Msg("Services initialized")

	return nil
}
