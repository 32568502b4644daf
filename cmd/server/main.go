// Package main is the entry point for the portfolio risk service.
// It serves Monte Carlo risk simulations and risk-fusion decisions over HTTP
// and periodically refreshes the reports of the built-in demo portfolios.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finsentinel/sentinel/internal/config"
	"github.com/finsentinel/sentinel/internal/di"
	"github.com/finsentinel/sentinel/internal/server"
	"github.com/finsentinel/sentinel/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "risk",
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Uint64("seed", cfg.Simulation.Seed).
		Int("default_simulations", cfg.Simulation.DefaultSimulations).
		Int("default_horizon_days", cfg.Simulation.DefaultHorizonDays).
		Msg("Starting risk service")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
		Jobs:      jobs,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	container.Scheduler.Start()

	// Warm the demo report cache without waiting for the first tick
	go func() {
		if err := container.Scheduler.RunNow(jobs.DemoReports); err != nil {
			log.Error().Err(err).Msg("Initial demo report refresh failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.Scheduler.Stop()
	log.Info().Msg("Scheduler stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
