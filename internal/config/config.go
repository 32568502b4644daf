// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool
	DevMode   bool

	Simulation SimulationConfig

	FusionProfile       string
	DemoRefreshSchedule string // Cron schedule for the demo report job; empty disables it
}

// SimulationConfig holds the Monte Carlo engine settings
type SimulationConfig struct {
	Seed               uint64
	DefaultSimulations int
	DefaultHorizonDays int
	MaxSimulations     int
	MaxHorizonDays     int
	MaxAssets          int
	MaxDraws           int64
	Workers            int // 0 means one per CPU
	Timeout            time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvAsInt("PORT", 8000),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		DevMode:   getEnvAsBool("DEV_MODE", false),
		Simulation: SimulationConfig{
			Seed:               getEnvAsUint64("SIM_SEED", 42),
			DefaultSimulations: getEnvAsInt("SIM_DEFAULT_SIMULATIONS", 1000),
			DefaultHorizonDays: getEnvAsInt("SIM_DEFAULT_HORIZON_DAYS", 30),
			MaxSimulations:     getEnvAsInt("SIM_MAX_SIMULATIONS", 100000),
			MaxHorizonDays:     getEnvAsInt("SIM_MAX_HORIZON_DAYS", 2520),
			MaxAssets:          getEnvAsInt("SIM_MAX_ASSETS", 200),
			MaxDraws:           int64(getEnvAsInt("SIM_MAX_DRAWS", 50_000_000)),
			Workers:            getEnvAsInt("SIM_WORKERS", 0),
			Timeout:            time.Duration(getEnvAsInt("SIM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		FusionProfile:       getEnv("FUSION_PROFILE", "balanced"),
		DemoRefreshSchedule: getEnvAllowEmpty("DEMO_REFRESH_SCHEDULE", "@every 10m"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	sim := c.Simulation
	if sim.DefaultSimulations <= 0 {
		return fmt.Errorf("SIM_DEFAULT_SIMULATIONS must be positive, got %d", sim.DefaultSimulations)
	}
	if sim.DefaultHorizonDays <= 0 {
		return fmt.Errorf("SIM_DEFAULT_HORIZON_DAYS must be positive, got %d", sim.DefaultHorizonDays)
	}
	if sim.MaxSimulations > 0 && sim.DefaultSimulations > sim.MaxSimulations {
		return fmt.Errorf("SIM_DEFAULT_SIMULATIONS (%d) exceeds SIM_MAX_SIMULATIONS (%d)", sim.DefaultSimulations, sim.MaxSimulations)
	}
	if sim.MaxHorizonDays > 0 && sim.DefaultHorizonDays > sim.MaxHorizonDays {
		return fmt.Errorf("SIM_DEFAULT_HORIZON_DAYS (%d) exceeds SIM_MAX_HORIZON_DAYS (%d)", sim.DefaultHorizonDays, sim.MaxHorizonDays)
	}
	if sim.MaxSimulations < 0 || sim.MaxHorizonDays < 0 || sim.MaxAssets < 0 || sim.MaxDraws < 0 {
		return fmt.Errorf("simulation limits must not be negative")
	}
	if sim.Workers < 0 {
		return fmt.Errorf("SIM_WORKERS must not be negative, got %d", sim.Workers)
	}
	if sim.Timeout < 0 {
		return fmt.Errorf("SIM_TIMEOUT_SECONDS must not be negative")
	}

	if strings.TrimSpace(c.FusionProfile) == "" {
		return fmt.Errorf("FUSION_PROFILE must not be empty")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty returns defaultValue only when key is unset, so an
// explicitly empty value can switch a feature off
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
