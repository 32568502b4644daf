package server

import (
	"encoding/json"
	"net/http"

	"github.com/finsentinel/sentinel/internal/modules/fusion"
	"github.com/finsentinel/sentinel/internal/modules/montecarlo"
)

const (
	serviceName = "risk"
	version     = "1.0.0"
)

// InfoResponse is static service metadata
type InfoResponse struct {
	Name     string       `json:"name"`
	Version  string       `json:"version"`
	Seed     uint64       `json:"seed"`
	Defaults InfoDefaults `json:"defaults"`
	Limits   InfoLimits   `json:"limits"`
	Fusion   []string     `json:"fusionProfiles"`
}

// InfoDefaults are the values applied to absent request fields
type InfoDefaults struct {
	Simulations int `json:"simulations"`
	HorizonDays int `json:"horizonDays"`
}

// InfoLimits are the per-request limits
type InfoLimits struct {
	MaxSimulations int   `json:"maxSimulations"`
	MaxHorizonDays int   `json:"maxHorizonDays"`
	MaxAssets      int   `json:"maxAssets"`
	MaxDraws       int64 `json:"maxDraws"`
	MaxBatch       int   `json:"maxBatch"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"service": serviceName,
	})
}

// handleInfo handles GET /api/info
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	mc := s.container.MonteCarloService
	defaults := mc.Defaults()
	limits := mc.Limits()

	s.writeJSON(w, http.StatusOK, InfoResponse{
		Name:    serviceName,
		Version: version,
		Seed:    mc.Seed(),
		Defaults: InfoDefaults{
			Simulations: defaults.Simulations,
			HorizonDays: defaults.HorizonDays,
		},
		Limits: InfoLimits{
			MaxSimulations: limits.MaxSimulations,
			MaxHorizonDays: limits.MaxHorizonDays,
			MaxAssets:      limits.MaxAssets,
			MaxDraws:       limits.MaxDraws,
			MaxBatch:       montecarlo.MaxBatchPortfolios,
		},
		Fusion: fusion.ProfileNames(),
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
