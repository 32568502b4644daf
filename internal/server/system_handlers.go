package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/finsentinel/sentinel/internal/di"
)

// SystemHandlers handles system-wide monitoring and operations
type SystemHandlers struct {
	container *di.Container
	jobs      *di.JobInstances
	startedAt time.Time
	log       zerolog.Logger
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(container *di.Container, jobs *di.JobInstances, startedAt time.Time, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		container: container,
		jobs:      jobs,
		startedAt: startedAt,
		log:       log.With().Str("service", "system").Logger(),
	}
}

// SystemStatusResponse represents the process and host status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`
	NumCPU        int     `json:"num_cpu"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Workers       int     `json:"workers"`
	ScheduledJobs int     `json:"scheduled_jobs"`
	DemoReports   int     `json:"demo_reports"`
	FusionProfile string  `json:"fusion_profile"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	mc := h.container.MonteCarloService
	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		Workers:       mc.Workers(),
		ScheduledJobs: h.container.Scheduler.Jobs(),
		DemoReports:   mc.Cache().Len(),
		FusionProfile: h.container.FusionService.ActiveProfile().Name,
	})
}

// HandleRunDemoReports triggers the demo report refresh immediately
func (h *SystemHandlers) HandleRunDemoReports(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.jobs.DemoReports == nil {
		h.log.Warn().Msg("Demo reports job not registered yet")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Demo reports job not registered",
		})
		return
	}

	h.log.Info().Msg("Manual demo report refresh triggered")

	job := h.jobs.DemoReports
	go func() {
		if err := h.container.Scheduler.RunNow(job); err != nil {
			h.log.Error().Err(err).Msg("Manual demo report refresh failed")
		}
	}()

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "success",
		"message": "Demo report refresh triggered successfully",
	})
}

// getSystemStats returns CPU and RAM usage, or zeros when unavailable
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent := 0.0
	percentages, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percent")
	} else if len(percentages) > 0 {
		cpuPercent = percentages[0]
	}

	ramPercent := 0.0
	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory stats")
	} else {
		ramPercent = memStat.UsedPercent
	}

	return cpuPercent, ramPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
