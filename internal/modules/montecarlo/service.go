package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// MaxBatchPortfolios bounds the number of portfolios in one batch request
const MaxBatchPortfolios = 64

// Outcome labels reported to the Recorder
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeTimeout    = "timeout"
	OutcomeDegenerate = "degenerate"
	OutcomeError      = "error"
)

// Recorder receives one observation per simulation run
type Recorder interface {
	ObserveSimulation(outcome string, assets, simulations, horizonDays int, elapsed time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSimulation(string, int, int, int, time.Duration) {}

// ServiceConfig configures the simulation service
type ServiceConfig struct {
	Seed     uint64
	Defaults Defaults
	Limits   Limits
	Workers  int
	Timeout  time.Duration
}

// Service hosts the engine for request handlers and background jobs
type Service struct {
	engine   *Engine
	defaults Defaults
	limits   Limits
	pool     *WorkerPool
	cache    *ReportCache
	timeout  time.Duration
	recorder Recorder
	log      zerolog.Logger
}

// NewService creates a new simulation service. A nil recorder disables
// observations; zero workers means one per CPU.
func NewService(cfg ServiceConfig, recorder Recorder, log zerolog.Logger) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 2 {
			workers = 2
		}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		engine:   NewEngine(cfg.Seed, cfg.Limits),
		defaults: cfg.Defaults,
		limits:   cfg.Limits,
		pool:     NewWorkerPool(workers),
		cache:    NewReportCache(),
		timeout:  cfg.Timeout,
		recorder: recorder,
		log:      log.With().Str("service", "montecarlo").Logger(),
	}
}

// Defaults returns the values applied to absent request fields
func (s *Service) Defaults() Defaults {
	return s.defaults
}

// Limits returns the per-request limits
func (s *Service) Limits() Limits {
	return s.limits
}

// Seed returns the generator seed
func (s *Service) Seed() uint64 {
	return s.engine.Seed()
}

// Workers returns the batch worker count
func (s *Service) Workers() int {
	return s.pool.Workers()
}

// Cache returns the demo report cache
func (s *Service) Cache() *ReportCache {
	return s.cache
}

// Simulate resolves defaults and runs one request under the service timeout
func (s *Service) Simulate(ctx context.Context, in PortfolioInput) (RiskReport, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.run(ctx, in.Resolve(s.defaults))
}

// SimulateBatch runs every portfolio on the worker pool. Results keep input
// order; a failing portfolio is reported in place and in Errors.
func (s *Service) SimulateBatch(ctx context.Context, inputs []PortfolioInput) (BatchResponse, error) {
	if len(inputs) == 0 {
		return BatchResponse{}, invalid("portfolios", "must contain at least one portfolio")
	}
	if len(inputs) > MaxBatchPortfolios {
		return BatchResponse{}, invalid("portfolios", fmt.Sprintf("must not contain more than %d portfolios", MaxBatchPortfolios))
	}

	requests := make([]PortfolioRequest, len(inputs))
	for i, in := range inputs {
		requests[i] = in.Resolve(s.defaults)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	outcomes := s.pool.RunBatch(ctx, requests, s.run)

	response := BatchResponse{
		Results: make([]BatchResult, len(outcomes)),
		Errors:  []string{},
	}
	for i, outcome := range outcomes {
		result := BatchResult{Index: i}
		if outcome.err != nil {
			result.Error = outcome.err.Error()
			response.Errors = append(response.Errors, fmt.Sprintf("portfolio %d: %s", i, outcome.err))
		} else {
			report := outcome.report
			result.Report = &report
		}
		response.Results[i] = result
	}

	s.log.Info().
		Int("portfolios", len(inputs)).
		Int("failed", len(response.Errors)).
		Dur("elapsed", time.Since(start)).
		Msg("Batch simulation completed")

	return response, nil
}

// Params derives the sampling parameters for one symbol
func (s *Service) Params(symbol string) (AssetParams, error) {
	if NormalizeSymbol(symbol) == "" {
		return AssetParams{}, invalid("symbol", "is required")
	}
	return DeriveParams(symbol), nil
}

// DemoCases returns the built-in demo portfolios
func (s *Service) DemoCases() []DemoPortfolio {
	return DemoPortfolios()
}

// RefreshDemoReports simulates every demo portfolio and stores the results in
// the cache. It returns an error if any portfolio failed.
func (s *Service) RefreshDemoReports(ctx context.Context) error {
	demos := DemoPortfolios()
	inputs := make([]PortfolioInput, len(demos))
	for i, demo := range demos {
		inputs[i] = demo.Request
	}

	response, err := s.SimulateBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("failed to simulate demo portfolios: %w", err)
	}

	now := time.Now().UTC()
	failed := 0
	for i, result := range response.Results {
		var runErr error
		if result.Error != "" {
			runErr = errors.New(result.Error)
			failed++
		}
		s.cache.Store(demos[i].Name, result.Report, runErr, now)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d demo portfolios failed", failed, len(demos))
	}

	s.log.Debug().Int("portfolios", len(demos)).Msg("Demo reports refreshed")
	return nil
}

func (s *Service) run(ctx context.Context, req PortfolioRequest) (RiskReport, error) {
	start := time.Now()
	report, err := s.engine.Run(ctx, req)
	elapsed := time.Since(start)

	outcome := Outcome(err)
	s.recorder.ObserveSimulation(outcome, len(req.Assets), req.Simulations, req.HorizonDays, elapsed)

	if err != nil {
		s.log.Debug().
			Err(err).
			Str("outcome", outcome).
			Int("assets", len(req.Assets)).
			Int("simulations", req.Simulations).
			Int("horizon_days", req.HorizonDays).
			Msg("Simulation rejected")
		return RiskReport{}, err
	}

	s.log.Debug().
		Str("report_id", report.ReportID).
		Int("assets", len(req.Assets)).
		Int("simulations", req.Simulations).
		Int("horizon_days", req.HorizonDays).
		Float64("var95", report.VaR95).
		Float64("cvar95", report.CVaR95).
		Dur("elapsed", elapsed).
		Msg("Simulation completed")

	return report, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Outcome classifies a run error into a Recorder outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInvalidRequest):
		return OutcomeInvalid
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return OutcomeTimeout
	case errors.Is(err, ErrNumericDegenerate):
		return OutcomeDegenerate
	default:
		return OutcomeError
	}
}
