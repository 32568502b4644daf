package montecarlo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine runs the simulation pipeline: derive parameters, sample daily
// returns, compound portfolio paths, reduce to risk metrics.
//
// An Engine holds only its seed and validator, so concurrent Run calls are
// safe and identical requests produce identical metrics.
type Engine struct {
	seed      uint64
	validator *Validator
}

// NewEngine creates an engine with a fixed generator seed
func NewEngine(seed uint64, limits Limits) *Engine {
	return &Engine{
		seed:      seed,
		validator: NewValidator(limits),
	}
}

// Seed returns the generator seed every run starts from
func (e *Engine) Seed() uint64 {
	return e.seed
}

// Validate checks a request without running it
func (e *Engine) Validate(req PortfolioRequest) error {
	return e.validator.Validate(req)
}

// Run simulates one portfolio request
func (e *Engine) Run(ctx context.Context, req PortfolioRequest) (RiskReport, error) {
	if err := e.validator.Validate(req); err != nil {
		return RiskReport{}, err
	}

	params := DeriveAll(req.Assets)

	paths, err := SimulatePaths(ctx, params, req.Weights(), req.Simulations, req.HorizonDays, e.seed)
	if err != nil {
		return RiskReport{}, fmt.Errorf("failed to simulate paths: %w", err)
	}

	report := CalculateRiskMetrics(paths, req.Simulations, req.HorizonDays)
	if err := checkFinite(report); err != nil {
		return RiskReport{}, fmt.Errorf("failed to reduce paths: %w", err)
	}
	report.ReportID = uuid.NewString()
	report.Timestamp = time.Now().UTC()
	report.Constraints = req.Constraints

	return report, nil
}
