package montecarlo

import (
	"context"
	"fmt"
	"math"
)

// PortfolioDailyReturns returns the weighted daily portfolio returns of
// simulation s: daily[h] = sum over a of weights[a] * draws[s][h][a].
func PortfolioDailyReturns(t *DrawTensor, weights []float64, s int) []float64 {
	daily := make([]float64, t.Days)
	for h := 0; h < t.Days; h++ {
		daily[h] = weightedSum(t.Day(s, h), weights)
	}
	return daily
}

// AggregatePaths compounds the weighted daily portfolio return of every
// simulation over the horizon and returns the terminal values and returns.
//
// cum[0] = 1 + daily[0], cum[h] = cum[h-1] * (1 + daily[h]); the terminal
// value is cum[H-1] and the terminal return is that value minus one.
// A path that leaves the float64 range is ErrNumericDegenerate.
func AggregatePaths(t *DrawTensor, weights []float64) (PathSet, error) {
	if len(weights) != t.Assets {
		return PathSet{}, fmt.Errorf("%w: %d weights for %d assets", ErrInvalidRequest, len(weights), t.Assets)
	}
	if t.Days == 0 {
		return PathSet{}, invalid("horizonDays", "must be positive")
	}

	paths := newPathSet(t.Simulations)
	for s := 0; s < t.Simulations; s++ {
		if err := paths.record(s, compoundSimulation(t, weights, s)); err != nil {
			return PathSet{}, err
		}
	}

	return paths, nil
}

// SimulatePaths samples and compounds one simulation at a time, so only a
// days x assets block of draws is held in memory. Draws are consumed in the
// same order as SampleReturns, and the result equals AggregatePaths over
// the full tensor.
func SimulatePaths(ctx context.Context, params []AssetParams, weights []float64, simulations, days int, seed uint64) (PathSet, error) {
	if err := checkShape(params, simulations, days); err != nil {
		return PathSet{}, err
	}
	if len(weights) != len(params) {
		return PathSet{}, fmt.Errorf("%w: %d weights for %d assets", ErrInvalidRequest, len(weights), len(params))
	}

	dists, err := normalsFor(params, seed)
	if err != nil {
		return PathSet{}, err
	}

	block := NewDrawTensor(1, days, len(params))
	paths := newPathSet(simulations)
	for s := 0; s < simulations; s++ {
		if err := ctx.Err(); err != nil {
			return PathSet{}, err
		}
		drawSimulation(block, 0, dists)
		if err := paths.record(s, compoundSimulation(block, weights, 0)); err != nil {
			return PathSet{}, err
		}
	}

	return paths, nil
}

func newPathSet(simulations int) PathSet {
	return PathSet{
		TerminalValues:  make([]float64, simulations),
		TerminalReturns: make([]float64, simulations),
	}
}

func (p PathSet) record(s int, terminal float64) error {
	if math.IsNaN(terminal) || math.IsInf(terminal, 0) {
		return fmt.Errorf("%w: simulation %d terminal value %v", ErrNumericDegenerate, s, terminal)
	}
	p.TerminalValues[s] = terminal
	p.TerminalReturns[s] = terminal - 1
	return nil
}

func compoundSimulation(t *DrawTensor, weights []float64, s int) float64 {
	cumulative := 1.0
	for h := 0; h < t.Days; h++ {
		cumulative *= 1 + weightedSum(t.Day(s, h), weights)
	}
	return cumulative
}

func weightedSum(draws, weights []float64) float64 {
	sum := 0.0
	for a, w := range weights {
		sum += w * draws[a]
	}
	return sum
}
