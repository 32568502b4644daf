package montecarlo

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the generator seed used when none is configured
const DefaultSeed uint64 = 42

// seedStream selects the PCG stream. It is fixed so that a seed alone
// determines every draw.
const seedStream uint64 = 0x9e3779b97f4a7c15

// NewSource returns the deterministic random source for a seed
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seedStream)
}

// DrawTensor holds simulated daily returns indexed by (simulation, day, asset)
// in row-major order.
type DrawTensor struct {
	Simulations int
	Days        int
	Assets      int
	data        []float64
}

// NewDrawTensor allocates a zeroed tensor
func NewDrawTensor(simulations, days, assets int) *DrawTensor {
	return &DrawTensor{
		Simulations: simulations,
		Days:        days,
		Assets:      assets,
		data:        make([]float64, simulations*days*assets),
	}
}

func (t *DrawTensor) index(s, h, a int) int {
	return (s*t.Days+h)*t.Assets + a
}

// At returns the draw for simulation s, day h, asset a
func (t *DrawTensor) At(s, h, a int) float64 {
	return t.data[t.index(s, h, a)]
}

// Set stores the draw for simulation s, day h, asset a
func (t *DrawTensor) Set(s, h, a int, v float64) {
	t.data[t.index(s, h, a)] = v
}

// Day returns the per-asset draws of simulation s on day h.
// The slice aliases the tensor.
func (t *DrawTensor) Day(s, h int) []float64 {
	start := t.index(s, h, 0)
	return t.data[start : start+t.Assets]
}

// AssetSeries returns a copy of asset a's daily draws in simulation s
func (t *DrawTensor) AssetSeries(s, a int) []float64 {
	series := make([]float64, t.Days)
	for h := 0; h < t.Days; h++ {
		series[h] = t.At(s, h, a)
	}
	return series
}

// SampleReturns draws simulations x days x len(params) independent daily
// returns, each from Normal(DailyDrift, DailyVolatility) of its asset.
//
// A single source seeded with seed feeds every draw in (simulation, day,
// asset) order, so identical inputs always produce an identical tensor.
// Assets and days are sampled independently; there is no covariance.
func SampleReturns(ctx context.Context, params []AssetParams, simulations, days int, seed uint64) (*DrawTensor, error) {
	if err := checkShape(params, simulations, days); err != nil {
		return nil, err
	}

	dists, err := normalsFor(params, seed)
	if err != nil {
		return nil, err
	}

	tensor := NewDrawTensor(simulations, days, len(params))
	for s := 0; s < simulations; s++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		drawSimulation(tensor, s, dists)
	}

	return tensor, nil
}

func checkShape(params []AssetParams, simulations, days int) error {
	if len(params) == 0 {
		return invalid("assets", "must contain at least one asset")
	}
	if simulations <= 0 {
		return invalid("simulations", "must be positive")
	}
	if days <= 0 {
		return invalid("horizonDays", "must be positive")
	}
	return nil
}

// normalsFor builds one normal distribution per asset, all sharing a single
// source seeded with seed.
func normalsFor(params []AssetParams, seed uint64) ([]distuv.Normal, error) {
	src := NewSource(seed)
	dists := make([]distuv.Normal, len(params))
	for i, p := range params {
		if !(p.DailyVolatility > 0) || math.IsInf(p.DailyVolatility, 0) {
			return nil, fmt.Errorf("%w: %s daily volatility %v", ErrNumericDegenerate, p.Symbol, p.DailyVolatility)
		}
		if math.IsNaN(p.DailyDrift) || math.IsInf(p.DailyDrift, 0) {
			return nil, fmt.Errorf("%w: %s daily drift %v", ErrNumericDegenerate, p.Symbol, p.DailyDrift)
		}
		dists[i] = distuv.Normal{Mu: p.DailyDrift, Sigma: p.DailyVolatility, Src: src}
	}
	return dists, nil
}

// drawSimulation fills every (day, asset) cell of simulation s in day-major order
func drawSimulation(t *DrawTensor, s int, dists []distuv.Normal) {
	for h := 0; h < t.Days; h++ {
		row := t.Day(s, h)
		for a := range dists {
			row[a] = dists[a].Rand()
		}
	}
}
