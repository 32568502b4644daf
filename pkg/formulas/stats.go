package formulas

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization constant used throughout the engine
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 denominator)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation (n denominator)
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// Sorted returns an ascending copy of data. The input is left untouched.
func Sorted(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return sorted
}

// Percentile returns the p-th quantile (p in [0,1]) of ascending data using
// linear interpolation between the order statistics at positions
// floor((n-1)p) and ceil((n-1)p).
//
// gonum's stat.Quantile places the interpolation knots at p*n instead, which
// disagrees with the (n-1)p convention the risk report is defined against.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ShareBelow returns the fraction of values strictly below threshold
func ShareBelow(data []float64, threshold float64) float64 {
	if len(data) == 0 {
		return 0
	}

	count := 0
	for _, v := range data {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(data))
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Round rounds x to the given number of decimal places, half away from zero.
// Non-finite values are returned unchanged.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return rounded
}

// CompoundPath turns a series of periodic returns into cumulative values
// starting from 1.0: out[0] = 1+r0, out[i] = out[i-1]*(1+ri).
func CompoundPath(returns []float64) []float64 {
	path := make([]float64, len(returns))
	cumulative := 1.0
	for i, r := range returns {
		cumulative *= 1 + r
		path[i] = cumulative
	}
	return path
}
