package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestStdDev(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 2.0, PopStdDev(data), 1e-12, "population std of the classic example is 2")
	assert.InDelta(t, 2.138089935, StdDev(data), 1e-9)
	assert.Equal(t, 0.0, PopStdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{1}))
}

func TestSorted_DoesNotMutateInput(t *testing.T) {
	data := []float64{3, 1, 2}
	sorted := Sorted(data)

	assert.Equal(t, []float64{1, 2, 3}, sorted)
	assert.Equal(t, []float64{3, 1, 2}, data)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"minimum", 0, 1},
		{"maximum", 1, 5},
		{"median on knot", 0.5, 3},
		{"quartile on knot", 0.25, 2},
		{"between knots", 0.05, 1.2},
		{"upper interpolation", 0.9, 4.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(sorted, tt.p), 1e-12)
		})
	}
}

func TestPercentile_EdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 0.05))
	assert.InDelta(t, 1.5, Percentile([]float64{1, 2}, 0.5), 1e-12)
}

func TestShareBelow(t *testing.T) {
	data := []float64{-0.2, -0.1, 0, 0.1}

	assert.Equal(t, 0.5, ShareBelow(data, 0), "zero is not strictly below zero")
	assert.Equal(t, 0.0, ShareBelow(nil, 0))
	assert.Equal(t, 1.0, ShareBelow(data, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.1, 0.5, 0.99))
	assert.Equal(t, 0.99, Clamp(1.4, 0.5, 0.99))
	assert.Equal(t, 0.7, Clamp(0.7, 0.5, 0.99))
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		places int32
		want   float64
	}{
		{"six places", 0.0123456789, 6, 0.012346},
		{"four places", 0.98765, 4, 0.9877},
		{"negative half away from zero", -0.0000125, 6, -0.000013},
		{"already short", 0.5, 4, 0.5},
		{"zero", 0, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.x, tt.places))
		})
	}
}

func TestRound_NonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(Round(math.NaN(), 4)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 4), 1))
}

func TestCompoundPath(t *testing.T) {
	path := CompoundPath([]float64{0.1, -0.1, 0.05})

	require.Len(t, path, 3)
	assert.InDelta(t, 1.1, path[0], 1e-12)
	assert.InDelta(t, 0.99, path[1], 1e-12)
	assert.InDelta(t, 1.0395, path[2], 1e-12)

	assert.Empty(t, CompoundPath(nil))
}
