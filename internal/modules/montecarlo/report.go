package montecarlo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/finsentinel/sentinel/pkg/formulas"
)

const (
	// VaR95 and CVaR95 look at the worst 5% of outcomes
	tailProbability = 0.05

	minConfidence = 0.50
	maxConfidence = 0.99

	// Return metrics are reported to 6 places, shares and path values to 4
	returnPlaces  = 6
	summaryPlaces = 4
)

// CalculateRiskMetrics reduces terminal outcomes into a risk report.
// ReportID, Timestamp and Constraints are left for the caller to stamp.
//
// confidence is clamp(1 - 3*stddev(terminal returns), 0.50, 0.99) using the
// population standard deviation. It is a dispersion heuristic, not a
// calibrated confidence interval.
func CalculateRiskMetrics(paths PathSet, simulations, horizonDays int) RiskReport {
	returns := paths.TerminalReturns

	valueAtRisk, conditionalVaR := formulas.CalculateVaRCVaR(returns, tailProbability)
	dispersion := formulas.PopStdDev(returns)

	return RiskReport{
		VaR95:                 formulas.Round(valueAtRisk, returnPlaces),
		CVaR95:                formulas.Round(conditionalVaR, returnPlaces),
		ProbabilityOfLoss:     formulas.Round(formulas.ShareBelow(returns, 0), summaryPlaces),
		ExpectedReturn:        formulas.Round(formulas.Mean(returns), returnPlaces),
		SimulatedPathsSummary: summarizePaths(paths.TerminalValues, simulations, horizonDays),
		Confidence:            formulas.Round(formulas.Clamp(1-3*dispersion, minConfidence, maxConfidence), summaryPlaces),
		ErrorRate:             0,
	}
}

func summarizePaths(values []float64, simulations, horizonDays int) PathSummary {
	summary := PathSummary{
		Simulations: simulations,
		HorizonDays: horizonDays,
	}
	if len(values) == 0 {
		return summary
	}

	sorted := formulas.Sorted(values)
	summary.MinFinal = formulas.Round(floats.Min(values), summaryPlaces)
	summary.P25Final = formulas.Round(formulas.Percentile(sorted, 0.25), summaryPlaces)
	summary.MedianFinal = formulas.Round(formulas.Percentile(sorted, 0.50), summaryPlaces)
	summary.P75Final = formulas.Round(formulas.Percentile(sorted, 0.75), summaryPlaces)
	summary.MaxFinal = formulas.Round(floats.Max(values), summaryPlaces)
	return summary
}

// checkFinite rejects a report whose reductions overflowed. Terminal values
// can each be finite while their sum or spread is not.
func checkFinite(report RiskReport) error {
	summary := report.SimulatedPathsSummary
	metrics := []struct {
		name  string
		value float64
	}{
		{"var95", report.VaR95},
		{"cvar95", report.CVaR95},
		{"probabilityOfLoss", report.ProbabilityOfLoss},
		{"expectedReturn", report.ExpectedReturn},
		{"confidence", report.Confidence},
		{"minFinal", summary.MinFinal},
		{"p25Final", summary.P25Final},
		{"medianFinal", summary.MedianFinal},
		{"p75Final", summary.P75Final},
		{"maxFinal", summary.MaxFinal},
	}

	for _, m := range metrics {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrNumericDegenerate, m.name, m.value)
		}
	}
	return nil
}
