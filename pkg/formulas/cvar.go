package formulas

// TailMean returns the mean of all values at or below threshold together with
// the number of values that fell in the tail.
func TailMean(data []float64, threshold float64) (float64, int) {
	sum := 0.0
	count := 0
	for _, v := range data {
		if v <= threshold {
			sum += v
			count++
		}
	}

	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// CalculateVaRCVaR calculates historical Value at Risk and Conditional Value
// at Risk of a return sample for a tail probability (0.05 for 95% VaR).
//
// VaR is the tailProbability percentile of the returns, interpolated linearly.
// CVaR is the mean of the returns at or below VaR. When no return reaches the
// interpolated boundary CVaR falls back to VaR, so CVaR <= VaR always holds.
//
// Callers pass the tail probability itself: 1-0.95 is not exactly 0.05 in
// float64 and would shift the interpolation position.
//
// Both values are negative for losses.
func CalculateVaRCVaR(returns []float64, tailProbability float64) (float64, float64) {
	if len(returns) == 0 {
		return 0, 0
	}

	sorted := Sorted(returns)
	valueAtRisk := Percentile(sorted, tailProbability)

	tailMean, tailCount := TailMean(sorted, valueAtRisk)
	// Summation error can push the mean of a flat tail one ulp past VaR.
	if tailCount == 0 || tailMean > valueAtRisk {
		return valueAtRisk, valueAtRisk
	}

	return valueAtRisk, tailMean
}
