// Package stats holds the pure numeric routines behind the dashboard:
// rounding, regression, correlation and the Lighthouse scoring curve.
package stats

import "math"

// Round rounds v to dp decimal places, half away from zero.
func Round(v float64, dp int) float64 {
	p := math.Pow(10, float64(dp))
	return math.Round(v*p) / p
}

// Mean returns the arithmetic mean of xs and false when xs is empty.
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

// PercentChange is (current-previous)/previous*100, or 0 when previous <= 0.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
