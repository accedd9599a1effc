package stats

// LinearRegression fits y = slope*x + intercept over (index, ys[index]) by
// ordinary least squares. Fewer than two points, or a degenerate x spread,
// gives a flat line through the mean.
func LinearRegression(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))
	if len(ys) == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Fitted evaluates the regression line at every index of ys.
func Fitted(ys []float64) []float64 {
	slope, intercept := LinearRegression(ys)
	out := make([]float64, len(ys))
	for i := range ys {
		out[i] = slope*float64(i) + intercept
	}
	return out
}
