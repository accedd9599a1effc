package stats

import "math"

// MinSamples is the fewest paired samples a correlation is reported for.
const MinSamples = 3

// Correlation relates a sub-metric series to the overall score series.
type Correlation struct {
	R          float64
	R2         float64
	N          int
	Confidence float64
	Avg        float64
	Min        float64
	Max        float64
}

// Normalize min-max scales xs into [0,1]. A constant series maps to zeros.
func Normalize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if hi == lo {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}

// Invert maps a normalized series x to 1-x.
func Invert(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = 1 - x
	}
	return out
}

// Pearson returns the correlation coefficient of x and y, clamped to
// [-1,1]. Zero variance in either series gives 0.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}
	mx, _ := Mean(x)
	my, _ := Mean(y)

	var cov, vx, vy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	r := cov / math.Sqrt(vx*vy)
	return math.Max(-1, math.Min(1, r))
}

// ConfidenceHalfWidth is 1.96*sqrt((1-r2)/(n-2)) for n > 2, else 0.
func ConfidenceHalfWidth(r2 float64, n int) float64 {
	if n <= 2 {
		return 0
	}
	return 1.96 * math.Sqrt((1-r2)/float64(n-2))
}

// Correlate normalizes both series, inverts the metric series when lower
// raw values are better, and computes r and R². It returns nil with fewer
// than MinSamples pairs.
func Correlate(metric, score []float64, negative bool) *Correlation {
	n := len(metric)
	if n != len(score) || n < MinSamples {
		return nil
	}

	nm := Normalize(metric)
	if negative {
		nm = Invert(nm)
	}
	ns := Normalize(score)

	r := Pearson(nm, ns)
	r2 := r * r

	avg, _ := Mean(metric)
	lo, hi := metric[0], metric[0]
	for _, v := range metric[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return &Correlation{
		R:          r,
		R2:         r2,
		N:          n,
		Confidence: ConfidenceHalfWidth(r2, n),
		Avg:        avg,
		Min:        lo,
		Max:        hi,
	}
}
