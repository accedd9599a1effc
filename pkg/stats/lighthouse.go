package stats

import "math"

// Sub-metric names.
const (
	FCP = "fcp"
	SI  = "si"
	LCP = "lcp"
	TBT = "tbt"
	CLS = "cls"
)

// Curve is a log-normal scoring curve anchored at the point of diminishing
// returns and the median.
type Curve struct {
	PODR   float64
	Median float64
}

// Curves are the per-metric scoring constants.
var Curves = map[string]Curve{
	FCP: {PODR: 2000, Median: 4000},
	SI:  {PODR: 2900, Median: 5800},
	LCP: {PODR: 2000, Median: 4000},
	TBT: {PODR: 150, Median: 600},
	CLS: {PODR: 0.05, Median: 0.25},
}

// Weights are the performance category weights. They sum to 1.
var Weights = map[string]float64{
	FCP: 0.10,
	SI:  0.10,
	LCP: 0.25,
	TBT: 0.30,
	CLS: 0.25,
}

// GoodThresholds are the raw values at which a metric rates "good".
var GoodThresholds = map[string]float64{
	FCP: 1800,
	SI:  3400,
	LCP: 2500,
	TBT: 200,
	CLS: 0.1,
}

func (c Curve) shape() float64 {
	return math.Sqrt(2 * math.Log(c.Median/c.PODR))
}

// Score maps a raw value onto [0,1]. Zero or negative values score 1.
func (c Curve) Score(value float64) float64 {
	if value <= 0 {
		return 1
	}
	x := (math.Log(value) - math.Log(c.PODR)) / c.shape()
	s := 1 / (1 + math.Exp(x))
	return math.Max(0, math.Min(1, s))
}

// Inverse returns the raw value that scores s. s >= 1 gives 0.
func (c Curve) Inverse(s float64) float64 {
	if s >= 1 {
		return 0
	}
	if s <= 0 {
		return math.Inf(1)
	}
	x := math.Log(1/s - 1)
	return math.Exp(x*c.shape() + math.Log(c.PODR))
}

// SubScore returns the 0-100 score of value for metric, or false for an
// unknown metric.
func SubScore(metric string, value float64) (float64, bool) {
	c, ok := Curves[metric]
	if !ok {
		return 0, false
	}
	return c.Score(value) * 100, true
}

// PotentialGain is the overall-score points recoverable by bringing a
// sub-score to 100.
func PotentialGain(subScore, weight float64) float64 {
	return (100 - subScore) * weight
}
