package schema

import "github.com/penamorrosmaaaa/dashtva-sub001/internal/model"

// Score status labels.
const (
	StatusPoor             = "POOR"
	StatusNeedsImprovement = "NEEDS IMPROVEMENT"
	StatusGood             = "GOOD"
)

// Metric rating bands.
const (
	RatingGood    = "good"
	RatingAverage = "average"
	RatingPoor    = "poor"
)

// Status buckets an overall score.
func Status(score float64) string {
	switch {
	case score < 50:
		return StatusPoor
	case score < 90:
		return StatusNeedsImprovement
	default:
		return StatusGood
	}
}

// ratingBands holds the good and poor boundaries per sub-metric.
var ratingBands = map[model.Metric][2]float64{
	model.MetricCLS: {0.1, 0.25},
	model.MetricLCP: {2500, 4000},
	model.MetricSI:  {3400, 5800},
	model.MetricTBT: {200, 600},
	model.MetricFCP: {1800, 3000},
}

// MetricRating buckets a raw sub-metric value. Unknown metrics return "".
func MetricRating(m model.Metric, value float64) string {
	b, ok := ratingBands[m]
	if !ok {
		return ""
	}
	switch {
	case value <= b[0]:
		return RatingGood
	case value <= b[1]:
		return RatingAverage
	default:
		return RatingPoor
	}
}
