package model

// MetricSet holds per-field means. A nil field means no row supplied a
// parseable value for it.
type MetricSet struct {
	Score *float64 `json:"score"`
	CLS   *float64 `json:"cls"`
	LCP   *float64 `json:"lcp"`
	SI    *float64 `json:"si"`
	TBT   *float64 `json:"tbt"`
	FCP   *float64 `json:"fcp"`
}

// Get returns the field for m.
func (s MetricSet) Get(m Metric) *float64 {
	switch m {
	case MetricScore:
		return s.Score
	case MetricCLS:
		return s.CLS
	case MetricLCP:
		return s.LCP
	case MetricSI:
		return s.SI
	case MetricTBT:
		return s.TBT
	case MetricFCP:
		return s.FCP
	}
	return nil
}

// Set assigns the field for m.
func (s *MetricSet) Set(m Metric, v *float64) {
	switch m {
	case MetricScore:
		s.Score = v
	case MetricCLS:
		s.CLS = v
	case MetricLCP:
		s.LCP = v
	case MetricSI:
		s.SI = v
	case MetricTBT:
		s.TBT = v
	case MetricFCP:
		s.FCP = v
	}
}

// OutletPerformance is one outlet's score for the current and previous period.
// PreviousScore == 0 means there is no prior data.
type OutletPerformance struct {
	Name          string  `json:"name"`
	Group         string  `json:"group"`
	Color         string  `json:"color"`
	Score         float64 `json:"score"`
	PreviousScore float64 `json:"previousScore"`
	Change        float64 `json:"change"`
	HasData       bool    `json:"hasData"`
	Status        string  `json:"status"`
}

// Rankings are the top-3 slices derived from a performance list.
type Rankings struct {
	Top          []OutletPerformance `json:"topPerformers"`
	Bottom       []OutletPerformance `json:"bottomPerformers"`
	MostImproved []OutletPerformance `json:"mostImproved"`
	MostDeclined []OutletPerformance `json:"mostDeclined"`
}

// GroupScore compares a group's mean score across two periods.
type GroupScore struct {
	Group    string  `json:"group"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// BarChart is a chart-ready bar series with ranking annotations.
type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
	Badges []string  `json:"badges"`
}

// DashboardReport is everything a dashboard page renders for one filter set.
type DashboardReport struct {
	Dashboard   string              `json:"dashboard"`
	ContentType ContentType         `json:"type"`
	Current     Period              `json:"current"`
	Previous    Period              `json:"previous"`
	Generation  uint64              `json:"generation"`
	Overall     GroupScore          `json:"overall"`
	Performance []OutletPerformance `json:"performance"`
	Rankings    Rankings            `json:"rankings"`
	Chart       BarChart            `json:"chart"`
}

// SeriesPoint is one date of an outlet timeline.
type SeriesPoint struct {
	Date  string   `json:"date"`
	Score *float64 `json:"score"`
}

// TimelineSeries is an outlet's per-date score with its fitted trend line.
type TimelineSeries struct {
	Outlet     string        `json:"outlet"`
	Points     []SeriesPoint `json:"points"`
	Regression Regression    `json:"regression"`
}

// GroupTrend summarises one group's per-date averages.
type GroupTrend struct {
	Group      string    `json:"group"`
	Values     []float64 `json:"values"`
	Growth     float64   `json:"growth"`
	Slope      float64   `json:"slope"`
	Projection float64   `json:"projection"`
}

// TrendAnalysis compares Azteca against the competition over a period.
type TrendAnalysis struct {
	Labels      []string   `json:"labels"`
	Azteca      GroupTrend `json:"azteca"`
	Competition GroupTrend `json:"competition"`
	Gap         float64    `json:"gap"`
	Trend       string     `json:"trend"`
}

// RegionScore is the mean local-outlet score for one map region.
type RegionScore struct {
	Region  string   `json:"region"`
	Score   *float64 `json:"score"`
	Outlets []string `json:"outlets"`
}

// SummaryEntry is one outlet block of a sheet row.
type SummaryEntry struct {
	Outlet string   `json:"outlet"`
	Type   string   `json:"type"`
	URL    string   `json:"url"`
	Score  *float64 `json:"score"`
	CLS    *float64 `json:"cls"`
	LCP    *float64 `json:"lcp"`
	SI     *float64 `json:"si"`
	TBT    *float64 `json:"tbt"`
	FCP    *float64 `json:"fcp"`
}
