package model

import "time"

// Row is one parsed CSV record keyed by (deduplicated) header name.
type Row map[string]string

// Dataset is an immutable snapshot of one published sheet.
type Dataset struct {
	Source     string    `json:"source"`
	Header     []string  `json:"header"`
	Rows       []Row     `json:"-"`
	Dates      []string  `json:"dates"`
	Generation uint64    `json:"generation"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// ContentType is the page category a Lighthouse run was taken against.
type ContentType string

const (
	ContentNota  ContentType = "nota"
	ContentVideo ContentType = "video"
	ContentBoth  ContentType = "both"
)

// Metric names a Lighthouse field.
type Metric string

const (
	MetricScore Metric = "score"
	MetricCLS   Metric = "cls"
	MetricLCP   Metric = "lcp"
	MetricSI    Metric = "si"
	MetricTBT   Metric = "tbt"
	MetricFCP   Metric = "fcp"
)

// SubMetrics are the five fields that feed the overall score.
var SubMetrics = []Metric{MetricCLS, MetricLCP, MetricSI, MetricTBT, MetricFCP}

// Granularity is the time bucketing used to build a Period.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
	All     Granularity = "all"
	Custom  Granularity = "custom"
)

// Period is a set of snapshot dates aggregated together. Dates only holds
// dates that exist in the snapshot.
type Period struct {
	Granularity Granularity `json:"granularity"`
	Start       string      `json:"start"`
	End         string      `json:"end"`
	Dates       []string    `json:"dates"`
}

// Empty reports whether the period covers no snapshot dates.
func (p Period) Empty() bool {
	return len(p.Dates) == 0
}

// Contains reports whether date is one of the period's snapshot dates.
func (p Period) Contains(date string) bool {
	for _, d := range p.Dates {
		if d == date {
			return true
		}
	}
	return false
}
