package service

import (
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/pkg/stats"
)

// Engine aggregates one dataset snapshot under one dashboard configuration.
// It never mutates the snapshot and is safe for concurrent use.
type Engine struct {
	ds        *model.Dataset
	dash      Dashboard
	outlets   []schema.Outlet
	cols      map[string]schema.Columns
	statsCols map[string]schema.Columns
}

// NewEngine resolves the dashboard's outlets against the snapshot header.
// Outlets the strategy cannot address are dropped.
func NewEngine(ds *model.Dataset, dash Dashboard) *Engine {
	e := &Engine{
		ds:        ds,
		dash:      dash,
		cols:      make(map[string]schema.Columns, len(dash.Outlets)),
		statsCols: make(map[string]schema.Columns, len(dash.Outlets)),
	}
	for _, o := range dash.Outlets {
		c, ok := dash.Strategy.Columns(ds.Header, o)
		if !ok {
			continue
		}
		e.cols[o.Name] = c
		e.outlets = append(e.outlets, o)
		if sc, ok := dash.statsStrategy().Columns(ds.Header, o); ok {
			e.statsCols[o.Name] = sc
		}
	}
	return e
}

// Dashboard returns the engine's configuration.
func (e *Engine) Dashboard() Dashboard { return e.dash }

// Dataset returns the snapshot the engine reads.
func (e *Engine) Dataset() *model.Dataset { return e.ds }

// Outlets returns the addressable outlets in dashboard order.
func (e *Engine) Outlets() []schema.Outlet { return e.outlets }

// HasOutlet reports whether name is addressable, including AllCombined.
func (e *Engine) HasOutlet(name string) bool {
	if name == AllCombined {
		return true
	}
	_, ok := e.cols[name]
	return ok
}

// ComputeScore averages Score over the rows of one outlet in p. Content
// type both is the mean of the nota and video results; AllCombined is the
// mean of per-outlet results. Nil means no matching rows.
func (e *Engine) ComputeScore(outlet string, ct model.ContentType, p model.Period) *float64 {
	if outlet == AllCombined {
		var vals []float64
		for _, o := range e.outlets {
			if v := e.ComputeScore(o.Name, ct, p); v != nil {
				vals = append(vals, *v)
			}
		}
		return meanRounded(vals, 1)
	}

	if ct == model.ContentBoth {
		return meanOfPair(
			e.ComputeScore(outlet, model.ContentNota, p),
			e.ComputeScore(outlet, model.ContentVideo, p),
			1,
		)
	}

	cols, ok := e.cols[outlet]
	if !ok {
		return nil
	}
	dates := dateSet(p)
	var vals []float64
	for _, row := range e.ds.Rows {
		if !inPeriod(row, cols, dates, ct) {
			continue
		}
		if v := schema.ParseValue(row[cols.Score]); v != nil {
			vals = append(vals, *v)
		}
	}
	return meanRounded(vals, 1)
}

// MetricsForOutlet is the per-field mean of one outlet's rows in p. Each
// field is independently nil when no row supplies it.
func (e *Engine) MetricsForOutlet(outlet string, ct model.ContentType, p model.Period) model.MetricSet {
	if outlet == AllCombined {
		sets := make([]model.MetricSet, 0, len(e.outlets))
		for _, o := range e.outlets {
			sets = append(sets, e.MetricsForOutlet(o.Name, ct, p))
		}
		return meanOfSets(sets)
	}

	if ct == model.ContentBoth {
		return meanOfSets([]model.MetricSet{
			e.MetricsForOutlet(outlet, model.ContentNota, p),
			e.MetricsForOutlet(outlet, model.ContentVideo, p),
		})
	}

	cols, ok := e.cols[outlet]
	if !ok {
		return model.MetricSet{}
	}
	dates := dateSet(p)
	acc := make(map[model.Metric][]float64, 6)
	for _, row := range e.ds.Rows {
		if !inPeriod(row, cols, dates, ct) {
			continue
		}
		s := schema.Sample(row, cols)
		for _, m := range allMetrics {
			if v := s.Get(m); v != nil {
				acc[m] = append(acc[m], *v)
			}
		}
	}

	var out model.MetricSet
	for _, m := range allMetrics {
		out.Set(m, meanRounded(acc[m], precision(m)))
	}
	return out
}

// Samples returns the per-row metric samples of one outlet in p using the
// dashboard's stats addressing. AllCombined pools every outlet's rows.
func (e *Engine) Samples(outlet string, ct model.ContentType, p model.Period) []model.MetricSet {
	if outlet == AllCombined {
		var out []model.MetricSet
		for _, o := range e.outlets {
			out = append(out, e.Samples(o.Name, ct, p)...)
		}
		return out
	}

	cols, ok := e.statsCols[outlet]
	if !ok {
		return nil
	}
	dates := dateSet(p)
	var out []model.MetricSet
	for _, row := range e.ds.Rows {
		if inPeriod(row, cols, dates, ct) {
			out = append(out, schema.Sample(row, cols))
		}
	}
	return out
}

// Performance scores every outlet for the current and previous period,
// sorted by current score descending.
func (e *Engine) Performance(ct model.ContentType, cur, prev model.Period) []model.OutletPerformance {
	perf := make([]model.OutletPerformance, 0, len(e.outlets))
	for _, o := range e.outlets {
		p := model.OutletPerformance{
			Name:  o.Name,
			Group: o.Group,
			Color: o.Color,
		}
		if v := e.ComputeScore(o.Name, ct, cur); v != nil {
			p.Score = *v
			p.HasData = true
		}
		if !prev.Empty() {
			if v := e.ComputeScore(o.Name, ct, prev); v != nil {
				p.PreviousScore = *v
			}
		}
		p.Change = stats.Round(stats.PercentChange(p.Score, p.PreviousScore), 1)
		p.Status = schema.Status(p.Score)
		perf = append(perf, p)
	}
	sortByScore(perf, true)
	return perf
}

// GroupScore compares the mean of per-outlet scores across two periods.
// An empty group name covers every outlet of the dashboard.
func (e *Engine) GroupScore(group string, ct model.ContentType, cur, prev model.Period) model.GroupScore {
	var curVals, prevVals []float64
	for _, o := range e.outlets {
		if group != "" && o.Group != group {
			continue
		}
		if v := e.ComputeScore(o.Name, ct, cur); v != nil {
			curVals = append(curVals, *v)
		}
		if prev.Empty() {
			continue
		}
		if v := e.ComputeScore(o.Name, ct, prev); v != nil {
			prevVals = append(prevVals, *v)
		}
	}

	gs := model.GroupScore{Group: group}
	if v := meanRounded(curVals, 1); v != nil {
		gs.Current = *v
	}
	if v := meanRounded(prevVals, 1); v != nil {
		gs.Previous = *v
	}
	gs.Change = stats.Round(stats.PercentChange(gs.Current, gs.Previous), 1)
	return gs
}

// Timeline returns one outlet's daily scores across p with an OLS trend over
// the dates that have data.
func (e *Engine) Timeline(outlet string, ct model.ContentType, p model.Period) model.TimelineSeries {
	series := model.TimelineSeries{Outlet: outlet}
	var ys []float64
	for _, d := range p.Dates {
		v := e.ComputeScore(outlet, ct, model.Period{Granularity: model.Daily, Start: d, End: d, Dates: []string{d}})
		series.Points = append(series.Points, model.SeriesPoint{Date: d, Score: v})
		if v != nil {
			ys = append(ys, *v)
		}
	}

	slope, intercept := stats.LinearRegression(ys)
	fitted := stats.Fitted(ys)
	for i := range fitted {
		fitted[i] = stats.Round(fitted[i], 1)
	}
	series.Regression = model.Regression{
		Slope:     stats.Round(slope, 2),
		Intercept: stats.Round(intercept, 2),
		Fitted:    fitted,
	}
	return series
}

var allMetrics = []model.Metric{
	model.MetricScore, model.MetricCLS, model.MetricLCP,
	model.MetricSI, model.MetricTBT, model.MetricFCP,
}

// precision is the rounding applied when a metric is aggregated.
func precision(m model.Metric) int {
	if m == model.MetricCLS {
		return 3
	}
	return 1
}

func dateSet(p model.Period) map[string]struct{} {
	set := make(map[string]struct{}, len(p.Dates))
	for _, d := range p.Dates {
		set[d] = struct{}{}
	}
	return set
}

func inPeriod(row model.Row, cols schema.Columns, dates map[string]struct{}, ct model.ContentType) bool {
	if _, ok := dates[row[cols.Date]]; !ok {
		return false
	}
	t := row[cols.Type]
	if ct == model.ContentBoth {
		return t == string(model.ContentNota) || t == string(model.ContentVideo)
	}
	return t == string(ct)
}

func meanRounded(vals []float64, dp int) *float64 {
	m, ok := stats.Mean(vals)
	if !ok {
		return nil
	}
	r := stats.Round(m, dp)
	return &r
}

func meanOfPair(a, b *float64, dp int) *float64 {
	var vals []float64
	if a != nil {
		vals = append(vals, *a)
	}
	if b != nil {
		vals = append(vals, *b)
	}
	return meanRounded(vals, dp)
}

// meanOfSets averages each field across sets, skipping nil fields.
func meanOfSets(sets []model.MetricSet) model.MetricSet {
	var out model.MetricSet
	for _, m := range allMetrics {
		var vals []float64
		for _, s := range sets {
			if v := s.Get(m); v != nil {
				vals = append(vals, *v)
			}
		}
		out.Set(m, meanRounded(vals, precision(m)))
	}
	return out
}
