package service

import (
	"math"
	"sort"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/pkg/stats"
)

// StatsService answers correlation and target questions for one outlet.
type StatsService struct {
	dashboards *DashboardService
}

// NewStatsService creates a StatsService over the dashboard service's snapshots.
func NewStatsService(dashboards *DashboardService) *StatsService {
	return &StatsService{dashboards: dashboards}
}

// Correlate relates each sub-metric to the overall score for q's outlet.
func (s *StatsService) Correlate(q Query) (*model.CorrelationReport, error) {
	e, cur, err := s.dashboards.resolve(q)
	if err != nil {
		return nil, err
	}
	if !e.HasOutlet(q.Outlet) {
		return nil, ErrUnknownOutlet
	}
	report := e.Correlation(q.Outlet, q.contentType(), cur)
	return &report, nil
}

// Target plans how q's outlet could reach target.
func (s *StatsService) Target(q Query, target float64) (*model.TargetPlan, error) {
	e, cur, err := s.dashboards.resolve(q)
	if err != nil {
		return nil, err
	}
	if !e.HasOutlet(q.Outlet) {
		return nil, ErrUnknownOutlet
	}
	plan, err := e.Target(q.Outlet, q.contentType(), cur, target)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Correlation pairs every row's sub-metrics with its score. Results are
// sorted by potential gain; metrics with fewer than stats.MinSamples pairs
// are listed in Insufficient instead.
func (e *Engine) Correlation(outlet string, ct model.ContentType, p model.Period) model.CorrelationReport {
	report := model.CorrelationReport{
		Outlet:       outlet,
		Results:      []model.CorrelationResult{},
		Insufficient: []model.Metric{},
	}
	samples := e.Samples(outlet, ct, p)

	for _, m := range model.SubMetrics {
		var xs, scores []float64
		for _, s := range samples {
			v, score := s.Get(m), s.Score
			if v == nil || score == nil {
				continue
			}
			xs = append(xs, *v)
			scores = append(scores, *score)
		}

		c := stats.Correlate(xs, scores, true)
		if c == nil {
			report.Insufficient = append(report.Insufficient, m)
			continue
		}

		weight := stats.Weights[string(m)]
		sub, _ := stats.SubScore(string(m), c.Avg)
		report.Results = append(report.Results, model.CorrelationResult{
			Metric:        m,
			R:             stats.Round(c.R, 3),
			R2:            stats.Round(c.R2, 3),
			N:             c.N,
			Confidence:    stats.Round(c.Confidence, 3),
			Avg:           stats.Round(c.Avg, precision(m)),
			Min:           stats.Round(c.Min, precision(m)),
			Max:           stats.Round(c.Max, precision(m)),
			Weight:        weight,
			SubScore:      stats.Round(sub, 1),
			PotentialGain: stats.Round(stats.PotentialGain(sub, weight), 2),
			Rating:        schema.MetricRating(m, c.Avg),
		})
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].PotentialGain > report.Results[j].PotentialGain
	})
	return report
}

// Target runs the greedy solver from the outlet's current score using the
// per-row sub-metric averages. ErrNoData is returned when the outlet has no
// score in p.
func (e *Engine) Target(outlet string, ct model.ContentType, p model.Period, target float64) (model.TargetPlan, error) {
	current := e.ComputeScore(outlet, ct, p)
	if current == nil {
		return model.TargetPlan{}, ErrNoData
	}

	var states []stats.MetricState
	avgs := sampleAverages(e.Samples(outlet, ct, p))
	for _, m := range model.SubMetrics {
		if v := avgs.Get(m); v != nil {
			states = append(states, stats.MetricState{Metric: string(m), Value: *v})
		}
	}

	plan := stats.SolveTarget(*current, target, states)
	out := model.TargetPlan{
		CurrentScore:    plan.Current,
		TargetScore:     plan.Target,
		Gap:             stats.Round(plan.Gap, 1),
		AlreadyAchieved: plan.AlreadyAchieved,
		Feasible:        plan.Feasible,
		MaxAchievable:   stats.Round(plan.MaxAchievable, 1),
		Steps:           make([]model.TargetStep, 0, len(plan.Steps)),
	}
	for _, st := range plan.Steps {
		m := model.Metric(st.Metric)
		out.Steps = append(out.Steps, model.TargetStep{
			Metric:          m,
			CurrentValue:    stats.Round(st.CurrentValue, precision(m)),
			TargetValue:     stats.Round(finiteOr(st.TargetValue, 0), precision(m)),
			CurrentSubScore: stats.Round(st.CurrentSubScore, 1),
			TargetSubScore:  stats.Round(st.TargetSubScore, 1),
			WeightedGain:    stats.Round(st.WeightedGain, 2),
			GoodThreshold:   st.GoodThreshold,
			MeetsGood:       st.MeetsGood,
		})
	}
	return out, nil
}

// sampleAverages is the unrounded per-field mean of raw samples.
func sampleAverages(samples []model.MetricSet) model.MetricSet {
	var out model.MetricSet
	for _, m := range allMetrics {
		var vals []float64
		for _, s := range samples {
			if v := s.Get(m); v != nil {
				vals = append(vals, *v)
			}
		}
		if mean, ok := stats.Mean(vals); ok {
			out.Set(m, &mean)
		}
	}
	return out
}

func finiteOr(v, fallback float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fallback
	}
	return v
}
