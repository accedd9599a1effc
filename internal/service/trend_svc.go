package service

import (
	"math"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/pkg/stats"
)

// Trend labels.
const (
	TrendGaining     = "Gaining ground"
	TrendLosing      = "Losing ground"
	TrendMaintaining = "Maintaining position"
)

// projectionSteps is how many dates ahead a trend is projected.
const projectionSteps = 3

// Trend compares the Azteca and competition group averages date by date
// across p. A group average pools every non-zero score of the group's rows;
// dates where either group has no data are skipped.
func (e *Engine) Trend(ct model.ContentType, p model.Period) model.TrendAnalysis {
	out := model.TrendAnalysis{
		Labels:      []string{},
		Azteca:      model.GroupTrend{Group: schema.GroupAzteca, Values: []float64{}},
		Competition: model.GroupTrend{Group: schema.GroupCompetition, Values: []float64{}},
	}

	for _, d := range p.Dates {
		day := map[string]struct{}{d: {}}
		comp, okC := e.pooledScore(schema.GroupCompetition, ct, day)
		az, okA := e.pooledScore(schema.GroupAzteca, ct, day)
		if !okC || !okA {
			continue
		}
		out.Labels = append(out.Labels, d)
		out.Competition.Values = append(out.Competition.Values, comp)
		out.Azteca.Values = append(out.Azteca.Values, az)
	}

	if len(out.Labels) == 0 {
		return out
	}

	fillTrend(&out.Azteca)
	fillTrend(&out.Competition)

	last := len(out.Labels) - 1
	out.Gap = stats.Round(out.Azteca.Values[last]-out.Competition.Values[last], 1)

	switch {
	case out.Azteca.Growth > out.Competition.Growth:
		out.Trend = TrendGaining
	case out.Azteca.Growth < out.Competition.Growth:
		out.Trend = TrendLosing
	default:
		out.Trend = TrendMaintaining
	}
	return out
}

func (e *Engine) pooledScore(group string, ct model.ContentType, dates map[string]struct{}) (float64, bool) {
	var total float64
	var count int
	for _, o := range e.outlets {
		if o.Group != group {
			continue
		}
		cols := e.cols[o.Name]
		for _, row := range e.ds.Rows {
			if !inPeriod(row, cols, dates, ct) {
				continue
			}
			v := schema.ParseValue(row[cols.Score])
			if v == nil || *v == 0 {
				continue
			}
			total += *v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return stats.Round(total/float64(count), 1), true
}

func fillTrend(g *model.GroupTrend) {
	n := len(g.Values)
	if n < 2 {
		if n == 1 {
			g.Projection = g.Values[0]
		}
		return
	}
	first, last := g.Values[0], g.Values[n-1]
	growth := (last - first) / math.Max(0.1, math.Abs(first)) * 100
	slope := (last - first) / math.Max(1, float64(n-1))

	g.Growth = stats.Round(growth, 1)
	g.Slope = stats.Round(slope, 2)
	g.Projection = stats.Round(last+slope*projectionSteps, 1)
}

// Regions averages per-outlet scores of the local outlets in each map region.
func (e *Engine) Regions(ct model.ContentType, p model.Period) []model.RegionScore {
	out := make([]model.RegionScore, 0, len(schema.Regions))
	for _, region := range schema.Regions {
		rs := model.RegionScore{Region: region, Outlets: []string{}}
		var vals []float64
		for _, o := range e.outlets {
			if o.Region != region {
				continue
			}
			rs.Outlets = append(rs.Outlets, o.Name)
			if v := e.ComputeScore(o.Name, ct, p); v != nil {
				vals = append(vals, *v)
			}
		}
		rs.Score = meanRounded(vals, 1)
		out = append(out, rs)
	}
	return out
}
