package service

import (
	"sort"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// RankingSize is how many outlets each ranking holds.
const RankingSize = 3

// Rankings derives top/bottom performers and biggest movers. Outlets with no
// current data are left out of every ranking, and outlets without a previous
// score are left out of the improvement rankings.
func Rankings(perf []model.OutletPerformance) model.Rankings {
	var scored, movers []model.OutletPerformance
	for _, p := range perf {
		if !p.HasData {
			continue
		}
		scored = append(scored, p)
		if p.PreviousScore > 0 {
			movers = append(movers, p)
		}
	}

	top := append([]model.OutletPerformance(nil), scored...)
	sortByScore(top, true)
	bottom := append([]model.OutletPerformance(nil), scored...)
	sortByScore(bottom, false)

	improved := append([]model.OutletPerformance(nil), movers...)
	sortByChange(improved, true)
	declined := append([]model.OutletPerformance(nil), movers...)
	sortByChange(declined, false)

	return model.Rankings{
		Top:          head(top),
		Bottom:       head(bottom),
		MostImproved: head(improved),
		MostDeclined: head(declined),
	}
}

// BarChart lays out a performance list for a bar chart and marks the
// outlets that appear in the given rankings.
func BarChart(perf []model.OutletPerformance, r model.Rankings) model.BarChart {
	top := names(r.Top)
	bottom := names(r.Bottom)

	chart := model.BarChart{
		Labels: make([]string, 0, len(perf)),
		Values: make([]float64, 0, len(perf)),
		Colors: make([]string, 0, len(perf)),
		Badges: make([]string, 0, len(perf)),
	}
	for _, p := range perf {
		badge := ""
		switch {
		case top[p.Name]:
			badge = "top"
		case bottom[p.Name]:
			badge = "bottom"
		}
		chart.Labels = append(chart.Labels, p.Name)
		chart.Values = append(chart.Values, p.Score)
		chart.Colors = append(chart.Colors, p.Color)
		chart.Badges = append(chart.Badges, badge)
	}
	return chart
}

func sortByScore(perf []model.OutletPerformance, desc bool) {
	sort.SliceStable(perf, func(i, j int) bool {
		if desc {
			return perf[i].Score > perf[j].Score
		}
		return perf[i].Score < perf[j].Score
	})
}

func sortByChange(perf []model.OutletPerformance, desc bool) {
	sort.SliceStable(perf, func(i, j int) bool {
		if desc {
			return perf[i].Change > perf[j].Change
		}
		return perf[i].Change < perf[j].Change
	})
}

func head(perf []model.OutletPerformance) []model.OutletPerformance {
	if len(perf) > RankingSize {
		perf = perf[:RankingSize]
	}
	if perf == nil {
		return []model.OutletPerformance{}
	}
	return perf
}

func names(perf []model.OutletPerformance) map[string]bool {
	m := make(map[string]bool, len(perf))
	for _, p := range perf {
		m[p.Name] = true
	}
	return m
}
