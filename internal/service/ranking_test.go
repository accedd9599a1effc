package service

import (
	"testing"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

func perfOf(name string, score, prev, change float64, hasData bool) model.OutletPerformance {
	return model.OutletPerformance{Name: name, Score: score, PreviousScore: prev, Change: change, HasData: hasData}
}

func rankNames(perf []model.OutletPerformance) []string {
	out := make([]string, len(perf))
	for i, p := range perf {
		out[i] = p.Name
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankings(t *testing.T) {
	perf := []model.OutletPerformance{
		perfOf("A", 90, 80, 12.5, true),
		perfOf("B", 50, 60, -16.7, true),
		perfOf("C", 70, 0, 0, true),
		perfOf("D", 0, 40, -100, false),
		perfOf("E", 85, 85, 0, true),
		perfOf("F", 40, 20, 100, true),
	}

	r := Rankings(perf)

	tests := []struct {
		name string
		got  []model.OutletPerformance
		want []string
	}{
		{"top", r.Top, []string{"A", "E", "C"}},
		{"bottom", r.Bottom, []string{"F", "B", "C"}},
		{"most improved", r.MostImproved, []string{"F", "A", "E"}},
		{"most declined", r.MostDeclined, []string{"B", "E", "A"}},
	}
	for _, tt := range tests {
		if got := rankNames(tt.got); !equalNames(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	// Input order is untouched.
	if perf[0].Name != "A" || perf[5].Name != "F" {
		t.Errorf("Rankings reordered its input: %v", rankNames(perf))
	}
}

func TestRankings_Empty(t *testing.T) {
	r := Rankings(nil)
	if r.Top == nil || len(r.Top) != 0 || r.MostDeclined == nil {
		t.Errorf("empty rankings should be empty slices, got %+v", r)
	}
}

func TestBarChart_Badges(t *testing.T) {
	perf := []model.OutletPerformance{
		perfOf("A", 90, 0, 0, true),
		perfOf("B", 50, 0, 0, true),
		perfOf("C", 70, 0, 0, true),
		perfOf("D", 60, 0, 0, true),
	}
	perf[0].Color = "#fff"

	chart := BarChart(perf, model.Rankings{Top: perf[:1], Bottom: perf[1:2]})

	if !equalNames(chart.Labels, []string{"A", "B", "C", "D"}) {
		t.Errorf("labels = %v", chart.Labels)
	}
	if !equalNames(chart.Badges, []string{"top", "bottom", "", ""}) {
		t.Errorf("badges = %v", chart.Badges)
	}
	if chart.Values[2] != 70 || chart.Colors[0] != "#fff" {
		t.Errorf("values/colors not carried: %+v", chart)
	}
}
