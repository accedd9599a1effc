package service

import (
	"sort"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/chat"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/pkg/stats"
)

// summaryDashboard addresses every catalog outlet by suffix.
var summaryDashboard = Dashboard{
	Name:     "summary",
	Source:   SourceMain,
	Outlets:  schema.Catalog,
	Strategy: schema.SuffixStrategy{},
}

// SummaryService flattens the main sheet for the summary endpoint and the
// chat prompts.
type SummaryService struct {
	dashboards *DashboardService
}

func NewSummaryService(dashboards *DashboardService) *SummaryService {
	return &SummaryService{dashboards: dashboards}
}

// Entries maps each date to one entry per outlet block that carries it. An
// empty date returns every date.
func (s *SummaryService) Entries(date string) (map[string][]model.SummaryEntry, error) {
	ds, err := s.dashboards.Snapshot(SourceMain)
	if err != nil {
		return nil, err
	}

	out := map[string][]model.SummaryEntry{}
	strategy := summaryDashboard.Strategy
	for _, row := range ds.Rows {
		for _, o := range schema.Catalog {
			cols, ok := strategy.Columns(ds.Header, o)
			if !ok {
				continue
			}
			d := row[cols.Date]
			if d == "" || (date != "" && d != date) {
				continue
			}
			out[d] = append(out[d], model.SummaryEntry{
				Outlet: o.Name,
				Type:   row[cols.Type],
				URL:    row[cols.URL],
				Score:  schema.ParseValue(row[cols.Score]),
				CLS:    schema.ParseValue(row[cols.CLS]),
				LCP:    schema.ParseValue(row[cols.LCP]),
				SI:     schema.ParseValue(row[cols.SI]),
				TBT:    schema.ParseValue(row[cols.TBT]),
				FCP:    schema.ParseValue(row[cols.FCP]),
			})
		}
	}
	return out, nil
}

// ChatSummary averages every outlet's metrics per date and content type,
// rounded to 2 decimals. Outlets without any value on a date are left out.
func (s *SummaryService) ChatSummary(dates []string) (chat.Summary, error) {
	ds, err := s.dashboards.Snapshot(SourceMain)
	if err != nil {
		return nil, err
	}
	e := NewEngine(ds, summaryDashboard)

	out := chat.Summary{}
	for _, d := range dates {
		p := model.Period{Granularity: model.Daily, Start: d, End: d, Dates: []string{d}}
		for _, ct := range []model.ContentType{model.ContentNota, model.ContentVideo} {
			for _, o := range e.Outlets() {
				avgs := sampleAverages(e.Samples(o.Name, ct, p))
				if !roundSet(&avgs, 2) {
					continue
				}
				if out[d] == nil {
					out[d] = map[string]map[string]model.MetricSet{}
				}
				if out[d][string(ct)] == nil {
					out[d][string(ct)] = map[string]model.MetricSet{}
				}
				out[d][string(ct)][o.Name] = avgs
			}
		}
	}
	return out, nil
}

// LatestDates returns up to n most recent snapshot dates, oldest first.
func (s *SummaryService) LatestDates(n int) ([]string, error) {
	ds, err := s.dashboards.Snapshot(SourceMain)
	if err != nil {
		return nil, err
	}
	dates := append([]string(nil), ds.Dates...)
	sort.Strings(dates)
	if n > 0 && len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	return dates, nil
}

// roundSet rounds every non-nil field and reports whether any was set.
func roundSet(s *model.MetricSet, dp int) bool {
	set := false
	for _, m := range allMetrics {
		if v := s.Get(m); v != nil {
			r := stats.Round(*v, dp)
			s.Set(m, &r)
			set = true
		}
	}
	return set
}
