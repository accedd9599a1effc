package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/metrics"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

var (
	ErrNoSnapshot       = errors.New("no snapshot loaded yet")
	ErrUnknownDashboard = errors.New("unknown dashboard")
	ErrUnknownOutlet    = errors.New("unknown outlet")
	ErrUnknownSource    = errors.New("unknown source")
	ErrNoData           = errors.New("no data for the selected period")
)

// Query is the filter set shared by the read endpoints.
type Query struct {
	Dashboard   string            `json:"dashboard"`
	Outlet      string            `json:"outlet,omitempty"`
	Type        model.ContentType `json:"type"`
	Granularity model.Granularity `json:"granularity"`
	Date        string            `json:"date,omitempty"`
	Start       string            `json:"start,omitempty"`
	End         string            `json:"end,omitempty"`
	RefStart    string            `json:"refStart,omitempty"`
	RefEnd      string            `json:"refEnd,omitempty"`
}

func (q Query) contentType() model.ContentType {
	if q.Type == "" {
		return model.ContentNota
	}
	return q.Type
}

// DashboardService builds engines over the current snapshots and serves
// aggregated views of them.
type DashboardService struct {
	registry   *ingest.Registry
	dashboards map[string]Dashboard
	cache      *CacheService
	flight     singleflight.Group
}

// NewDashboardService creates a DashboardService. cache may be nil.
func NewDashboardService(registry *ingest.Registry, cache *CacheService) *DashboardService {
	if cache == nil {
		cache = &CacheService{}
	}
	return &DashboardService{
		registry:   registry,
		dashboards: Dashboards(),
		cache:      cache,
	}
}

// Snapshot returns the current dataset of a source.
func (s *DashboardService) Snapshot(source string) (*model.Dataset, error) {
	store, ok := s.registry.Get(source)
	if !ok {
		return nil, ErrUnknownSource
	}
	ds := store.Current()
	if ds == nil {
		return nil, ErrNoSnapshot
	}
	return ds, nil
}

// Engine builds an engine for the named dashboard over its source's
// current snapshot.
func (s *DashboardService) Engine(name string) (*Engine, error) {
	if name == "" {
		name = DashboardGeneral
	}
	dash, ok := s.dashboards[name]
	if !ok {
		return nil, ErrUnknownDashboard
	}
	ds, err := s.Snapshot(dash.Source)
	if err != nil {
		return nil, err
	}
	return NewEngine(ds, dash), nil
}

// Dates lists the snapshot dates of a source.
func (s *DashboardService) Dates(source string) ([]string, error) {
	if source == "" {
		source = SourceMain
	}
	ds, err := s.Snapshot(source)
	if err != nil {
		return nil, err
	}
	return ds.Dates, nil
}

func (s *DashboardService) resolve(q Query) (*Engine, model.Period, error) {
	e, err := s.Engine(q.Dashboard)
	if err != nil {
		return nil, model.Period{}, err
	}
	p, err := ResolvePeriod(e.Dataset().Dates, q.Granularity, q.Date, q.Start, q.End)
	if err != nil {
		return nil, model.Period{}, err
	}
	return e, p, nil
}

// Score is ComputeScore for q's outlet over q's period. A nil score with a
// nil error means the outlet has no rows in the period.
func (s *DashboardService) Score(q Query) (*float64, model.Period, error) {
	e, p, err := s.resolve(q)
	if err != nil {
		return nil, p, err
	}
	if !e.HasOutlet(q.Outlet) {
		return nil, p, ErrUnknownOutlet
	}
	return e.ComputeScore(q.Outlet, q.contentType(), p), p, nil
}

// Metrics is MetricsForOutlet for q's outlet over q's period.
func (s *DashboardService) Metrics(q Query) (model.MetricSet, model.Period, error) {
	e, p, err := s.resolve(q)
	if err != nil {
		return model.MetricSet{}, p, err
	}
	if !e.HasOutlet(q.Outlet) {
		return model.MetricSet{}, p, ErrUnknownOutlet
	}
	return e.MetricsForOutlet(q.Outlet, q.contentType(), p), p, nil
}

// Series is the per-date timeline of q's outlet.
func (s *DashboardService) Series(q Query) (model.TimelineSeries, error) {
	e, p, err := s.resolve(q)
	if err != nil {
		return model.TimelineSeries{}, err
	}
	if !e.HasOutlet(q.Outlet) {
		return model.TimelineSeries{}, ErrUnknownOutlet
	}
	return e.Timeline(q.Outlet, q.contentType(), p), nil
}

// Trend compares Azteca against the competition on the trend dashboard.
func (s *DashboardService) Trend(q Query) (model.TrendAnalysis, error) {
	q.Dashboard = DashboardTrend
	e, p, err := s.resolve(q)
	if err != nil {
		return model.TrendAnalysis{}, err
	}
	return e.Trend(q.contentType(), p), nil
}

// Regions averages the local dashboard by map region.
func (s *DashboardService) Regions(q Query) ([]model.RegionScore, error) {
	q.Dashboard = DashboardLocal
	e, p, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	return e.Regions(q.contentType(), p), nil
}

// Report builds the full dashboard view for q: performance, rankings,
// overall group score and the bar chart. Reports are cached per snapshot
// generation and concurrent builds of the same report are coalesced.
func (s *DashboardService) Report(ctx context.Context, q Query) (*model.DashboardReport, error) {
	e, cur, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	q.Outlet = ""
	q.Dashboard = e.Dashboard().Name
	q.Type = q.contentType()

	ds := e.Dataset()
	prev, err := PreviousPeriod(ds.Dates, cur, q.RefStart, q.RefEnd)
	if err != nil {
		return nil, err
	}

	key, err := ReportKey(ds.Source, ds.Generation, q)
	if err != nil {
		return nil, err
	}

	if data, err := s.cache.GetReport(ctx, key); err != nil {
		middleware.Logger.Warn().Err(err).Str("component", "cache").Msg("report get failed")
	} else if data != nil {
		var report model.DashboardReport
		if err := json.Unmarshal(data, &report); err == nil {
			metrics.Metrics.CacheHits.Inc()
			return &report, nil
		}
	}
	metrics.Metrics.CacheMisses.Inc()

	v, err, _ := s.flight.Do(key, func() (any, error) {
		report := buildReport(e, q.Type, cur, prev)
		if err := s.cache.SetReport(ctx, key, report); err != nil {
			middleware.Logger.Warn().Err(err).Str("component", "cache").Msg("report set failed")
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.DashboardReport), nil
}

func buildReport(e *Engine, ct model.ContentType, cur, prev model.Period) *model.DashboardReport {
	start := time.Now()
	defer func() {
		metrics.Metrics.ReportDuration.Observe(time.Since(start).Seconds())
	}()

	perf := e.Performance(ct, cur, prev)
	rankings := Rankings(perf)
	return &model.DashboardReport{
		Dashboard:   e.Dashboard().Name,
		ContentType: ct,
		Current:     cur,
		Previous:    prev,
		Generation:  e.Dataset().Generation,
		Overall:     e.GroupScore("", ct, cur, prev),
		Performance: perf,
		Rankings:    rankings,
		Chart:       BarChart(perf, rankings),
	}
}
