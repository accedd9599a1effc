package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

func reportDataset() *model.Dataset {
	return testDataset(
		outletRow(0, "2025-05-01", "nota", "Score", "70"),
		outletRow(0, "2025-05-02", "nota", "Score", "80"),
		outletRow(1, "2025-05-02", "nota", "Score", "60"),
	)
}

// loadedRegistry returns a registry whose main store holds ds.
func loadedRegistry(t *testing.T, ds *model.Dataset) *ingest.Registry {
	t.Helper()
	reg := ingest.NewRegistry(map[string]string{SourceMain: "http://sheet.test/main.csv"})
	store, ok := reg.Get(SourceMain)
	require.True(t, ok)
	if ds != nil {
		require.True(t, store.Commit(store.Begin(), ds))
	}
	return reg
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCacheServiceWithClient(rdb, time.Minute), mr
}

func TestDashboardService_Report(t *testing.T) {
	svc := NewDashboardService(loadedRegistry(t, reportDataset()), nil)

	r, err := svc.Report(context.Background(), Query{Dashboard: DashboardGeneral})
	require.NoError(t, err)

	assert.Equal(t, DashboardGeneral, r.Dashboard)
	assert.Equal(t, model.ContentNota, r.ContentType)
	assert.Equal(t, []string{"2025-05-02"}, r.Current.Dates)
	assert.Equal(t, []string{"2025-05-01"}, r.Previous.Dates)

	require.GreaterOrEqual(t, len(r.Performance), 2)
	assert.Equal(t, "Heraldo", r.Performance[0].Name)
	assert.InDelta(t, 80.0, r.Performance[0].Score, 1e-9)
	assert.InDelta(t, 14.3, r.Performance[0].Change, 1e-9)
	assert.Equal(t, "Televisa", r.Performance[1].Name)
	assert.InDelta(t, 0.0, r.Performance[1].Change, 1e-9)

	assert.InDelta(t, 70.0, r.Overall.Current, 1e-9)
	assert.InDelta(t, 70.0, r.Overall.Previous, 1e-9)

	require.Len(t, r.Rankings.Top, 2)
	require.Len(t, r.Rankings.MostImproved, 1)
	assert.Equal(t, "Heraldo", r.Rankings.MostImproved[0].Name)
	assert.Equal(t, "top", r.Chart.Badges[0])
}

func TestDashboardService_ReportIsCachedPerGeneration(t *testing.T) {
	cache, mr := newTestCache(t)
	reg := loadedRegistry(t, reportDataset())
	svc := NewDashboardService(reg, cache)
	ctx := context.Background()

	first, err := svc.Report(ctx, Query{Dashboard: DashboardGeneral})
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "report:main:1:"), keys[0])

	second, err := svc.Report(ctx, Query{Dashboard: DashboardGeneral})
	require.NoError(t, err)
	assert.Equal(t, first.Performance, second.Performance)
	assert.Len(t, mr.Keys(), 1)

	store, _ := reg.Get(SourceMain)
	require.True(t, store.Commit(store.Begin(), reportDataset()))

	third, err := svc.Report(ctx, Query{Dashboard: DashboardGeneral})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), third.Generation)
	assert.Len(t, mr.Keys(), 2)
}

func TestDashboardService_Errors(t *testing.T) {
	empty := NewDashboardService(loadedRegistry(t, nil), nil)
	_, _, err := empty.Score(Query{Outlet: "Heraldo"})
	assert.True(t, errors.Is(err, ErrNoSnapshot))

	svc := NewDashboardService(loadedRegistry(t, reportDataset()), nil)

	_, err = svc.Report(context.Background(), Query{Dashboard: "nope"})
	assert.True(t, errors.Is(err, ErrUnknownDashboard))

	_, _, err = svc.Score(Query{Outlet: "Nope"})
	assert.True(t, errors.Is(err, ErrUnknownOutlet))

	_, err = svc.Dates(SourceVertical)
	assert.True(t, errors.Is(err, ErrUnknownSource))

	_, _, err = svc.Score(Query{Outlet: "Heraldo", Granularity: "hourly"})
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestDashboardService_ScoreAndMetrics(t *testing.T) {
	svc := NewDashboardService(loadedRegistry(t, reportDataset()), nil)

	score, p, err := svc.Score(Query{Outlet: "Heraldo", Granularity: model.All})
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 75.0, *score, 1e-9)
	assert.Equal(t, []string{"2025-05-01", "2025-05-02"}, p.Dates)

	score, _, err = svc.Score(Query{Outlet: AllCombined, Date: "2025-05-02"})
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 70.0, *score, 1e-9)

	ms, _, err := svc.Metrics(Query{Outlet: "Televisa", Date: "2025-05-01"})
	require.NoError(t, err)
	assert.Nil(t, ms.Score)

	dates, err := svc.Dates("")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-01", "2025-05-02"}, dates)
}

func TestDashboardService_Series(t *testing.T) {
	svc := NewDashboardService(loadedRegistry(t, reportDataset()), nil)

	s, err := svc.Series(Query{Outlet: "Heraldo", Granularity: model.All})
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.InDelta(t, 10.0, s.Regression.Slope, 1e-9)
}
