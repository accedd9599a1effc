package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

type fetchFunc func(ctx context.Context, url string) (*model.Dataset, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) (*model.Dataset, error) {
	return f(ctx, url)
}

type memRuns struct {
	runs []model.RefreshRun
}

func (m *memRuns) Record(_ context.Context, run *model.RefreshRun) error {
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memRuns) Recent(_ context.Context, _ int) ([]model.RefreshRun, error) {
	return m.runs, nil
}

func TestRefreshService_CommitsSnapshot(t *testing.T) {
	reg := ingest.NewRegistry(map[string]string{SourceMain: "http://sheet.test/main.csv"})
	runs := &memRuns{}
	svc := NewRefreshService(reg, fetchFunc(func(_ context.Context, url string) (*model.Dataset, error) {
		assert.Equal(t, "http://sheet.test/main.csv", url)
		return reportDataset(), nil
	}), runs)

	out := svc.RefreshAll(context.Background())

	require.Len(t, out, 1)
	assert.Equal(t, model.RefreshOK, out[0].Status)
	assert.Equal(t, 3, out[0].RowCount)
	assert.Equal(t, uint64(1), out[0].Generation)

	store, _ := reg.Get(SourceMain)
	require.NotNil(t, store.Current())
	assert.Equal(t, uint64(1), store.Current().Generation)

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRefreshService_FailureKeepsPreviousSnapshot(t *testing.T) {
	reg := loadedRegistry(t, reportDataset())
	svc := NewRefreshService(reg, fetchFunc(func(context.Context, string) (*model.Dataset, error) {
		return nil, &ingest.FetchError{URL: "u", Status: 500}
	}), nil)

	store, _ := reg.Get(SourceMain)
	run := svc.Refresh(context.Background(), store)

	assert.Equal(t, model.RefreshError, run.Status)
	assert.NotEmpty(t, run.Error)
	assert.Equal(t, uint64(1), store.Generation())
	assert.NotNil(t, store.Current())
}

func TestRefreshService_StaleFetchDiscarded(t *testing.T) {
	reg := ingest.NewRegistry(map[string]string{SourceMain: "http://sheet.test/main.csv"})
	store, _ := reg.Get(SourceMain)

	newer := reportDataset()
	svc := NewRefreshService(reg, fetchFunc(func(context.Context, string) (*model.Dataset, error) {
		// A later fetch starts and commits while this one is in flight.
		require.True(t, store.Commit(store.Begin(), newer))
		return reportDataset(), nil
	}), nil)

	run := svc.Refresh(context.Background(), store)

	assert.Equal(t, model.RefreshStale, run.Status)
	assert.Equal(t, uint64(2), store.Generation())
	assert.Same(t, newer, store.Current())
}

func TestRefreshService_HistoryWithoutStore(t *testing.T) {
	svc := NewRefreshService(ingest.NewRegistry(nil), nil, nil)
	runs, err := svc.History(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.False(t, errors.Is(err, ErrNoSnapshot))
}
