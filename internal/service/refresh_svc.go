package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/ingest"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/metrics"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// SheetFetcher downloads and parses one published sheet.
type SheetFetcher interface {
	Fetch(ctx context.Context, url string) (*model.Dataset, error)
}

// RefreshStore persists refresh attempts.
type RefreshStore interface {
	Record(ctx context.Context, run *model.RefreshRun) error
	Recent(ctx context.Context, limit int) ([]model.RefreshRun, error)
}

// RefreshService fetches sheets into the registry's stores. A failed fetch
// keeps the previous snapshot; a fetch that finishes after a newer one has
// committed is discarded.
type RefreshService struct {
	registry *ingest.Registry
	fetcher  SheetFetcher
	runs     RefreshStore
}

// NewRefreshService creates a RefreshService. runs may be nil.
func NewRefreshService(registry *ingest.Registry, fetcher SheetFetcher, runs RefreshStore) *RefreshService {
	return &RefreshService{registry: registry, fetcher: fetcher, runs: runs}
}

// Refresh fetches one store's sheet and commits it under a fresh generation.
func (s *RefreshService) Refresh(ctx context.Context, store *ingest.Store) model.RefreshRun {
	log := middleware.Logger.With().Str("component", "refresh").Str("source", store.Source()).Logger()

	run := model.RefreshRun{
		ID:         uuid.New(),
		Source:     store.Source(),
		Generation: store.Begin(),
		StartedAt:  time.Now().UTC(),
	}

	ds, err := s.fetcher.Fetch(ctx, store.URL())
	run.FinishedAt = time.Now().UTC()
	metrics.Metrics.RefreshDuration.Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())

	switch {
	case err != nil:
		run.Status = model.RefreshError
		run.Error = err.Error()
		log.Error().Err(err).Uint64("generation", run.Generation).Msg("fetch failed, keeping previous snapshot")
	case !store.Commit(run.Generation, ds):
		run.Status = model.RefreshStale
		if ds != nil {
			run.RowCount = len(ds.Rows)
		}
		log.Warn().Uint64("generation", run.Generation).Uint64("committed", store.Generation()).Msg("stale fetch discarded")
	default:
		run.Status = model.RefreshOK
		run.RowCount = len(ds.Rows)
		metrics.Metrics.SnapshotRows.WithLabelValues(run.Source).Set(float64(run.RowCount))
		metrics.Metrics.SnapshotGeneration.WithLabelValues(run.Source).Set(float64(run.Generation))
		log.Info().Uint64("generation", run.Generation).Int("rows", run.RowCount).Int("dates", len(ds.Dates)).Msg("snapshot committed")
	}
	metrics.Metrics.RefreshTotal.WithLabelValues(run.Source, run.Status).Inc()

	if s.runs != nil {
		if err := s.runs.Record(ctx, &run); err != nil {
			log.Warn().Err(err).Msg("refresh run not recorded")
		}
	}
	return run
}

// RefreshAll refreshes every registered source concurrently. Runs are
// returned in registry order.
func (s *RefreshService) RefreshAll(ctx context.Context) []model.RefreshRun {
	stores := s.registry.Stores()
	runs := make([]model.RefreshRun, len(stores))

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	for i, store := range stores {
		g.Go(func() error {
			run := s.Refresh(gCtx, store)
			mu.Lock()
			runs[i] = run
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return runs
}

// History lists recent refresh attempts, empty when persistence is off.
func (s *RefreshService) History(ctx context.Context, limit int) ([]model.RefreshRun, error) {
	if s.runs == nil {
		return []model.RefreshRun{}, nil
	}
	return s.runs.Recent(ctx, limit)
}
