package service

import (
	"context"
	"time"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// RefreshWorker is a periodic background job that re-fetches every sheet.
type RefreshWorker struct {
	svc      *RefreshService
	interval time.Duration
	stopCh   chan struct{}
}

// NewRefreshWorker creates a worker that ticks every interval.
func NewRefreshWorker(svc *RefreshService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the refresh loop. It runs one tick immediately, then every
// interval, and returns when ctx is cancelled or Stop is called.
func (w *RefreshWorker) Start(ctx context.Context) {
	log := middleware.Logger.With().Str("component", "refresh-worker").Logger()
	log.Info().Dur("interval", w.interval).Msg("starting")

	// Run once immediately on startup
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Info().Msg("stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Info().Msg("stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RefreshWorker) Stop() {
	close(w.stopCh)
}

func (w *RefreshWorker) tick(ctx context.Context) {
	start := time.Now()
	runs := w.svc.RefreshAll(ctx)

	var ok, failed int
	for _, r := range runs {
		if r.Status == model.RefreshOK {
			ok++
		} else {
			failed++
		}
	}
	middleware.Logger.Info().
		Str("component", "refresh-worker").
		Int("committed", ok).
		Int("not_committed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("tick complete")
}
