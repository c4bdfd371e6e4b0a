package scanner

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Scheduler drives the engine: one scan immediately at startup, then one per
// fixed interval until the context is cancelled. Manual triggers share the
// same scan body and the same mutual-exclusion gate in the store, so at most
// one scan runs at a time; a trigger arriving mid-scan is dropped.
type Scheduler struct {
	engine   *Engine
	store    *Store
	interval time.Duration
	log      *slog.Logger
}

// NewScheduler creates a scheduler running the engine every interval.
func NewScheduler(engine *Engine, store *Store, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		store:    store,
		interval: interval,
		log:      log,
	}
}

// Run blocks until ctx is cancelled. The periodic timer is independent of
// manual triggers: a tick that lands while a manual scan is in flight is
// simply skipped.
func (s *Scheduler) Run(ctx context.Context) {
	s.scanIfIdle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.scanIfIdle(ctx)
		}
	}
}

// TriggerScan starts a one-shot scan in the background if no scan is in
// flight. Returns false when a scan is already running.
func (s *Scheduler) TriggerScan(ctx context.Context) bool {
	if !s.store.BeginScan() {
		return false
	}
	go s.scanOnce(ctx)
	return true
}

func (s *Scheduler) scanIfIdle(ctx context.Context) {
	if !s.store.BeginScan() {
		s.log.Warn("periodic scan skipped, previous scan still running")
		return
	}
	s.scanOnce(ctx)
}

// scanOnce is the single scan body shared by the timer and manual paths.
// Callers must have claimed the scanning flag via BeginScan.
func (s *Scheduler) scanOnce(ctx context.Context) {
	defer s.store.EndScan()

	start := time.Now()
	settings := s.store.Settings()
	results := s.engine.Scan(ctx, settings)

	// Publish fully sorted, descending by ATR percentage. Stable, so ties
	// keep their scan order deterministically within a run.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ATRPercentage > results[j].ATRPercentage
	})
	s.store.Publish(results, time.Now().UTC())

	s.engine.metrics.ScansTotal.Inc()
	s.engine.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	s.engine.metrics.ResultsCount.Set(float64(len(results)))
	s.log.Info("scan completed", "results", len(results), "took", time.Since(start))
}
