// Package scanner contains the scan engine, the shared result store, and the
// scheduler that drives periodic and manually triggered scan runs.
package scanner

import (
	"sync"
	"time"

	"atr-scanner/internal/model"
)

// Store is the single process-wide holder of scan state: the latest results,
// the last-update timestamp, the scanning flag, and the current settings.
// All access goes through the mutex; readers always observe either the
// pre-scan or the fully published post-scan state.
type Store struct {
	mu         sync.RWMutex
	results    []model.ScanResult
	lastUpdate time.Time // zero value = never updated
	scanning   bool
	settings   model.ScanSettings
}

// Snapshot is a consistent read of the store for API consumers.
type Snapshot struct {
	Results    []model.ScanResult
	LastUpdate time.Time
	Scanning   bool
	Settings   model.ScanSettings
}

// NewStore creates a Store with the given initial settings and no results.
func NewStore(settings model.ScanSettings) *Store {
	return &Store{settings: settings}
}

// Snapshot returns a consistent copy of the current state. The results slice
// is copied so callers can never observe a partially written scan.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]model.ScanResult, len(s.results))
	copy(results, s.results)
	return Snapshot{
		Results:    results,
		LastUpdate: s.lastUpdate,
		Scanning:   s.scanning,
		Settings:   s.settings,
	}
}

// Settings returns a value snapshot of the current settings. A scan run
// takes one snapshot at start and uses it throughout; updates applied
// mid-flight only affect the next run.
func (s *Store) Settings() model.ScanSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// ApplySettings merges a partial update into the settings and returns the
// merged result.
func (s *Store) ApplySettings(patch model.SettingsPatch) model.ScanSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.Apply(&s.settings)
	return s.settings
}

// BeginScan attempts to claim the scanning flag. Returns false if a scan is
// already in flight; at most one scan body runs at a time regardless of
// whether the timer or a manual trigger started it.
func (s *Store) BeginScan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanning {
		return false
	}
	s.scanning = true
	return true
}

// EndScan clears the scanning flag. Deferred by the scan body so the store
// never reports "scanning" forever after a failed run.
func (s *Store) EndScan() {
	s.mu.Lock()
	s.scanning = false
	s.mu.Unlock()
}

// Publish atomically replaces the results and last-update timestamp.
func (s *Store) Publish(results []model.ScanResult, ts time.Time) {
	s.mu.Lock()
	s.results = results
	s.lastUpdate = ts
	s.mu.Unlock()
}
