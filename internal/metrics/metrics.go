// Package metrics defines Prometheus instrumentation for the scanner.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the scan pipeline.
type Metrics struct {
	ScansTotal     prometheus.Counter
	ScanDuration   prometheus.Histogram
	SymbolsScanned prometheus.Gauge
	FetchErrors    prometheus.Counter
	SymbolsSkipped prometheus.Counter
	ResultsCount   prometheus.Gauge
}

// New registers and returns all scanner metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_scans_total",
			Help: "Total completed scan runs",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_scan_duration_seconds",
			Help:    "Wall-clock duration of a full scan run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		SymbolsScanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scanner_symbols_scanned",
			Help: "Symbols examined in the most recent scan run",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_fetch_errors_total",
			Help: "Upstream candle/listing fetch failures",
		}),
		SymbolsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_symbols_skipped_total",
			Help: "Symbols skipped for insufficient candle history",
		}),
		ResultsCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scanner_results_count",
			Help: "Qualifying symbols in the most recent scan run",
		}),
	}

	reg.MustRegister(
		m.ScansTotal,
		m.ScanDuration,
		m.SymbolsScanned,
		m.FetchErrors,
		m.SymbolsSkipped,
		m.ResultsCount,
	)
	return m
}
