// Package gateway exposes the scanner over a JSON HTTP API and serves the
// embedded browser dashboard.
package gateway

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atr-scanner/internal/model"
	"atr-scanner/internal/scanner"
)

//go:embed web/index.html
var indexHTML []byte

// exportPrefix is the watchlist namespace understood by the downstream
// charting tool; ".P" marks the perpetual contract.
const (
	exportPrefix = "BINANCE:"
	exportSuffix = ".P"
)

// SetCORS sets CORS headers for REST endpoints.
func SetCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// RegisterRoutes registers the dashboard, the scan API, and metrics on mux.
// Manually triggered scans run on ctx, the application context, so they
// outlive the HTTP request that started them.
func RegisterRoutes(mux *http.ServeMux, ctx context.Context, store *scanner.Store, sched *scanner.Scheduler, gatherer prometheus.Gatherer, log *slog.Logger) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/api/scan-data", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		w.Header().Set("Content-Type", "application/json")

		snap := store.Snapshot()
		var lastUpdate *string
		if !snap.LastUpdate.IsZero() {
			s := snap.LastUpdate.Format(time.RFC3339)
			lastUpdate = &s
		}
		json.NewEncoder(w).Encode(scanDataResponse{
			Results:      snap.Results,
			LastUpdate:   lastUpdate,
			Scanning:     snap.Scanning,
			TotalSymbols: len(snap.Results),
			ScanSettings: snap.Settings,
		})
	})

	mux.HandleFunc("/api/force-scan", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, `{"status":"error","message":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}

		status := "scan_started"
		if !sched.TriggerScan(ctx) {
			status = "scan_already_running"
		} else {
			log.Info("manual scan triggered", "remote", r.RemoteAddr)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	mux.HandleFunc("/api/update-settings", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, `{"status":"error","message":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}

		var patch model.SettingsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}

		settings := store.ApplySettings(patch)
		log.Info("settings updated", "settings", settings)
		json.NewEncoder(w).Encode(updateSettingsResponse{
			Status:   "settings_updated",
			Settings: settings,
		})
	})

	mux.HandleFunc("/api/export-symbols", func(w http.ResponseWriter, r *http.Request) {
		SetCORS(w)
		w.Header().Set("Content-Type", "application/json")

		snap := store.Snapshot()
		// Results are published sorted descending by ATR percentage.
		parts := make([]string, 0, len(snap.Results))
		for _, res := range snap.Results {
			parts = append(parts, exportPrefix+res.Symbol+exportSuffix)
		}
		json.NewEncoder(w).Encode(exportResponse{
			Symbols: strings.Join(parts, ","),
			Count:   len(parts),
		})
	})

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
