package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"atr-scanner/config"
	"atr-scanner/internal/gateway"
	"atr-scanner/internal/logger"
	"atr-scanner/internal/metrics"
	"atr-scanner/internal/scanner"
	"atr-scanner/pkg/binance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[scanner] config load failed: %v", err)
	}

	slogger := logger.Init("atr-scanner", logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := binance.NewClient(binance.Config{
		BaseURL:     cfg.BinanceBaseURL,
		Timeout:     cfg.HTTPTimeout,
		QuoteSuffix: cfg.QuoteSuffix,
	})

	store := scanner.NewStore(cfg.ScanSettings())
	engine := scanner.NewEngine(client, cfg.PacingDelay, slogger, m)
	sched := scanner.NewScheduler(engine, store, cfg.ScanInterval, slogger)

	go sched.Run(ctx)

	mux := http.NewServeMux()
	gateway.RegisterRoutes(mux, ctx, store, sched, reg, slogger)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		slogger.Info("http server started", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("http shutdown failed", "err", err)
	}
}
