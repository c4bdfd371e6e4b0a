package scanner

import (
	"context"
	"log/slog"
	"time"

	"atr-scanner/internal/indicator"
	"atr-scanner/internal/metrics"
	"atr-scanner/internal/model"
)

// historyPadding is fetched on top of the ATR period so the window is full
// even when the upstream returns slightly fewer candles than requested.
const historyPadding = 50

// Engine runs one full scan: list instruments, fetch candles per instrument,
// compute ATR percentage, filter by threshold. Instruments are processed
// sequentially with a flat pacing delay between fetches to stay inside the
// upstream rate limits.
type Engine struct {
	market  model.MarketData
	pacing  time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewEngine creates a scan engine over the given market-data source.
func NewEngine(market model.MarketData, pacing time.Duration, log *slog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		market:  market,
		pacing:  pacing,
		log:     log,
		metrics: m,
	}
}

// Scan performs one run with the given settings snapshot and returns the
// qualifying results, unordered. Per-instrument failures are logged and
// skipped; an empty instrument listing produces zero results, not an error.
// Context cancellation ends the run early with whatever has been collected.
func (e *Engine) Scan(ctx context.Context, settings model.ScanSettings) []model.ScanResult {
	symbols, err := e.market.ActiveSymbols(ctx)
	if err != nil {
		e.log.Error("instrument listing failed", "err", err)
		e.metrics.FetchErrors.Inc()
		return nil
	}
	e.log.Info("scan started",
		"symbols", len(symbols),
		"interval", settings.Interval,
		"period", settings.ATRPeriod,
	)
	e.metrics.SymbolsScanned.Set(float64(len(symbols)))

	var results []model.ScanResult
	for i, symbol := range symbols {
		if ctx.Err() != nil {
			e.log.Warn("scan interrupted", "processed", i, "total", len(symbols))
			return results
		}

		if r, ok := e.scanSymbol(ctx, symbol, settings); ok {
			results = append(results, r)
		}

		e.pace(ctx)
	}
	return results
}

func (e *Engine) scanSymbol(ctx context.Context, symbol string, settings model.ScanSettings) (model.ScanResult, bool) {
	candles, err := e.market.Klines(ctx, symbol, settings.Interval, settings.ATRPeriod+historyPadding)
	if err != nil {
		e.log.Debug("candle fetch failed", "symbol", symbol, "err", err)
		e.metrics.FetchErrors.Inc()
		return model.ScanResult{}, false
	}
	if len(candles) < settings.ATRPeriod+1 {
		// Insufficient history: excluded, not an error.
		e.metrics.SymbolsSkipped.Inc()
		return model.ScanResult{}, false
	}

	atrValue := indicator.ATRFromCandles(candles, settings.ATRPeriod)
	currentPrice := candles[len(candles)-1].Close
	pct := indicator.PercentOfPrice(atrValue, currentPrice, settings.ATRMultiplier)
	if pct < settings.MinATRPercentage {
		return model.ScanResult{}, false
	}

	e.log.Debug("symbol qualified", "symbol", symbol, "atr_pct", pct)
	return model.ScanResult{
		Symbol:        symbol,
		CurrentPrice:  currentPrice,
		ATRValue:      atrValue,
		ATRPercentage: pct,
		ATRPeriod:     settings.ATRPeriod,
		ATRMultiplier: settings.ATRMultiplier,
	}, true
}

// pace sleeps for the flat inter-instrument delay, waking early on
// cancellation.
func (e *Engine) pace(ctx context.Context) {
	if e.pacing <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(e.pacing):
	}
}
