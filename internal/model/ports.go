package model

import "context"

// ── Market Data Port ──
// Decouples the scan engine from the concrete exchange client so tests can
// substitute a fake upstream.

// MarketData provides instrument listings and candle history.
type MarketData interface {
	// ActiveSymbols returns the symbols of all tradable perpetual contracts
	// quoted in the configured settlement currency.
	ActiveSymbols(ctx context.Context) ([]string, error)

	// Klines fetches up to limit candles for a symbol at the given interval,
	// oldest first.
	Klines(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)
}
