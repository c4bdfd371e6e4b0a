package model

import "time"

// Candle represents one OHLCV observation for a single instrument.
// Prices are float64 — the exchange delivers them as decimal strings
// and the indicator math runs on floats end to end.
type Candle struct {
	OpenTime  time.Time `json:"open_time"`
	CloseTime time.Time `json:"close_time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}
