package indicator

import (
	"math"
	"testing"
	"time"

	"atr-scanner/internal/model"
)

func makeCandle(high, low, close float64) model.Candle {
	return model.Candle{
		OpenTime: time.Now().UTC(),
		Open:     close,
		High:     high,
		Low:      low,
		Close:    close,
		Volume:   100,
	}
}

func constantSeries(n int, price float64) []model.Candle {
	candles := make([]model.Candle, n)
	for i := range candles {
		candles[i] = makeCandle(price, price, price)
	}
	return candles
}

func TestTrueRange(t *testing.T) {
	tests := []struct {
		name                 string
		high, low, prevClose float64
		want                 float64
	}{
		{"intrabar range dominates", 110, 100, 105, 10},
		{"gap up dominates", 110, 100, 80, 30},
		{"gap down dominates", 110, 100, 130, 30},
		{"zero range", 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrueRange(tt.high, tt.low, tt.prevClose)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TrueRange(%v, %v, %v) = %v, want %v", tt.high, tt.low, tt.prevClose, got, tt.want)
			}
			if got < 0 {
				t.Errorf("TrueRange must be non-negative, got %v", got)
			}
		})
	}
}

func TestATRFromCandles_InsufficientHistory(t *testing.T) {
	// Fewer than period+1 candles always yields 0.
	for _, n := range []int{0, 1, 5, 14} {
		if got := ATRFromCandles(constantSeries(n, 100), 14); got != 0 {
			t.Errorf("len=%d: expected 0.0, got %v", n, got)
		}
	}
	// Exactly period+1 is enough.
	if got := ATRFromCandles(constantSeries(15, 100), 14); got != 0 {
		t.Errorf("constant series: expected ATR 0.0, got %v", got)
	}
}

func TestATRFromCandles_ConstantSeries(t *testing.T) {
	// 60 candles of constant price 100 and zero range: ATR is 0 for any
	// period up to 59, so the instrument never clears a positive threshold.
	series := constantSeries(60, 100)
	for _, period := range []int{5, 21, 50, 59} {
		if got := ATRFromCandles(series, period); got != 0 {
			t.Errorf("period=%d: expected ATR 0.0, got %v", period, got)
		}
	}
	if got := ATRFromCandles(series, 60); got != 0 {
		t.Errorf("period=60 exceeds history, expected 0.0, got %v", got)
	}
}

func TestATRFromCandles_KnownSeries(t *testing.T) {
	// Four candles, period 3: first candle primes prevClose, the remaining
	// three contribute TRs of 4, 6 (gap), and 2.
	candles := []model.Candle{
		makeCandle(102, 98, 100),
		makeCandle(104, 100, 102), // TR = max(4, 4, 0) = 4
		makeCandle(108, 106, 107), // TR = max(2, 6, 4) = 6
		makeCandle(108, 106, 106), // TR = max(2, 1, 1) = 2
	}
	want := (4.0 + 6.0 + 2.0) / 3.0
	if got := ATRFromCandles(candles, 3); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected ATR %v, got %v", want, got)
	}
}

func TestATR_RollingWindow(t *testing.T) {
	// Window must only hold the most recent period true ranges.
	atr := NewATR(2)
	atr.Update(makeCandle(100, 100, 100))
	atr.Update(makeCandle(110, 100, 105)) // TR = 10
	atr.Update(makeCandle(109, 105, 107)) // TR = 4
	atr.Update(makeCandle(108, 106, 107)) // TR = 2
	if !atr.Ready() {
		t.Fatal("expected Ready after period+1 candles")
	}
	if got, want := atr.Value(), 3.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected rolling ATR %v, got %v", want, got)
	}
}

func TestATR_NotReadyValue(t *testing.T) {
	atr := NewATR(5)
	atr.Update(makeCandle(110, 100, 105))
	atr.Update(makeCandle(112, 104, 108))
	if atr.Ready() {
		t.Error("expected not Ready with only 2 candles for period 5")
	}
	if got := atr.Value(); got != 0 {
		t.Errorf("expected 0 before Ready, got %v", got)
	}
}

func TestATR_Reset(t *testing.T) {
	atr := NewATR(2)
	for i := 0; i < 5; i++ {
		atr.Update(makeCandle(110, 100, 105))
	}
	atr.Reset()
	if atr.Ready() {
		t.Error("expected not Ready after Reset")
	}
	if got := atr.Value(); got != 0 {
		t.Errorf("expected 0 after Reset, got %v", got)
	}
}

func TestPercentOfPrice(t *testing.T) {
	tests := []struct {
		name       string
		atr        float64
		price      float64
		multiplier float64
		want       float64
	}{
		{"basic", 2, 100, 1, 2},
		{"with multiplier", 2, 100, 1.5, 3},
		{"zero price", 5, 0, 1.5, 0},
		{"negative price", 5, -10, 1.5, 0},
		{"zero atr", 0, 100, 1.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentOfPrice(tt.atr, tt.price, tt.multiplier)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PercentOfPrice(%v, %v, %v) = %v, want %v", tt.atr, tt.price, tt.multiplier, got, tt.want)
			}
		})
	}
}

func TestPercentOfPrice_Pure(t *testing.T) {
	a := PercentOfPrice(3.7, 142.5, 0.5)
	b := PercentOfPrice(3.7, 142.5, 0.5)
	if a != b {
		t.Errorf("expected identical outputs for identical inputs, got %v and %v", a, b)
	}
}
