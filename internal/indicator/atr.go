// Package indicator provides volatility calculations over candle data.
//
// ATR (Average True Range) is exposed both as a streaming indicator fed one
// candle at a time and as a one-shot calculation over a complete series.
package indicator

import (
	"math"

	"atr-scanner/internal/model"
)

// TrueRange returns the largest of the three candle-to-candle price spans:
// high-low, |high-prevClose|, |low-prevClose|. Captures gaps as well as
// intrabar range.
func TrueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if v := math.Abs(high - prevClose); v > tr {
		tr = v
	}
	if v := math.Abs(low - prevClose); v > tr {
		tr = v
	}
	return tr
}

// ATR calculates Average True Range as a simple moving average of true range
// over a rolling window. Uses a preallocated circular buffer for the window.
type ATR struct {
	period    int
	buf       []float64 // circular buffer of true-range values
	idx       int       // current write position
	count     int       // true-range values received
	sum       float64
	prevClose float64
	primed    bool // first candle seen, prevClose valid
}

// NewATR creates a new ATR indicator with the given period.
func NewATR(period int) *ATR {
	return &ATR{
		period: period,
		buf:    make([]float64, period),
	}
}

func (a *ATR) Name() string { return "ATR" }

// Update feeds the next candle. The first candle only primes the previous
// close; every later candle contributes one true-range value to the window.
func (a *ATR) Update(candle model.Candle) {
	if !a.primed {
		a.primed = true
		a.prevClose = candle.Close
		return
	}

	tr := TrueRange(candle.High, candle.Low, a.prevClose)
	a.prevClose = candle.Close

	if a.count >= a.period {
		a.sum -= a.buf[a.idx]
	}
	a.buf[a.idx] = tr
	a.sum += tr
	a.idx = (a.idx + 1) % a.period
	a.count++
}

// Value returns the current ATR, or 0 until enough candles have been fed.
func (a *ATR) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.sum / float64(a.period)
}

// Ready reports whether a full window of true ranges has accumulated,
// which requires period+1 candles.
func (a *ATR) Ready() bool { return a.count >= a.period }

// Reset clears the ATR state for reuse.
func (a *ATR) Reset() {
	a.idx = 0
	a.count = 0
	a.sum = 0
	a.prevClose = 0
	a.primed = false
	for i := range a.buf {
		a.buf[i] = 0
	}
}

// ATRFromCandles computes ATR over the most recent period true ranges of a
// chronological series. Fails soft: returns 0.0 when the series is shorter
// than period+1 candles or the period is not positive.
func ATRFromCandles(candles []model.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}
	atr := NewATR(period)
	for _, c := range candles {
		atr.Update(c)
	}
	return atr.Value()
}

// PercentOfPrice normalizes an ATR value to a percentage of the current
// price, scaled by the multiplier. Returns 0.0 for non-positive prices.
func PercentOfPrice(atrValue, currentPrice, multiplier float64) float64 {
	if currentPrice <= 0 {
		return 0
	}
	return (atrValue * multiplier / currentPrice) * 100
}
