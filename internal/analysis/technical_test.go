package analysis

import (
	"math"
	"testing"

	"stocksage/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateBars(n int, close func(i int) float64) []market.OHLCV {
	bars := make([]market.OHLCV, n)
	for i := 0; i < n; i++ {
		c := close(i)
		bars[i] = market.OHLCV{
			Timestamp: int64(1700000000 + i*86400),
			Open:      c - 0.5,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    int64(1000 + i*10),
		}
	}
	return bars
}

func TestCalculateRSI(t *testing.T) {
	tests := []struct {
		name   string
		closes func(i int) float64
		n      int
		check  func(t *testing.T, rsi float64)
	}{
		{
			name:   "all gains pins RSI high",
			closes: func(i int) float64 { return 100 + float64(i) },
			n:      50,
			check: func(t *testing.T, rsi float64) {
				assert.Greater(t, rsi, 90.0)
			},
		},
		{
			name:   "all losses pins RSI low",
			closes: func(i int) float64 { return 200 - float64(i) },
			n:      50,
			check: func(t *testing.T, rsi float64) {
				assert.Less(t, rsi, 10.0)
			},
		},
		{
			name:   "balanced oscillation is neutral",
			closes: func(i int) float64 { return 100 + float64(i%2) },
			n:      50,
			check: func(t *testing.T, rsi float64) {
				assert.InDelta(t, 50.0, rsi, 5.0)
			},
		},
		{
			name:   "too few bars falls back to neutral",
			closes: func(i int) float64 { return 100 + float64(i) },
			n:      5,
			check: func(t *testing.T, rsi float64) {
				assert.Equal(t, 50.0, rsi)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closes := make([]float64, tt.n)
			for i := range closes {
				closes[i] = tt.closes(i)
			}
			tt.check(t, RSI(closes, RSIPeriod))
		})
	}
}

func TestCalculateSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.InDelta(t, 8.0, SMA(closes, 5), 1e-9)   // mean of 6..10
	assert.InDelta(t, 5.5, SMA(closes, 10), 1e-9)  // mean of 1..10
	assert.InDelta(t, 10.0, SMA(closes, 20), 1e-9) // short series collapses to last close
}

func TestCalculateEMA(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	ema9 := EMA(closes, 9)
	ema21 := EMA(closes, 21)
	last := closes[len(closes)-1]

	// EMA lags a rising series, and the shorter period lags less.
	assert.Less(t, ema9, last)
	assert.Less(t, ema21, ema9)
	assert.Greater(t, ema9, last-10)
}

func TestCalculateMACD(t *testing.T) {
	rising := make([]float64, 100)
	falling := make([]float64, 100)
	for i := range rising {
		rising[i] = 100 + float64(i)
		falling[i] = 300 - float64(i)
	}

	macdUp, _, _ := MACD(rising, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	macdDown, _, _ := MACD(falling, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)

	assert.Positive(t, macdUp)
	assert.Negative(t, macdDown)
}

func TestCalculateBollinger(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		// Oscillate around 100 so the bands have width.
		closes[i] = 100 + 5*math.Sin(float64(i))
	}

	upper, middle, lower := Bollinger(closes, BollingerPeriod, BollingerStdDev)

	assert.Greater(t, upper, middle)
	assert.Greater(t, middle, lower)
	assert.InDelta(t, 100.0, middle, 5.0)
}

func TestCalculateIndicators(t *testing.T) {
	bars := generateBars(250, func(i int) float64 { return 100 + float64(i)*0.1 })

	ind := CalculateIndicators(bars)

	last := bars[len(bars)-1].Close
	assert.Greater(t, ind.RSI, 50.0)
	assert.Less(t, ind.SMA200, last)
	assert.Less(t, ind.SMA50, last)
	assert.Greater(t, ind.BBUpper, ind.BBLower)
	assert.InDelta(t, ind.MACD-ind.MACDSignal, ind.MACDHistogram, 1e-9)
}

func TestCalculateIndicatorSeries(t *testing.T) {
	bars := generateBars(120, func(i int) float64 { return 100 + float64(i)*0.5 })

	series := CalculateIndicatorSeries(bars)

	require.NotEmpty(t, series.RSI.Values)
	require.NotEmpty(t, series.SMA50.Values)

	// The series plus its offset must line up with the input bars.
	assert.Equal(t, len(bars), series.RSI.Offset+len(series.RSI.Values))
	assert.Equal(t, len(bars), series.SMA50.Offset+len(series.SMA50.Values))
	assert.Equal(t, len(bars), series.BBUpper.Offset+len(series.BBUpper.Values))

	// The final series value matches the scalar calculation.
	ind := CalculateIndicators(bars)
	assert.InDelta(t, ind.RSI, series.RSI.Values[len(series.RSI.Values)-1], 1e-9)
	assert.InDelta(t, ind.SMA50, series.SMA50.Values[len(series.SMA50.Values)-1], 1e-9)
}
