package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSignal(t *testing.T) {
	t.Run("too few bars holds with zero confidence", func(t *testing.T) {
		bars := generateBars(10, func(i int) float64 { return 100 })

		result := GenerateSignal(Indicators{RSI: 20}, bars)

		assert.Equal(t, SignalHold, result.Signal)
		assert.Zero(t, result.Confidence)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "insufficient data")
	})

	t.Run("everything bullish is a buy", func(t *testing.T) {
		bars := generateBars(60, func(i int) float64 { return 100 })
		indicators := Indicators{
			RSI:        25,  // oversold +1.5
			MACD:       1.0, // above signal +1.0
			MACDSignal: 0.5,
			EMA9:       102, // above EMA21 +1.0
			EMA21:      101,
			SMA50:      95,  // price above +0.5
			SMA200:     90,  // price above +0.5
			BBLower:    105, // price below lower band +1.0
			BBUpper:    115,
		}

		result := GenerateSignal(indicators, bars)

		assert.Equal(t, SignalBuy, result.Signal)
		assert.InDelta(t, 5.5, result.Score, 1e-9)
		// Confidence caps at 95 even though 50+10*5.5 would exceed it.
		assert.InDelta(t, 95.0, result.Confidence, 1e-9)
		assert.Contains(t, result.Reasons, "MACD above signal line")
		assert.Contains(t, result.Reasons, "price below lower Bollinger band")
	})

	t.Run("everything bearish is a sell", func(t *testing.T) {
		bars := generateBars(60, func(i int) float64 { return 100 })
		indicators := Indicators{
			RSI:        80, // overbought -1.5
			MACD:       -1.0,
			MACDSignal: 0.5,
			EMA9:       98,
			EMA21:      101,
			SMA50:      110,
			SMA200:     120,
			BBLower:    80,
			BBUpper:    95, // price above upper band -1.0
		}

		result := GenerateSignal(indicators, bars)

		assert.Equal(t, SignalSell, result.Signal)
		assert.InDelta(t, -5.5, result.Score, 1e-9)
		assert.InDelta(t, 95.0, result.Confidence, 1e-9)
	})

	t.Run("mixed votes below threshold hold", func(t *testing.T) {
		bars := generateBars(60, func(i int) float64 { return 100 })
		indicators := Indicators{
			RSI:        50,  // neutral
			MACD:       1.0, // +1.0
			MACDSignal: 0.5,
			EMA9:       98, // -1.0
			EMA21:      101,
			SMA50:      95,  // +0.5
			SMA200:     110, // -0.5
			BBLower:    80,  // inside band, no vote
			BBUpper:    120,
		}

		result := GenerateSignal(indicators, bars)

		assert.Equal(t, SignalHold, result.Signal)
		assert.InDelta(t, 0.0, result.Score, 1e-9)
		assert.InDelta(t, 50.0, result.Confidence, 1e-9)
	})

	t.Run("score at the threshold is a buy", func(t *testing.T) {
		bars := generateBars(60, func(i int) float64 { return 100 })
		indicators := Indicators{
			RSI:        50,
			MACD:       1.0, // +1.0
			MACDSignal: 0.5,
			EMA9:       102, // +1.0
			EMA21:      101,
			SMA50:      100, // equal, no vote
			SMA200:     100,
			BBLower:    80,
			BBUpper:    120,
		}

		result := GenerateSignal(indicators, bars)

		assert.Equal(t, SignalBuy, result.Signal)
		assert.InDelta(t, 2.0, result.Score, 1e-9)
		assert.InDelta(t, 70.0, result.Confidence, 1e-9)
	})
}
