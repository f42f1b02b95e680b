package analysis

import (
	"fmt"
	"math"

	"stocksage/internal/market"
)

// Trading signals.
const (
	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
)

// MinSignalBars is the minimum series length for a meaningful signal.
const MinSignalBars = 30

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	signalThreshold = 2.0
	maxConfidence   = 95.0
)

// SignalResult is the weighted indicator vote for a symbol.
type SignalResult struct {
	Signal     string   `json:"signal"`
	Confidence float64  `json:"confidence"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons"`
}

// GenerateSignal combines the indicator votes into BUY/SELL/HOLD with a 0-100
// confidence. Each indicator contributes a weighted bullish or bearish vote;
// the net score decides the signal.
func GenerateSignal(indicators Indicators, bars []market.OHLCV) SignalResult {
	if len(bars) < MinSignalBars {
		return SignalResult{
			Signal:  SignalHold,
			Reasons: []string{fmt.Sprintf("insufficient data: %d bars", len(bars))},
		}
	}

	price := bars[len(bars)-1].Close
	var score float64
	var reasons []string

	switch {
	case indicators.RSI < rsiOversold:
		score += 1.5
		reasons = append(reasons, fmt.Sprintf("RSI oversold (%.1f)", indicators.RSI))
	case indicators.RSI > rsiOverbought:
		score -= 1.5
		reasons = append(reasons, fmt.Sprintf("RSI overbought (%.1f)", indicators.RSI))
	}

	if indicators.MACD > indicators.MACDSignal {
		score += 1.0
		reasons = append(reasons, "MACD above signal line")
	} else if indicators.MACD < indicators.MACDSignal {
		score -= 1.0
		reasons = append(reasons, "MACD below signal line")
	}

	if indicators.EMA9 > indicators.EMA21 {
		score += 1.0
		reasons = append(reasons, "EMA9 above EMA21")
	} else if indicators.EMA9 < indicators.EMA21 {
		score -= 1.0
		reasons = append(reasons, "EMA9 below EMA21")
	}

	if price > indicators.SMA50 {
		score += 0.5
		reasons = append(reasons, "price above SMA50")
	} else if price < indicators.SMA50 {
		score -= 0.5
		reasons = append(reasons, "price below SMA50")
	}

	if price > indicators.SMA200 {
		score += 0.5
		reasons = append(reasons, "price above SMA200")
	} else if price < indicators.SMA200 {
		score -= 0.5
		reasons = append(reasons, "price below SMA200")
	}

	if price < indicators.BBLower {
		score += 1.0
		reasons = append(reasons, "price below lower Bollinger band")
	} else if price > indicators.BBUpper {
		score -= 1.0
		reasons = append(reasons, "price above upper Bollinger band")
	}

	signal := SignalHold
	if score >= signalThreshold {
		signal = SignalBuy
	} else if score <= -signalThreshold {
		signal = SignalSell
	}

	confidence := math.Min(50+10*math.Abs(score), maxConfidence)

	return SignalResult{
		Signal:     signal,
		Confidence: confidence,
		Score:      score,
		Reasons:    reasons,
	}
}
