package analysis

import (
	"math"

	"stocksage/internal/market"
)

// Indicator parameters, matching the dashboard's overlay set.
const (
	RSIPeriod        = 14
	EMAShortPeriod   = 9
	EMALongPeriod    = 21
	SMAMidPeriod     = 50
	SMALongPeriod    = 200
	BollingerPeriod  = 20
	BollingerStdDev  = 2.0
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// Indicators holds the latest value of each technical indicator.
type Indicators struct {
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	EMA9          float64 `json:"ema_9"`
	EMA21         float64 `json:"ema_21"`
	SMA50         float64 `json:"sma_50"`
	SMA200        float64 `json:"sma_200"`
	BBUpper       float64 `json:"bb_upper"`
	BBMiddle      float64 `json:"bb_middle"`
	BBLower       float64 `json:"bb_lower"`
}

// Series is a per-bar indicator series. Offset is the index of the first bar
// the series covers, so charts can align values without NaN padding.
type Series struct {
	Offset int       `json:"offset"`
	Values []float64 `json:"values"`
}

// IndicatorSeries holds the chart overlay series for each indicator.
type IndicatorSeries struct {
	RSI      Series `json:"rsi"`
	MACD     Series `json:"macd"`
	EMA9     Series `json:"ema_9"`
	EMA21    Series `json:"ema_21"`
	SMA50    Series `json:"sma_50"`
	SMA200   Series `json:"sma_200"`
	BBUpper  Series `json:"bb_upper"`
	BBMiddle Series `json:"bb_middle"`
	BBLower  Series `json:"bb_lower"`
}

// CalculateIndicators computes the latest value of every indicator over the
// given bars (oldest first).
func CalculateIndicators(bars []market.OHLCV) Indicators {
	closes := closePrices(bars)

	macdLine, macdSignal, macdHistogram := MACD(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	bbUpper, bbMiddle, bbLower := Bollinger(closes, BollingerPeriod, BollingerStdDev)

	return Indicators{
		RSI:           RSI(closes, RSIPeriod),
		MACD:          macdLine,
		MACDSignal:    macdSignal,
		MACDHistogram: macdHistogram,
		EMA9:          EMA(closes, EMAShortPeriod),
		EMA21:         EMA(closes, EMALongPeriod),
		SMA50:         SMA(closes, SMAMidPeriod),
		SMA200:        SMA(closes, SMALongPeriod),
		BBUpper:       bbUpper,
		BBMiddle:      bbMiddle,
		BBLower:       bbLower,
	}
}

// CalculateIndicatorSeries computes full per-bar overlay series for charting.
func CalculateIndicatorSeries(bars []market.OHLCV) IndicatorSeries {
	closes := closePrices(bars)

	bbUpper, bbMiddle, bbLower := bollingerSeries(closes, BollingerPeriod, BollingerStdDev)

	return IndicatorSeries{
		RSI:      rsiSeries(closes, RSIPeriod),
		MACD:     macdSeries(closes, MACDFastPeriod, MACDSlowPeriod),
		EMA9:     emaSeries(closes, EMAShortPeriod),
		EMA21:    emaSeries(closes, EMALongPeriod),
		SMA50:    smaSeries(closes, SMAMidPeriod),
		SMA200:   smaSeries(closes, SMALongPeriod),
		BBUpper:  bbUpper,
		BBMiddle: bbMiddle,
		BBLower:  bbLower,
	}
}

// RSI computes the relative strength index with Wilder smoothing. Returns a
// neutral 50 when there are not enough prices, and 100 when there are no
// losses in the window.
func RSI(prices []float64, period int) float64 {
	if len(prices) < period+1 {
		return 50.0
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain = (avgGain*float64(period-1) + change) / float64(period)
			avgLoss = (avgLoss * float64(period-1)) / float64(period)
		} else {
			avgGain = (avgGain * float64(period-1)) / float64(period)
			avgLoss = (avgLoss*float64(period-1) - change) / float64(period)
		}
	}

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// EMA computes an exponential moving average seeded with the SMA of the first
// period prices. Returns the last price when the series is too short.
func EMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < period {
		return prices[len(prices)-1]
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
	}

	return ema
}

// SMA computes the mean of the trailing window. Returns the last price when
// the series is too short.
func SMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < period {
		return prices[len(prices)-1]
	}

	var sum float64
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// MACD computes the MACD line, its signal line and the histogram. All three
// are zero when there are fewer than slow+signal prices.
func MACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (float64, float64, float64) {
	if len(prices) < slowPeriod+signalPeriod {
		return 0, 0, 0
	}

	macdLine := EMA(prices, fastPeriod) - EMA(prices, slowPeriod)

	macdHistory := make([]float64, 0, len(prices)-slowPeriod+1)
	for i := slowPeriod - 1; i < len(prices); i++ {
		window := prices[:i+1]
		macdHistory = append(macdHistory, EMA(window, fastPeriod)-EMA(window, slowPeriod))
	}

	signalLine := EMA(macdHistory, signalPeriod)
	return macdLine, signalLine, macdLine - signalLine
}

// Bollinger computes the upper, middle and lower bands. All three collapse to
// the last price when the series is shorter than the period.
func Bollinger(prices []float64, period int, stdDev float64) (float64, float64, float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	if len(prices) < period {
		last := prices[len(prices)-1]
		return last, last, last
	}

	var sum float64
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	middle := sum / float64(period)

	var variance float64
	for i := len(prices) - period; i < len(prices); i++ {
		variance += math.Pow(prices[i]-middle, 2)
	}
	sd := math.Sqrt(variance / float64(period))

	return middle + sd*stdDev, middle, middle - sd*stdDev
}

func closePrices(bars []market.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}

func rsiSeries(prices []float64, period int) Series {
	if len(prices) < period+1 {
		return Series{}
	}
	values := make([]float64, 0, len(prices)-period)
	for i := period; i < len(prices); i++ {
		values = append(values, RSI(prices[:i+1], period))
	}
	return Series{Offset: period, Values: values}
}

func emaSeries(prices []float64, period int) Series {
	if len(prices) < period {
		return Series{}
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	multiplier := 2.0 / float64(period+1)

	values := make([]float64, 0, len(prices)-period+1)
	values = append(values, ema)
	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		values = append(values, ema)
	}
	return Series{Offset: period - 1, Values: values}
}

func smaSeries(prices []float64, period int) Series {
	if len(prices) < period {
		return Series{}
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}

	values := make([]float64, 0, len(prices)-period+1)
	values = append(values, sum/float64(period))
	for i := period; i < len(prices); i++ {
		sum += prices[i] - prices[i-period]
		values = append(values, sum/float64(period))
	}
	return Series{Offset: period - 1, Values: values}
}

func macdSeries(prices []float64, fastPeriod, slowPeriod int) Series {
	if len(prices) < slowPeriod {
		return Series{}
	}
	values := make([]float64, 0, len(prices)-slowPeriod+1)
	for i := slowPeriod - 1; i < len(prices); i++ {
		window := prices[:i+1]
		values = append(values, EMA(window, fastPeriod)-EMA(window, slowPeriod))
	}
	return Series{Offset: slowPeriod - 1, Values: values}
}

func bollingerSeries(prices []float64, period int, stdDev float64) (Series, Series, Series) {
	if len(prices) < period {
		return Series{}, Series{}, Series{}
	}

	n := len(prices) - period + 1
	upper := make([]float64, 0, n)
	middle := make([]float64, 0, n)
	lower := make([]float64, 0, n)

	for i := period - 1; i < len(prices); i++ {
		u, m, l := Bollinger(prices[:i+1], period, stdDev)
		upper = append(upper, u)
		middle = append(middle, m)
		lower = append(lower, l)
	}

	offset := period - 1
	return Series{Offset: offset, Values: upper},
		Series{Offset: offset, Values: middle},
		Series{Offset: offset, Values: lower}
}
