package analysis

import (
	"fmt"
	"math"
	"time"

	"stocksage/internal/market"
	"stocksage/pkg/utils"
)

// Trend directions.
const (
	TrendUp       = "uptrend"
	TrendDown     = "downtrend"
	TrendSideways = "sideways"
)

// Regression parameters. The trend windows match the 20/50/100-day views on
// the analysis page; predictions fit the trailing 60 bars and project 30
// business days.
const (
	PredictionFitWindow     = 60
	PredictionHorizonDays   = 30
	PredictionMinBars       = 30
	SupportResistanceWindow = 60
	VolumeTrendWindow       = 50

	// A window counts as sideways below this fitted-change percent or R².
	sidewaysStrengthThreshold = 1.0
	sidewaysRSquaredThreshold = 0.3

	// 95% confidence band multiplier on the residual standard error.
	confidenceZ = 1.96
)

// TrendWindows are the lookback lengths analyzed per request.
var TrendWindows = []int{20, 50, 100}

// TrendWindow is the OLS fit over one lookback window.
type TrendWindow struct {
	Window    int       `json:"window"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	RSquared  float64   `json:"r_squared"`
	Direction string    `json:"direction"`
	Strength  float64   `json:"strength"`
	Fitted    []float64 `json:"fitted"`
}

// PredictionPoint is one projected day with its confidence bounds.
type PredictionPoint struct {
	Date      string  `json:"date"`
	Day       int     `json:"day"`
	Predicted float64 `json:"predicted_price"`
	Upper     float64 `json:"upper_bound"`
	Lower     float64 `json:"lower_bound"`
}

// PricePrediction is the regression projection over the configured horizon.
type PricePrediction struct {
	CurrentPrice       float64           `json:"current_price"`
	PredictedEndPrice  float64           `json:"predicted_end_price"`
	PriceChange        float64           `json:"price_change"`
	PriceChangePercent float64           `json:"price_change_percent"`
	Direction          string            `json:"trend_direction"`
	ModelAccuracy      float64           `json:"model_accuracy"`
	Points             []PredictionPoint `json:"predictions"`
}

// SupportResistance holds the recent extreme levels and the distances from the
// current price.
type SupportResistance struct {
	CurrentPrice         float64 `json:"current_price"`
	SupportLevel         float64 `json:"support_level"`
	ResistanceLevel      float64 `json:"resistance_level"`
	DistanceToSupport    float64 `json:"distance_to_support"`
	DistanceToResistance float64 `json:"distance_to_resistance"`
	NearestLevel         string  `json:"nearest_level"`
}

// VolumePriceTrend relates volume to price movement over the recent window.
type VolumePriceTrend struct {
	Correlation         float64 `json:"volume_price_correlation"`
	VolumeRatio         float64 `json:"volume_ratio"`
	VolumeConfirmsTrend bool    `json:"volume_confirms_trend"`
	ModelAccuracy       float64 `json:"model_accuracy"`
}

// TrendSummary is the R²-weighted vote across all trend windows.
type TrendSummary struct {
	Direction string  `json:"direction"`
	Score     float64 `json:"score"`
	Windows   int     `json:"windows"`
}

// CalculateTrendAnalysis fits each trend window that the series can cover.
// Keys are "20d", "50d", "100d".
func CalculateTrendAnalysis(bars []market.OHLCV) map[string]TrendWindow {
	closes := closePrices(bars)
	result := make(map[string]TrendWindow)

	for _, window := range TrendWindows {
		if len(closes) < window {
			continue
		}
		recent := closes[len(closes)-window:]
		slope, intercept := linearFit(recent)
		r2 := rSquared(recent, slope, intercept)

		fitted := make([]float64, window)
		for i := range fitted {
			fitted[i] = intercept + slope*float64(i)
		}

		mean := meanOf(recent)
		strength := 0.0
		if mean != 0 {
			strength = math.Abs(slope*float64(window-1)) / mean * 100
		}

		direction := TrendSideways
		if strength >= sidewaysStrengthThreshold && r2 >= sidewaysRSquaredThreshold {
			if slope > 0 {
				direction = TrendUp
			} else {
				direction = TrendDown
			}
		}

		result[fmt.Sprintf("%dd", window)] = TrendWindow{
			Window:    window,
			Slope:     slope,
			Intercept: intercept,
			RSquared:  r2,
			Direction: direction,
			Strength:  strength,
			Fitted:    fitted,
		}
	}

	return result
}

// PredictFuturePrices fits the trailing bars and projects the horizon in
// business days. Returns nil when fewer than PredictionMinBars bars exist.
func PredictFuturePrices(bars []market.OHLCV) *PricePrediction {
	closes := closePrices(bars)
	if len(closes) < PredictionMinBars {
		return nil
	}

	fitWindow := PredictionFitWindow
	if len(closes) < fitWindow {
		fitWindow = len(closes)
	}
	recent := closes[len(closes)-fitWindow:]

	slope, intercept := linearFit(recent)
	r2 := rSquared(recent, slope, intercept)
	stderr := residualStdError(recent, slope, intercept)

	lastBar := bars[len(bars)-1]
	date := time.Unix(lastBar.Timestamp, 0).UTC()

	points := make([]PredictionPoint, 0, PredictionHorizonDays)
	for day := 1; day <= PredictionHorizonDays; day++ {
		date = utils.NextBusinessDay(date)
		predicted := intercept + slope*float64(fitWindow-1+day)
		points = append(points, PredictionPoint{
			Date:      date.Format("2006-01-02"),
			Day:       day,
			Predicted: predicted,
			Upper:     predicted + confidenceZ*stderr,
			Lower:     predicted - confidenceZ*stderr,
		})
	}

	current := closes[len(closes)-1]
	end := points[len(points)-1].Predicted
	change := end - current
	changePercent := 0.0
	if current != 0 {
		changePercent = change / current * 100
	}

	direction := TrendSideways
	if slope > 0 {
		direction = TrendUp
	} else if slope < 0 {
		direction = TrendDown
	}

	return &PricePrediction{
		CurrentPrice:       current,
		PredictedEndPrice:  end,
		PriceChange:        change,
		PriceChangePercent: changePercent,
		Direction:          direction,
		ModelAccuracy:      r2,
		Points:             points,
	}
}

// CalculateSupportResistance derives support and resistance from the extremes
// of the trailing window.
func CalculateSupportResistance(bars []market.OHLCV) *SupportResistance {
	if len(bars) == 0 {
		return nil
	}

	window := SupportResistanceWindow
	if len(bars) < window {
		window = len(bars)
	}
	recent := bars[len(bars)-window:]

	resistance := recent[0].High
	support := recent[0].Low
	for _, bar := range recent[1:] {
		if bar.High > resistance {
			resistance = bar.High
		}
		if bar.Low < support {
			support = bar.Low
		}
	}

	current := bars[len(bars)-1].Close
	toResistance := resistance - current
	toSupport := current - support

	nearest := "support"
	if toResistance < toSupport {
		nearest = "resistance"
	}

	return &SupportResistance{
		CurrentPrice:         current,
		SupportLevel:         support,
		ResistanceLevel:      resistance,
		DistanceToSupport:    toSupport,
		DistanceToResistance: toResistance,
		NearestLevel:         nearest,
	}
}

// CalculateVolumePriceTrend correlates daily price change with volume over the
// trailing window. Returns nil when fewer than three bars exist.
func CalculateVolumePriceTrend(bars []market.OHLCV) *VolumePriceTrend {
	if len(bars) < 3 {
		return nil
	}

	window := VolumeTrendWindow
	if len(bars) < window {
		window = len(bars)
	}
	recent := bars[len(bars)-window:]

	changes := make([]float64, 0, len(recent)-1)
	volumes := make([]float64, 0, len(recent)-1)
	for i := 1; i < len(recent); i++ {
		if recent[i-1].Close == 0 {
			continue
		}
		changes = append(changes, (recent[i].Close-recent[i-1].Close)/recent[i-1].Close*100)
		volumes = append(volumes, float64(recent[i].Volume))
	}
	if len(changes) < 2 {
		return nil
	}

	correlation := pearson(changes, volumes)

	absChanges := make([]float64, len(changes))
	for i, c := range changes {
		absChanges[i] = math.Abs(c)
	}
	accuracy := math.Pow(pearson(absChanges, volumes), 2)

	shortAvg := trailingMean(volumes, 5)
	longAvg := trailingMean(volumes, 20)
	ratio := 0.0
	if longAvg != 0 {
		ratio = shortAvg / longAvg
	}

	// Expanding volume confirms whichever way price is heading.
	confirms := ratio > 1

	return &VolumePriceTrend{
		Correlation:         correlation,
		VolumeRatio:         ratio,
		VolumeConfirmsTrend: confirms,
		ModelAccuracy:       accuracy,
	}
}

// SummarizeTrend reduces the per-window fits to a single direction and a
// 0-100 score, weighting each window's vote by its R².
func SummarizeTrend(windows map[string]TrendWindow) TrendSummary {
	if len(windows) == 0 {
		return TrendSummary{Direction: TrendSideways, Score: 50}
	}

	var totalWeight, vote float64
	for _, w := range windows {
		weight := w.RSquared
		if weight <= 0 {
			continue
		}
		totalWeight += weight
		switch w.Direction {
		case TrendUp:
			vote += weight
		case TrendDown:
			vote -= weight
		}
	}

	score := 50.0
	if totalWeight > 0 {
		score = 50 + 50*vote/totalWeight
	}

	direction := TrendSideways
	if score >= 60 {
		direction = TrendUp
	} else if score <= 40 {
		direction = TrendDown
	}

	return TrendSummary{Direction: direction, Score: score, Windows: len(windows)}
}

// linearFit returns the OLS slope and intercept of y against its index.
func linearFit(y []float64) (float64, float64) {
	n := float64(len(y))
	if n < 2 {
		if n == 1 {
			return 0, y[0]
		}
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return slope, intercept
}

func rSquared(y []float64, slope, intercept float64) float64 {
	if len(y) < 2 {
		return 0
	}
	mean := meanOf(y)

	var ssRes, ssTot float64
	for i, v := range y {
		fitted := intercept + slope*float64(i)
		ssRes += (v - fitted) * (v - fitted)
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func residualStdError(y []float64, slope, intercept float64) float64 {
	if len(y) <= 2 {
		return 0
	}
	var ssRes float64
	for i, v := range y {
		fitted := intercept + slope*float64(i)
		ssRes += (v - fitted) * (v - fitted)
	}
	return math.Sqrt(ssRes / float64(len(y)-2))
}

func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	meanX := meanOf(x)
	meanY := meanOf(y)

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func trailingMean(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if n > len(values) {
		n = len(values)
	}
	var sum float64
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n)
}
