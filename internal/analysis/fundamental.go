package analysis

import (
	"stocksage/internal/market"
)

// Fundamental ratings by composite score.
const (
	RatingStrong = "Strong"
	RatingGood   = "Good"
	RatingFair   = "Fair"
	RatingWeak   = "Weak"
)

// IndustryAverages holds the reference ratio levels a stock is scored against.
type IndustryAverages struct {
	PERatio       float64
	PBRatio       float64
	PSRatio       float64
	ROE           float64
	DebtToEquity  float64
	CurrentRatio  float64
	ProfitMargin  float64
	RevenueGrowth float64
	DividendYield float64
}

// industryAverages is a static reference table keyed by Yahoo sector name.
// Sectors without an entry fall back to the default row.
var industryAverages = map[string]IndustryAverages{
	"Technology": {
		PERatio: 28, PBRatio: 6.5, PSRatio: 6.0, ROE: 0.20,
		DebtToEquity: 60, CurrentRatio: 1.8, ProfitMargin: 0.18,
		RevenueGrowth: 0.12, DividendYield: 0.008,
	},
	"Financial Services": {
		PERatio: 13, PBRatio: 1.3, PSRatio: 3.0, ROE: 0.12,
		DebtToEquity: 150, CurrentRatio: 1.1, ProfitMargin: 0.22,
		RevenueGrowth: 0.07, DividendYield: 0.03,
	},
	"Healthcare": {
		PERatio: 22, PBRatio: 4.0, PSRatio: 4.5, ROE: 0.15,
		DebtToEquity: 70, CurrentRatio: 1.5, ProfitMargin: 0.12,
		RevenueGrowth: 0.09, DividendYield: 0.015,
	},
	"Consumer Cyclical": {
		PERatio: 20, PBRatio: 3.5, PSRatio: 1.5, ROE: 0.16,
		DebtToEquity: 90, CurrentRatio: 1.3, ProfitMargin: 0.08,
		RevenueGrowth: 0.08, DividendYield: 0.015,
	},
	"Consumer Defensive": {
		PERatio: 21, PBRatio: 3.8, PSRatio: 1.4, ROE: 0.18,
		DebtToEquity: 80, CurrentRatio: 1.2, ProfitMargin: 0.07,
		RevenueGrowth: 0.05, DividendYield: 0.025,
	},
	"Energy": {
		PERatio: 12, PBRatio: 1.6, PSRatio: 1.2, ROE: 0.11,
		DebtToEquity: 50, CurrentRatio: 1.2, ProfitMargin: 0.09,
		RevenueGrowth: 0.05, DividendYield: 0.04,
	},
	"Industrials": {
		PERatio: 19, PBRatio: 3.0, PSRatio: 1.8, ROE: 0.14,
		DebtToEquity: 85, CurrentRatio: 1.4, ProfitMargin: 0.09,
		RevenueGrowth: 0.07, DividendYield: 0.018,
	},
	"Utilities": {
		PERatio: 17, PBRatio: 1.9, PSRatio: 2.3, ROE: 0.10,
		DebtToEquity: 130, CurrentRatio: 0.9, ProfitMargin: 0.11,
		RevenueGrowth: 0.04, DividendYield: 0.035,
	},
}

var defaultIndustryAverages = IndustryAverages{
	PERatio: 18, PBRatio: 2.5, PSRatio: 2.0, ROE: 0.14,
	DebtToEquity: 90, CurrentRatio: 1.3, ProfitMargin: 0.10,
	RevenueGrowth: 0.07, DividendYield: 0.02,
}

// RatioScore is one scored ratio within a fundamental analysis.
type RatioScore struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	IndustryAvg float64 `json:"industry_avg"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
}

// FundamentalAnalysis is the scored ratio set for a symbol.
type FundamentalAnalysis struct {
	Symbol     string       `json:"symbol"`
	Sector     string       `json:"sector"`
	Ratios     []RatioScore `json:"ratios"`
	Score      float64      `json:"score"`
	Rating     string       `json:"rating"`
	Strengths  []string     `json:"strengths"`
	Weaknesses []string     `json:"weaknesses"`
}

// ratioSpec describes how one ratio is scored. Lower-is-better ratios score
// avg/value, higher-is-better ratios score value/avg, both scaled to 0-10.
type ratioSpec struct {
	name           string
	weight         float64
	higherIsBetter bool
	value          func(*market.StockInfo) *float64
	industryAvg    func(IndustryAverages) float64
}

var ratioSpecs = []ratioSpec{
	{"P/E Ratio", 1.5, false, func(i *market.StockInfo) *float64 { return i.PERatio }, func(a IndustryAverages) float64 { return a.PERatio }},
	{"P/B Ratio", 1.0, false, func(i *market.StockInfo) *float64 { return i.PBRatio }, func(a IndustryAverages) float64 { return a.PBRatio }},
	{"P/S Ratio", 1.0, false, func(i *market.StockInfo) *float64 { return i.PSRatio }, func(a IndustryAverages) float64 { return a.PSRatio }},
	{"ROE", 1.5, true, func(i *market.StockInfo) *float64 { return i.ROE }, func(a IndustryAverages) float64 { return a.ROE }},
	{"Debt/Equity", 1.0, false, func(i *market.StockInfo) *float64 { return i.DebtToEquity }, func(a IndustryAverages) float64 { return a.DebtToEquity }},
	{"Current Ratio", 0.75, true, func(i *market.StockInfo) *float64 { return i.CurrentRatio }, func(a IndustryAverages) float64 { return a.CurrentRatio }},
	{"Profit Margin", 1.25, true, func(i *market.StockInfo) *float64 { return i.ProfitMargin }, func(a IndustryAverages) float64 { return a.ProfitMargin }},
	{"Revenue Growth", 1.0, true, func(i *market.StockInfo) *float64 { return i.RevenueGrowth }, func(a IndustryAverages) float64 { return a.RevenueGrowth }},
	{"Dividend Yield", 0.5, true, func(i *market.StockInfo) *float64 { return i.DividendYield }, func(a IndustryAverages) float64 { return a.DividendYield }},
}

// AnalyzeFundamentals scores the available ratios against the sector's
// industry averages. Missing ratios are skipped, not scored as zero. Returns
// nil when no ratio is available at all.
func AnalyzeFundamentals(info *market.StockInfo) *FundamentalAnalysis {
	if info == nil {
		return nil
	}

	averages, ok := industryAverages[info.Sector]
	if !ok {
		averages = defaultIndustryAverages
	}

	result := &FundamentalAnalysis{
		Symbol: info.Symbol,
		Sector: info.Sector,
	}

	var weightedSum, totalWeight float64
	for _, spec := range ratioSpecs {
		valuePtr := spec.value(info)
		if valuePtr == nil {
			continue
		}
		value := *valuePtr
		avg := spec.industryAvg(averages)

		score := scoreRatio(value, avg, spec.higherIsBetter)
		result.Ratios = append(result.Ratios, RatioScore{
			Name:        spec.name,
			Value:       value,
			IndustryAvg: avg,
			Score:       score,
			Weight:      spec.weight,
		})

		weightedSum += score * spec.weight
		totalWeight += spec.weight

		if score >= 5 {
			result.Strengths = append(result.Strengths, spec.name)
		} else {
			result.Weaknesses = append(result.Weaknesses, spec.name)
		}
	}

	if totalWeight == 0 {
		return nil
	}

	result.Score = clamp(weightedSum/totalWeight, 0, 10)
	result.Rating = ratingFor(result.Score)
	return result
}

// scoreRatio maps a ratio to 0-10 where matching the industry average is 5.
// Non-positive values of lower-is-better ratios (negative earnings and the
// like) score 0.
func scoreRatio(value, avg float64, higherIsBetter bool) float64 {
	if avg == 0 {
		return 5
	}

	var relative float64
	if higherIsBetter {
		relative = value / avg
	} else {
		if value <= 0 {
			return 0
		}
		relative = avg / value
	}

	return clamp(relative*5, 0, 10)
}

func ratingFor(score float64) string {
	switch {
	case score >= 7.5:
		return RatingStrong
	case score >= 5.5:
		return RatingGood
	case score >= 3.5:
		return RatingFair
	default:
		return RatingWeak
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
