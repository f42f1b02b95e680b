package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksage/internal/market"
)

func floatPtr(v float64) *float64 { return &v }

func TestScoreRatio(t *testing.T) {
	tests := []struct {
		name           string
		value          float64
		avg            float64
		higherIsBetter bool
		want           float64
	}{
		{"matching the average is neutral (higher is better)", 0.14, 0.14, true, 5},
		{"matching the average is neutral (lower is better)", 18, 18, false, 5},
		{"double the average ROE scores double", 0.28, 0.14, true, 10},
		{"half the average P/E scores double", 9, 18, false, 10},
		{"far above average P/E scores near zero", 180, 18, false, 0.5},
		{"negative earnings score zero", -5, 18, false, 0},
		{"huge outperformance clamps at ten", 1.4, 0.14, true, 10},
		{"zero industry average is neutral", 3, 0, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreRatio(tt.value, tt.avg, tt.higherIsBetter)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAnalyzeFundamentals(t *testing.T) {
	t.Run("nil info returns nil", func(t *testing.T) {
		assert.Nil(t, AnalyzeFundamentals(nil))
	})

	t.Run("no ratios at all returns nil", func(t *testing.T) {
		assert.Nil(t, AnalyzeFundamentals(&market.StockInfo{Symbol: "EMPTY", Sector: "Technology"}))
	})

	t.Run("missing ratios are skipped not scored", func(t *testing.T) {
		info := &market.StockInfo{
			Symbol:  "PARTIAL",
			Sector:  "Technology",
			PERatio: floatPtr(28),
			ROE:     floatPtr(0.20),
		}

		result := AnalyzeFundamentals(info)
		require.NotNil(t, result)

		require.Len(t, result.Ratios, 2)
		assert.Equal(t, "P/E Ratio", result.Ratios[0].Name)
		assert.Equal(t, "ROE", result.Ratios[1].Name)
		// Both exactly at the average, so the composite stays neutral.
		assert.InDelta(t, 5.0, result.Score, 1e-9)
		assert.Equal(t, RatingFair, result.Rating)
	})

	t.Run("strong stock rates Strong", func(t *testing.T) {
		info := &market.StockInfo{
			Symbol:        "GOODCO",
			Sector:        "Technology",
			PERatio:       floatPtr(14),  // half the sector average
			PBRatio:       floatPtr(3.2), // roughly half
			ROE:           floatPtr(0.40),
			ProfitMargin:  floatPtr(0.36),
			RevenueGrowth: floatPtr(0.25),
		}

		result := AnalyzeFundamentals(info)
		require.NotNil(t, result)

		assert.GreaterOrEqual(t, result.Score, 7.5)
		assert.Equal(t, RatingStrong, result.Rating)
		assert.Contains(t, result.Strengths, "ROE")
		assert.Empty(t, result.Weaknesses)
	})

	t.Run("weak stock rates Weak and lists weaknesses", func(t *testing.T) {
		info := &market.StockInfo{
			Symbol:       "BADCO",
			Sector:       "Technology",
			PERatio:      floatPtr(-3), // losing money
			ROE:          floatPtr(0.02),
			ProfitMargin: floatPtr(0.01),
		}

		result := AnalyzeFundamentals(info)
		require.NotNil(t, result)

		assert.Less(t, result.Score, 3.5)
		assert.Equal(t, RatingWeak, result.Rating)
		assert.Contains(t, result.Weaknesses, "P/E Ratio")
		assert.Contains(t, result.Weaknesses, "ROE")
		assert.Empty(t, result.Strengths)
	})

	t.Run("unknown sector falls back to default averages", func(t *testing.T) {
		info := &market.StockInfo{
			Symbol:  "ODD",
			Sector:  "Basic Materials",
			PERatio: floatPtr(18), // default-row average
		}

		result := AnalyzeFundamentals(info)
		require.NotNil(t, result)

		require.Len(t, result.Ratios, 1)
		assert.InDelta(t, 18.0, result.Ratios[0].IndustryAvg, 1e-9)
		assert.InDelta(t, 5.0, result.Ratios[0].Score, 1e-9)
	})
}
