package dto

import (
	"time"

	"stocksage/internal/analysis"
	"stocksage/internal/market"
)

// ChartResponse is the OHLCV history plus the per-bar indicator series the
// frontend overlays on the chart.
type ChartResponse struct {
	Symbol     string                    `json:"symbol"`
	Exchange   string                    `json:"exchange"`
	Currency   string                    `json:"currency"`
	Interval   string                    `json:"interval"`
	Range      string                    `json:"range"`
	OHLCV      []market.OHLCV            `json:"ohlcv"`
	Indicators *analysis.IndicatorSeries `json:"indicators,omitempty"`
}

// SearchResponse wraps the symbol suggestions for a query.
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []market.SearchResult `json:"results"`
}

// NewsItemResponse is one news article linked to a symbol.
type NewsItemResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Symbols     []string   `json:"symbols"`
}
