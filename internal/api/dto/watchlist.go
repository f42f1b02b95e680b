package dto

import "time"

// CreateWatchlistItemRequest adds a symbol to the watchlist.
type CreateWatchlistItemRequest struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
}

// WatchlistItemResponse is one watchlist entry, optionally joined with the
// latest analysis snapshot for the symbol.
type WatchlistItemResponse struct {
	ID             uint       `json:"id"`
	Symbol         string     `json:"symbol"`
	Exchange       string     `json:"exchange"`
	LastPrice      *float64   `json:"last_price,omitempty"`
	LastSignal     *string    `json:"last_signal,omitempty"`
	LastConfidence *float64   `json:"last_confidence,omitempty"`
	LastAnalyzedAt *time.Time `json:"last_analyzed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
