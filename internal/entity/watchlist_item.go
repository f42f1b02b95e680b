package entity

import "time"

// WatchlistItem is a symbol the user tracks. The worker refreshes analyses for
// every watchlist entry on a schedule.
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_watchlist_symbol_exchange" json:"symbol"`
	Exchange  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_watchlist_symbol_exchange" json:"exchange"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
