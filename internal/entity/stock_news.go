package entity

import (
	"time"

	"github.com/lib/pq"
)

// StockNews is a news article fetched from an RSS feed and tagged with the
// watchlist symbols it mentions.
type StockNews struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Link           string         `gorm:"unique;not null" json:"link"`
	Source         string         `json:"source"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	RawContent     string         `json:"raw_content"`
	HashIdentifier string         `gorm:"unique;not null" json:"hash_identifier"`
	Symbols        pq.StringArray `gorm:"type:text[]" json:"symbols"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockNews) TableName() string {
	return "stock_news"
}
