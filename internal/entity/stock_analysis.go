package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StockAnalysis is a persisted snapshot of a full analysis run for a symbol.
// The scalar indicator columns are denormalized for dashboard queries; the
// complete report document lives in Data.
type StockAnalysis struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	Symbol     string         `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Exchange   string         `gorm:"type:varchar(10);not null" json:"exchange"`
	Price      float64        `gorm:"not null" json:"price"`
	Signal     string         `gorm:"type:varchar(10);not null" json:"signal"`
	Confidence float64        `gorm:"not null" json:"confidence"`
	RSI        float64        `json:"rsi"`
	MACD       float64        `json:"macd"`
	MACDSignal float64        `json:"macd_signal"`
	EMA9       float64        `gorm:"column:ema_9" json:"ema_9"`
	EMA21      float64        `gorm:"column:ema_21" json:"ema_21"`
	SMA50      float64        `gorm:"column:sma_50" json:"sma_50"`
	SMA200     float64        `gorm:"column:sma_200" json:"sma_200"`
	BBUpper    float64        `gorm:"column:bb_upper" json:"bb_upper"`
	BBMiddle   float64        `gorm:"column:bb_middle" json:"bb_middle"`
	BBLower    float64        `gorm:"column:bb_lower" json:"bb_lower"`
	Volume     int64          `json:"volume"`
	Data       datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StockAnalysis) TableName() string {
	return "stock_analyses"
}
