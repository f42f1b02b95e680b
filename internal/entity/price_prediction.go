package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PricePrediction stores the regression projection produced for a symbol. The
// per-day series with confidence bounds lives in Data.
type PricePrediction struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	Symbol         string         `gorm:"type:varchar(20);not null;index" json:"symbol"`
	HorizonDays    int            `gorm:"not null" json:"horizon_days"`
	CurrentPrice   float64        `gorm:"not null" json:"current_price"`
	PredictedPrice float64        `gorm:"not null" json:"predicted_price"`
	UpperBound     float64        `json:"upper_bound"`
	LowerBound     float64        `json:"lower_bound"`
	ChangePercent  float64        `json:"change_percent"`
	TrendDirection string         `gorm:"type:varchar(10)" json:"trend_direction"`
	ModelAccuracy  float64        `json:"model_accuracy"`
	Data           datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (PricePrediction) TableName() string {
	return "price_predictions"
}
