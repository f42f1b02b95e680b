package entity

import (
	"database/sql"
	"time"
)

// Alert condition values.
const (
	AlertConditionAbove = "above"
	AlertConditionBelow = "below"
)

// PriceAlert is a user-defined threshold alert. The worker checks active
// alerts against the latest market price and notifies via Telegram.
type PriceAlert struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Symbol            string       `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Condition         string       `gorm:"type:varchar(10);not null" json:"condition"`
	TargetPrice       float64      `gorm:"not null" json:"target_price"`
	IsActive          bool         `gorm:"not null;default:true" json:"is_active"`
	TriggeredAt       sql.NullTime `json:"triggered_at" swaggertype:"string" format:"date-time"`
	LastNotifiedAt    sql.NullTime `json:"last_notified_at" swaggertype:"string" format:"date-time"`
	LastNotifiedPrice float64      `json:"last_notified_price"`
	CreatedAt         time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PriceAlert) TableName() string {
	return "alerts"
}
