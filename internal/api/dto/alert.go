package dto

import "time"

// CreatePriceAlertRequest registers a new price alert.
type CreatePriceAlertRequest struct {
	Symbol      string  `json:"symbol"`
	Condition   string  `json:"condition"` // "above" or "below"
	TargetPrice float64 `json:"target_price"`
}

// UpdatePriceAlertRequest changes an alert's target or active flag.
type UpdatePriceAlertRequest struct {
	Condition   *string  `json:"condition,omitempty"`
	TargetPrice *float64 `json:"target_price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// PriceAlertResponse is one alert row.
type PriceAlertResponse struct {
	ID                uint       `json:"id"`
	Symbol            string     `json:"symbol"`
	Condition         string     `json:"condition"`
	TargetPrice       float64    `json:"target_price"`
	IsActive          bool       `json:"is_active"`
	TriggeredAt       *time.Time `json:"triggered_at,omitempty"`
	LastNotifiedAt    *time.Time `json:"last_notified_at,omitempty"`
	LastNotifiedPrice float64    `json:"last_notified_price"`
	CreatedAt         time.Time  `json:"created_at"`
}
