package entity

import (
	"time"

	"gorm.io/datatypes"
)

// FundamentalSnapshot stores the valuation ratios and composite score computed
// for a symbol at analysis time.
type FundamentalSnapshot struct {
	ID            int64          `gorm:"primaryKey" json:"id"`
	Symbol        string         `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Sector        string         `gorm:"type:varchar(50)" json:"sector"`
	PERatio       float64        `gorm:"column:pe_ratio" json:"pe_ratio"`
	PBRatio       float64        `gorm:"column:pb_ratio" json:"pb_ratio"`
	PSRatio       float64        `gorm:"column:ps_ratio" json:"ps_ratio"`
	ROE           float64        `gorm:"column:roe" json:"roe"`
	DebtToEquity  float64        `json:"debt_to_equity"`
	CurrentRatio  float64        `json:"current_ratio"`
	ProfitMargin  float64        `json:"profit_margin"`
	RevenueGrowth float64        `json:"revenue_growth"`
	DividendYield float64        `json:"dividend_yield"`
	Score         float64        `gorm:"not null" json:"score"`
	Rating        string         `gorm:"type:varchar(10)" json:"rating"`
	Data          datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (FundamentalSnapshot) TableName() string {
	return "fundamental_data"
}
