package dto

import (
	"encoding/json"
	"time"
)

// AnalyzeRequest asks for a fresh analysis of a symbol.
type AnalyzeRequest struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"` // default "1d"
	Range    string `json:"range"`    // default "6mo"
}

// AnalysisSummaryResponse is one persisted analysis snapshot.
type AnalysisSummaryResponse struct {
	ID         int64           `json:"id"`
	Symbol     string          `json:"symbol"`
	Exchange   string          `json:"exchange"`
	Price      float64         `json:"price"`
	Signal     string          `json:"signal"`
	Confidence float64         `json:"confidence"`
	RSI        float64         `json:"rsi"`
	Report     json.RawMessage `json:"report,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}
