package dto

// StreamDataStockAnalyzer is the payload published to the analyzer stream for
// each symbol that needs a refresh.
type StreamDataStockAnalyzer struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Range    string `json:"range"`
}
