package market

// GetStockDataParam identifies a chart request.
type GetStockDataParam struct {
	Symbol   string
	Interval string // e.g. "1d"
	Range    string // e.g. "6mo"
}

// OHLCV is a single price bar.
type OHLCV struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// StockData is a normalized chart response.
type StockData struct {
	Symbol      string  `json:"symbol"`
	Exchange    string  `json:"exchange"`
	Currency    string  `json:"currency"`
	MarketPrice float64 `json:"market_price"`
	OHLCV       []OHLCV `json:"ohlcv"`
}

// StockInfo carries the fundamental fields extracted from the quoteSummary
// endpoint. Pointer fields distinguish "missing" from zero.
type StockInfo struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Exchange      string   `json:"exchange"`
	Sector        string   `json:"sector"`
	MarketCap     int64    `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	PBRatio       *float64 `json:"pb_ratio,omitempty"`
	PSRatio       *float64 `json:"ps_ratio,omitempty"`
	ROE           *float64 `json:"roe,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio  *float64 `json:"current_ratio,omitempty"`
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	EPS           *float64 `json:"eps,omitempty"`
	Week52High    *float64 `json:"week_52_high,omitempty"`
	Week52Low     *float64 `json:"week_52_low,omitempty"`
}

// SearchResult is one symbol suggestion from the search endpoint.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// chartResponse mirrors the v8 chart endpoint payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				FullExchangeName   string  `json:"fullExchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rawValue is the {raw, fmt} pair Yahoo uses for numeric quoteSummary fields.
type rawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// quoteSummaryResponse mirrors the v10 quoteSummary payload for the modules
// the analyzer needs.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName    string   `json:"shortName"`
				LongName     string   `json:"longName"`
				ExchangeName string   `json:"exchangeName"`
				MarketCap    rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				TrailingPE                   *rawValue `json:"trailingPE"`
				PriceToSalesTrailing12Months *rawValue `json:"priceToSalesTrailing12Months"`
				DividendYield                *rawValue `json:"dividendYield"`
				FiftyTwoWeekHigh             *rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow              *rawValue `json:"fiftyTwoWeekLow"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook *rawValue `json:"priceToBook"`
				TrailingEps *rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity *rawValue `json:"returnOnEquity"`
				DebtToEquity   *rawValue `json:"debtToEquity"`
				CurrentRatio   *rawValue `json:"currentRatio"`
				ProfitMargins  *rawValue `json:"profitMargins"`
				RevenueGrowth  *rawValue `json:"revenueGrowth"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// searchResponse mirrors the v1 search payload.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		ExchDisp  string `json:"exchDisp"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}
