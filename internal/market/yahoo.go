package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stocksage/pkg/config"
	"stocksage/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

var quoteSummaryModules = []string{
	"price",
	"summaryProfile",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
}

// YahooFinanceRepository fetches chart, fundamental and search data from the
// Yahoo Finance API.
type YahooFinanceRepository interface {
	Get(ctx context.Context, param GetStockDataParam) (*StockData, error)
	GetStockInfo(ctx context.Context, symbol string) (*StockInfo, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type yahooFinanceRepository struct {
	baseURL        string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	responseCache  *cache.Cache
	cacheTTL       time.Duration
}

// NewYahooFinanceRepository creates a rate-limited, caching Yahoo Finance
// client from the shared configuration block.
func NewYahooFinanceRepository(cfg config.YahooFinance, log *logger.Logger) (YahooFinanceRepository, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxPerMinute := cfg.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)

	cacheTTL := time.Minute
	if cfg.CacheTTL != "" {
		parsed, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid yahoo finance cache_ttl: %w", err)
		}
		cacheTTL = parsed
	}

	return &yahooFinanceRepository{
		baseURL: baseURL,
		log:     log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		responseCache:  cache.New(cacheTTL, 2*cacheTTL),
		cacheTTL:       cacheTTL,
	}, nil
}

// Get fetches the OHLCV chart for a symbol. Bars with a missing close are
// dropped so downstream math never sees holes.
func (r *yahooFinanceRepository) Get(ctx context.Context, param GetStockDataParam) (*StockData, error) {
	interval := param.Interval
	if interval == "" {
		interval = "1d"
	}
	dataRange := param.Range
	if dataRange == "" {
		dataRange = "6mo"
	}

	cacheKey := fmt.Sprintf("chart:%s:%s:%s", param.Symbol, dataRange, interval)
	if cached, found := r.responseCache.Get(cacheKey); found {
		return cached.(*StockData), nil
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		r.baseURL, url.PathEscape(param.Symbol), interval, dataRange)

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response chartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance chart error for %s: %s", param.Symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", param.Symbol)
	}

	result := response.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	data := &StockData{
		Symbol:      result.Meta.Symbol,
		Exchange:    result.Meta.ExchangeName,
		Currency:    result.Meta.Currency,
		MarketPrice: result.Meta.RegularMarketPrice,
	}

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := OHLCV{Timestamp: ts, Close: *quote.Close[i]}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		data.OHLCV = append(data.OHLCV, bar)
	}

	if len(data.OHLCV) == 0 {
		return nil, fmt.Errorf("no usable bars for %s", param.Symbol)
	}

	r.responseCache.Set(cacheKey, data, r.cacheTTL)
	return data, nil
}

// GetStockInfo fetches the fundamental fields for a symbol from the
// quoteSummary endpoint.
func (r *yahooFinanceRepository) GetStockInfo(ctx context.Context, symbol string) (*StockInfo, error) {
	cacheKey := "info:" + symbol
	if cached, found := r.responseCache.Get(cacheKey); found {
		return cached.(*StockInfo), nil
	}

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		r.baseURL, url.PathEscape(symbol), strings.Join(quoteSummaryModules, ","))

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response quoteSummaryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode quoteSummary response: %w", err)
	}

	if response.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo finance quoteSummary error for %s: %s", symbol, response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quoteSummary data for %s", symbol)
	}

	result := response.QuoteSummary.Result[0]

	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}

	info := &StockInfo{
		Symbol:        symbol,
		Name:          name,
		Exchange:      result.Price.ExchangeName,
		Sector:        result.SummaryProfile.Sector,
		MarketCap:     int64(result.Price.MarketCap.Raw),
		PERatio:       rawPointer(result.SummaryDetail.TrailingPE),
		PBRatio:       rawPointer(result.DefaultKeyStatistics.PriceToBook),
		PSRatio:       rawPointer(result.SummaryDetail.PriceToSalesTrailing12Months),
		ROE:           rawPointer(result.FinancialData.ReturnOnEquity),
		DebtToEquity:  rawPointer(result.FinancialData.DebtToEquity),
		CurrentRatio:  rawPointer(result.FinancialData.CurrentRatio),
		ProfitMargin:  rawPointer(result.FinancialData.ProfitMargins),
		RevenueGrowth: rawPointer(result.FinancialData.RevenueGrowth),
		DividendYield: rawPointer(result.SummaryDetail.DividendYield),
		EPS:           rawPointer(result.DefaultKeyStatistics.TrailingEps),
		Week52High:    rawPointer(result.SummaryDetail.FiftyTwoWeekHigh),
		Week52Low:     rawPointer(result.SummaryDetail.FiftyTwoWeekLow),
	}

	r.responseCache.Set(cacheKey, info, r.cacheTTL)
	return info, nil
}

// Search queries the symbol autocomplete endpoint. Only equity and ETF quotes
// are returned.
func (r *yahooFinanceRepository) Search(ctx context.Context, query string) ([]SearchResult, error) {
	cacheKey := "search:" + strings.ToLower(query)
	if cached, found := r.responseCache.Get(cacheKey); found {
		return cached.([]SearchResult), nil
	}

	reqURL := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		r.baseURL, url.QueryEscape(query))

	body, err := r.sendRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var results []SearchResult
	for _, q := range response.Quotes {
		if q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.ExchDisp,
			Type:     q.QuoteType,
		})
	}

	r.responseCache.Set(cacheKey, results, r.cacheTTL)
	return results, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err), logger.StringField("url", reqURL))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", logger.ErrorField(err), logger.StringField("url", reqURL))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Yahoo Finance API returned non-200 status",
			logger.IntField("status", resp.StatusCode), logger.StringField("url", reqURL))
		return nil, fmt.Errorf("yahoo finance API returned status %d", resp.StatusCode)
	}

	return body, nil
}

func rawPointer(v *rawValue) *float64 {
	if v == nil {
		return nil
	}
	raw := v.Raw
	return &raw
}
