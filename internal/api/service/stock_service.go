package service

import (
	"context"
	"unicode/utf8"

	"stocksage/internal/analysis"
	"stocksage/internal/api/dto"
	"stocksage/internal/market"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"
)

const defaultNewsLimit = 20

// StockService serves chart data, symbol search and stored news.
type StockService interface {
	GetChart(ctx context.Context, symbol, interval, dataRange string) (*dto.ChartResponse, error)
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	GetNews(ctx context.Context, symbol string, limit int) ([]*dto.NewsItemResponse, error)
}

// NewStockService creates a new stock service.
func NewStockService(
	yahooFinance market.YahooFinanceRepository,
	newsRepo repository.StockNewsRepository,
	logger *logger.Logger,
) StockService {
	return &stockService{
		yahooFinance: yahooFinance,
		newsRepo:     newsRepo,
		logger:       logger,
	}
}

type stockService struct {
	yahooFinance market.YahooFinanceRepository
	newsRepo     repository.StockNewsRepository
	logger       *logger.Logger
}

// GetChart fetches the OHLCV history and computes the indicator series over it.
func (s *stockService) GetChart(ctx context.Context, symbol, interval, dataRange string) (*dto.ChartResponse, error) {
	if interval == "" {
		interval = defaultInterval
	}
	if dataRange == "" {
		dataRange = defaultRange
	}

	stockData, err := s.yahooFinance.Get(ctx, market.GetStockDataParam{
		Symbol:   symbol,
		Interval: interval,
		Range:    dataRange,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ChartResponse{
		Symbol:   stockData.Symbol,
		Exchange: stockData.Exchange,
		Currency: stockData.Currency,
		Interval: interval,
		Range:    dataRange,
		OHLCV:    stockData.OHLCV,
	}
	if len(stockData.OHLCV) > 0 {
		series := analysis.CalculateIndicatorSeries(stockData.OHLCV)
		resp.Indicators = &series
	}
	return resp, nil
}

// Search proxies the symbol search endpoint. Queries under two runes return
// an empty result set without hitting the upstream.
func (s *stockService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	if utf8.RuneCountInString(query) < 2 {
		return &dto.SearchResponse{Query: query}, nil
	}

	results, err := s.yahooFinance.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return &dto.SearchResponse{Query: query, Results: results}, nil
}

// GetNews returns the stored news articles tagged with the symbol.
func (s *stockService) GetNews(ctx context.Context, symbol string, limit int) ([]*dto.NewsItemResponse, error) {
	if limit <= 0 {
		limit = defaultNewsLimit
	}
	articles, err := s.newsRepo.FindBySymbol(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NewsItemResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, &dto.NewsItemResponse{
			ID:          article.ID,
			Title:       article.Title,
			Link:        article.Link,
			Source:      article.Source,
			PublishedAt: article.PublishedAt,
			Symbols:     article.Symbols,
		})
	}
	return responses, nil
}
