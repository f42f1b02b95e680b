package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stocksage/internal/analysis"
	"stocksage/internal/entity"
	"stocksage/internal/market"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"

	"gorm.io/datatypes"
)

// Suffixes tried for bare symbols that return no data, NSE first then BSE.
var exchangeSuffixes = []string{".NS", ".BO"}

// Report is the complete result of one analysis run.
type Report struct {
	Symbol            string                          `json:"symbol"`
	Exchange          string                          `json:"exchange"`
	Currency          string                          `json:"currency"`
	Price             float64                         `json:"price"`
	Volume            int64                           `json:"volume"`
	AnalyzedAt        time.Time                       `json:"analyzed_at"`
	Indicators        analysis.Indicators             `json:"indicators"`
	Signal            analysis.SignalResult           `json:"signal"`
	Trend             map[string]analysis.TrendWindow `json:"trend_analysis"`
	TrendSummary      analysis.TrendSummary           `json:"trend_summary"`
	Prediction        *analysis.PricePrediction       `json:"price_prediction,omitempty"`
	SupportResistance *analysis.SupportResistance     `json:"support_resistance,omitempty"`
	VolumePriceTrend  *analysis.VolumePriceTrend      `json:"volume_price_trend,omitempty"`
	Fundamental       *analysis.FundamentalAnalysis   `json:"fundamental_analysis,omitempty"`
}

// Service runs the full analysis pipeline for a symbol and persists the
// resulting snapshots.
type Service interface {
	Analyze(ctx context.Context, symbol, interval, dataRange string) (*Report, error)
}

// NewService creates a new analyzer service.
func NewService(
	yahooFinance market.YahooFinanceRepository,
	analysisRepo repository.StockAnalysisRepository,
	fundamentalRepo repository.FundamentalRepository,
	predictionRepo repository.PricePredictionRepository,
	log *logger.Logger,
) Service {
	return &service{
		yahooFinance:    yahooFinance,
		analysisRepo:    analysisRepo,
		fundamentalRepo: fundamentalRepo,
		predictionRepo:  predictionRepo,
		log:             log,
	}
}

type service struct {
	yahooFinance    market.YahooFinanceRepository
	analysisRepo    repository.StockAnalysisRepository
	fundamentalRepo repository.FundamentalRepository
	predictionRepo  repository.PricePredictionRepository
	log             *logger.Logger
}

// Analyze resolves the symbol, fetches market data, computes the technical,
// regression and fundamental analyses, persists the snapshots and returns the
// full report. Fundamental data is optional; a failed quoteSummary fetch does
// not fail the run.
func (s *service) Analyze(ctx context.Context, symbol, interval, dataRange string) (*Report, error) {
	resolved, stockData, err := s.resolveSymbol(ctx, symbol, interval, dataRange)
	if err != nil {
		return nil, err
	}

	bars := stockData.OHLCV
	indicators := analysis.CalculateIndicators(bars)
	signal := analysis.GenerateSignal(indicators, bars)
	trend := analysis.CalculateTrendAnalysis(bars)

	report := &Report{
		Symbol:            resolved,
		Exchange:          stockData.Exchange,
		Currency:          stockData.Currency,
		Price:             bars[len(bars)-1].Close,
		Volume:            bars[len(bars)-1].Volume,
		AnalyzedAt:        time.Now().UTC(),
		Indicators:        indicators,
		Signal:            signal,
		Trend:             trend,
		TrendSummary:      analysis.SummarizeTrend(trend),
		Prediction:        analysis.PredictFuturePrices(bars),
		SupportResistance: analysis.CalculateSupportResistance(bars),
		VolumePriceTrend:  analysis.CalculateVolumePriceTrend(bars),
	}

	info, err := s.yahooFinance.GetStockInfo(ctx, resolved)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch fundamentals, skipping fundamental analysis",
			logger.ErrorField(err), logger.StringField("symbol", resolved))
	} else {
		report.Fundamental = analysis.AnalyzeFundamentals(info)
	}

	if err := s.persist(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// resolveSymbol fetches chart data for the symbol as given; bare symbols that
// return nothing are retried with the NSE and BSE suffixes.
func (s *service) resolveSymbol(ctx context.Context, symbol, interval, dataRange string) (string, *market.StockData, error) {
	param := market.GetStockDataParam{Symbol: symbol, Interval: interval, Range: dataRange}
	stockData, err := s.yahooFinance.Get(ctx, param)
	if err == nil {
		return symbol, stockData, nil
	}

	if strings.Contains(symbol, ".") {
		return "", nil, fmt.Errorf("unable to fetch data for %s: %w", symbol, err)
	}

	for _, suffix := range exchangeSuffixes {
		candidate := symbol + suffix
		param.Symbol = candidate
		stockData, suffixErr := s.yahooFinance.Get(ctx, param)
		if suffixErr == nil {
			s.log.DebugContext(ctx, "Resolved bare symbol via exchange suffix",
				logger.StringField("symbol", symbol), logger.StringField("resolved", candidate))
			return candidate, stockData, nil
		}
	}

	return "", nil, fmt.Errorf("unable to fetch data for %s: %w", symbol, err)
}

func (s *service) persist(ctx context.Context, report *Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	snapshot := &entity.StockAnalysis{
		Symbol:     report.Symbol,
		Exchange:   report.Exchange,
		Price:      report.Price,
		Signal:     report.Signal.Signal,
		Confidence: report.Signal.Confidence,
		RSI:        report.Indicators.RSI,
		MACD:       report.Indicators.MACD,
		MACDSignal: report.Indicators.MACDSignal,
		EMA9:       report.Indicators.EMA9,
		EMA21:      report.Indicators.EMA21,
		SMA50:      report.Indicators.SMA50,
		SMA200:     report.Indicators.SMA200,
		BBUpper:    report.Indicators.BBUpper,
		BBMiddle:   report.Indicators.BBMiddle,
		BBLower:    report.Indicators.BBLower,
		Volume:     report.Volume,
		Data:       datatypes.JSON(reportJSON),
	}
	if err := s.analysisRepo.Create(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist analysis: %w", err)
	}

	if report.Fundamental != nil {
		if err := s.persistFundamental(ctx, report); err != nil {
			return err
		}
	}

	if report.Prediction != nil {
		if err := s.persistPrediction(ctx, report); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) persistFundamental(ctx context.Context, report *Report) error {
	f := report.Fundamental
	dataJSON, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal fundamental analysis: %w", err)
	}

	snapshot := &entity.FundamentalSnapshot{
		Symbol: report.Symbol,
		Sector: f.Sector,
		Score:  f.Score,
		Rating: f.Rating,
		Data:   datatypes.JSON(dataJSON),
	}
	for _, ratio := range f.Ratios {
		switch ratio.Name {
		case "P/E Ratio":
			snapshot.PERatio = ratio.Value
		case "P/B Ratio":
			snapshot.PBRatio = ratio.Value
		case "P/S Ratio":
			snapshot.PSRatio = ratio.Value
		case "ROE":
			snapshot.ROE = ratio.Value
		case "Debt/Equity":
			snapshot.DebtToEquity = ratio.Value
		case "Current Ratio":
			snapshot.CurrentRatio = ratio.Value
		case "Profit Margin":
			snapshot.ProfitMargin = ratio.Value
		case "Revenue Growth":
			snapshot.RevenueGrowth = ratio.Value
		case "Dividend Yield":
			snapshot.DividendYield = ratio.Value
		}
	}

	if err := s.fundamentalRepo.Create(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist fundamental snapshot: %w", err)
	}
	return nil
}

func (s *service) persistPrediction(ctx context.Context, report *Report) error {
	p := report.Prediction
	dataJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	last := p.Points[len(p.Points)-1]
	prediction := &entity.PricePrediction{
		Symbol:         report.Symbol,
		HorizonDays:    analysis.PredictionHorizonDays,
		CurrentPrice:   p.CurrentPrice,
		PredictedPrice: p.PredictedEndPrice,
		UpperBound:     last.Upper,
		LowerBound:     last.Lower,
		ChangePercent:  p.PriceChangePercent,
		TrendDirection: p.Direction,
		ModelAccuracy:  p.ModelAccuracy,
		Data:           datatypes.JSON(dataJSON),
	}

	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		return fmt.Errorf("failed to persist prediction: %w", err)
	}
	return nil
}
