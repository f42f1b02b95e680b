package service

import (
	"context"
	"encoding/json"
	"errors"

	"stocksage/internal/analyzer"
	"stocksage/internal/api/dto"
	"stocksage/internal/entity"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"
)

// ErrSymbolRequired is returned when an analyze request has no symbol.
var ErrSymbolRequired = errors.New("symbol is required")

const (
	defaultInterval = "1d"
	defaultRange    = "6mo"

	defaultHistoryLimit = 30

	defaultLatestLimit = 10
	latestPerSymbolCap = 100
)

// AnalysisService runs on-demand analyses and serves the persisted snapshots.
type AnalysisService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*analyzer.Report, error)
	GetLatest(ctx context.Context, limit int) ([]*dto.AnalysisSummaryResponse, error)
	GetHistory(ctx context.Context, symbol string, limit int) ([]*dto.AnalysisSummaryResponse, error)
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(pipeline analyzer.Service, analysisRepo repository.StockAnalysisRepository, logger *logger.Logger) AnalysisService {
	return &analysisService{
		pipeline:     pipeline,
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

type analysisService struct {
	pipeline     analyzer.Service
	analysisRepo repository.StockAnalysisRepository
	logger       *logger.Logger
}

// Analyze runs the full pipeline for the requested symbol.
func (s *analysisService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*analyzer.Report, error) {
	if req.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	interval := req.Interval
	if interval == "" {
		interval = defaultInterval
	}
	dataRange := req.Range
	if dataRange == "" {
		dataRange = defaultRange
	}

	report, err := s.pipeline.Analyze(ctx, req.Symbol, interval, dataRange)
	if err != nil {
		s.logger.Error("Analysis failed", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return nil, err
	}
	return report, nil
}

// GetLatest returns the most recent snapshot for every analyzed symbol.
func (s *analysisService) GetLatest(ctx context.Context, limit int) ([]*dto.AnalysisSummaryResponse, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	if limit > latestPerSymbolCap {
		limit = latestPerSymbolCap
	}
	snapshots, err := s.analysisRepo.FindLatestPerSymbol(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AnalysisSummaryResponse, 0, len(snapshots))
	for i := range snapshots {
		responses = append(responses, mapToSummaryResponse(&snapshots[i], false))
	}
	return responses, nil
}

// GetHistory returns the persisted snapshots for one symbol, newest first,
// with the full report payload included.
func (s *analysisService) GetHistory(ctx context.Context, symbol string, limit int) ([]*dto.AnalysisSummaryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	snapshots, err := s.analysisRepo.FindBySymbol(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AnalysisSummaryResponse, 0, len(snapshots))
	for i := range snapshots {
		responses = append(responses, mapToSummaryResponse(&snapshots[i], true))
	}
	return responses, nil
}

func mapToSummaryResponse(snapshot *entity.StockAnalysis, includeReport bool) *dto.AnalysisSummaryResponse {
	resp := &dto.AnalysisSummaryResponse{
		ID:         snapshot.ID,
		Symbol:     snapshot.Symbol,
		Exchange:   snapshot.Exchange,
		Price:      snapshot.Price,
		Signal:     snapshot.Signal,
		Confidence: snapshot.Confidence,
		RSI:        snapshot.RSI,
		CreatedAt:  snapshot.CreatedAt,
	}
	if includeReport {
		resp.Report = json.RawMessage(snapshot.Data)
	}
	return resp
}
