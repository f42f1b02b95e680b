package service

import (
	"context"
	"errors"
	"strings"

	"stocksage/internal/api/dto"
	"stocksage/internal/entity"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"

	"gorm.io/gorm"
)

// WatchlistService manages the tracked symbols.
type WatchlistService interface {
	Add(ctx context.Context, req *dto.CreateWatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	GetAll(ctx context.Context) ([]*dto.WatchlistItemResponse, error)
	Remove(ctx context.Context, id uint) error
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(
	watchlistRepo repository.WatchlistRepository,
	analysisRepo repository.StockAnalysisRepository,
	logger *logger.Logger,
) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		analysisRepo:  analysisRepo,
		logger:        logger,
	}
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	analysisRepo  repository.StockAnalysisRepository
	logger        *logger.Logger
}

// Add registers a new symbol on the watchlist.
func (s *watchlistService) Add(ctx context.Context, req *dto.CreateWatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	if req.Symbol == "" {
		return nil, ErrSymbolRequired
	}

	item := &entity.WatchlistItem{
		Symbol:   strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Exchange: strings.ToUpper(strings.TrimSpace(req.Exchange)),
	}
	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Watchlist item added", logger.StringField("symbol", item.Symbol))
	return s.mapToResponse(ctx, item), nil
}

// GetAll returns every watchlist entry joined with its latest analysis.
func (s *watchlistService) GetAll(ctx context.Context) ([]*dto.WatchlistItemResponse, error) {
	items, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.WatchlistItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, s.mapToResponse(ctx, &items[i]))
	}
	return responses, nil
}

// Remove deletes a watchlist entry by ID.
func (s *watchlistService) Remove(ctx context.Context, id uint) error {
	if _, err := s.watchlistRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.watchlistRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete watchlist item", logger.ErrorField(err), logger.Field("id", id))
		return err
	}
	s.logger.Info("Watchlist item deleted", logger.Field("id", id))
	return nil
}

func (s *watchlistService) mapToResponse(ctx context.Context, item *entity.WatchlistItem) *dto.WatchlistItemResponse {
	resp := &dto.WatchlistItemResponse{
		ID:        item.ID,
		Symbol:    item.Symbol,
		Exchange:  item.Exchange,
		CreatedAt: item.CreatedAt,
	}

	snapshots, err := s.analysisRepo.FindBySymbol(ctx, item.Symbol, 1)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("Failed to load latest analysis for watchlist item",
			logger.ErrorField(err), logger.StringField("symbol", item.Symbol))
		return resp
	}
	if len(snapshots) > 0 {
		latest := snapshots[0]
		resp.LastPrice = &latest.Price
		resp.LastSignal = &latest.Signal
		resp.LastConfidence = &latest.Confidence
		resp.LastAnalyzedAt = &latest.CreatedAt
	}
	return resp
}
