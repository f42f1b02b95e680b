package service

import (
	"context"
	"encoding/json"

	"stocksage/internal/repository"
	"stocksage/internal/worker/config"
	"stocksage/internal/worker/dto"
	"stocksage/pkg/common"
	"stocksage/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// WatchlistRefreshService publishes an analyzer task for every watchlist
// symbol. It runs on the configured cron schedule.
type WatchlistRefreshService interface {
	Refresh(ctx context.Context)
}

// NewWatchlistRefreshService creates a new WatchlistRefreshService.
func NewWatchlistRefreshService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	watchlistRepo repository.WatchlistRepository,
) WatchlistRefreshService {
	return &watchlistRefreshService{
		cfg:           cfg,
		log:           log,
		redisClient:   redisClient,
		watchlistRepo: watchlistRepo,
	}
}

type watchlistRefreshService struct {
	cfg           *config.Config
	log           *logger.Logger
	redisClient   *redis.Client
	watchlistRepo repository.WatchlistRepository
}

// Refresh enqueues one analyzer task per watchlist entry.
func (s *watchlistRefreshService) Refresh(ctx context.Context) {
	items, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load watchlist for refresh", logger.ErrorField(err))
		return
	}
	if len(items) == 0 {
		s.log.Debug("Watchlist is empty, nothing to refresh")
		return
	}

	enqueued := 0
	for _, item := range items {
		payload, err := json.Marshal(dto.StreamDataStockAnalyzer{
			Symbol:   item.Symbol,
			Interval: s.cfg.Worker.DataInterval,
			Range:    s.cfg.Worker.DataRange,
		})
		if err != nil {
			s.log.Error("Failed to marshal analyzer payload", logger.ErrorField(err), logger.StringField("symbol", item.Symbol))
			continue
		}

		if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: common.RedisStreamStockAnalyzer,
			Values: map[string]interface{}{"payload": payload},
			MaxLen: s.cfg.Redis.StreamMaxLen, // Limit the stream size
		}).Err(); err != nil {
			s.log.Error("Failed to enqueue analyzer task", logger.ErrorField(err), logger.StringField("symbol", item.Symbol))
			continue
		}
		enqueued++
	}

	s.log.Info("Watchlist refresh enqueued",
		logger.IntField("watchlist_size", len(items)),
		logger.IntField("enqueued", enqueued))
}
