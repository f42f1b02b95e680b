package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"stocksage/internal/entity"
	"stocksage/internal/market"
	"stocksage/internal/repository"
	"stocksage/internal/worker/config"
	"stocksage/pkg/logger"
	"stocksage/pkg/telegram"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPriceAlert = "price_alert:%s:%d"
	redisKeyLastPrice  = "last_price:%s"

	alertCheckRange    = "1d"
	alertCheckInterval = "5m"
)

// PriceAlertCheckerService evaluates active alerts against the latest market
// price and notifies via Telegram when a threshold is crossed.
type PriceAlertCheckerService interface {
	Check(ctx context.Context)
}

// NewPriceAlertCheckerService creates a new PriceAlertCheckerService.
func NewPriceAlertCheckerService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	yahooFinance market.YahooFinanceRepository,
	alertRepo repository.PriceAlertRepository,
	telegramNotifier telegram.Notifier,
) PriceAlertCheckerService {
	return &priceAlertCheckerService{
		cfg:              cfg,
		log:              log,
		redisClient:      redisClient,
		yahooFinance:     yahooFinance,
		alertRepo:        alertRepo,
		telegramNotifier: telegramNotifier,
		priceCache:       cache.New(5*time.Minute, 10*time.Minute),
	}
}

type priceAlertCheckerService struct {
	cfg              *config.Config
	log              *logger.Logger
	redisClient      *redis.Client
	yahooFinance     market.YahooFinanceRepository
	alertRepo        repository.PriceAlertRepository
	telegramNotifier telegram.Notifier
	priceCache       *cache.Cache
}

// Check runs one pass over the active alerts. Prices are fetched once per
// symbol per pass.
func (s *priceAlertCheckerService) Check(ctx context.Context) {
	alerts, err := s.alertRepo.FindActive(ctx)
	if err != nil {
		s.log.Error("Failed to load active alerts", logger.ErrorField(err))
		return
	}
	if len(alerts) == 0 {
		return
	}

	for i := range alerts {
		alert := &alerts[i]

		price, err := s.marketPrice(ctx, alert.Symbol)
		if err != nil {
			s.log.Error("Failed to get market price", logger.ErrorField(err), logger.StringField("symbol", alert.Symbol))
			continue
		}

		triggered := (alert.Condition == entity.AlertConditionAbove && price >= alert.TargetPrice) ||
			(alert.Condition == entity.AlertConditionBelow && price <= alert.TargetPrice)
		if !triggered {
			continue
		}

		shouldSend, err := s.shouldTriggerAlert(ctx, alert, price)
		if err != nil {
			s.log.Error("Failed to check alert resend state", logger.ErrorField(err), logger.StringField("symbol", alert.Symbol))
			continue
		}
		if !shouldSend {
			continue
		}

		message := telegram.FormatPriceAlertMessage(alert, price)
		if err := s.telegramNotifier.SendMessage(message); err != nil {
			s.log.Error("Failed to send alert", logger.ErrorField(err), logger.StringField("symbol", alert.Symbol))
			continue
		}

		now := time.Now()
		alert.TriggeredAt = sql.NullTime{Time: now, Valid: true}
		alert.LastNotifiedAt = sql.NullTime{Time: now, Valid: true}
		alert.LastNotifiedPrice = price
		if err := s.alertRepo.Update(ctx, alert); err != nil {
			s.log.Error("Failed to update alert", logger.ErrorField(err), logger.Field("id", alert.ID))
		}

		if err := s.redisClient.Set(ctx,
			fmt.Sprintf(redisKeyPriceAlert, alert.Condition, alert.ID),
			price, s.cfg.Alerts.CacheDuration).Err(); err != nil {
			s.log.Error("Failed to cache alert trigger", logger.ErrorField(err), logger.Field("id", alert.ID))
		}

		s.log.Info("Price alert sent",
			logger.StringField("symbol", alert.Symbol),
			logger.StringField("condition", alert.Condition),
			logger.Float64Field("target_price", alert.TargetPrice),
			logger.Float64Field("price", price))
	}
}

// marketPrice returns the latest price for the symbol, cached in memory for
// the duration of the pass and mirrored into Redis for other consumers.
func (s *priceAlertCheckerService) marketPrice(ctx context.Context, symbol string) (float64, error) {
	if cached, found := s.priceCache.Get(symbol); found {
		return cached.(float64), nil
	}

	stockData, err := s.yahooFinance.Get(ctx, market.GetStockDataParam{
		Symbol:   symbol,
		Interval: alertCheckInterval,
		Range:    alertCheckRange,
	})
	if err != nil {
		return 0, err
	}

	price := stockData.MarketPrice
	if price == 0 && len(stockData.OHLCV) > 0 {
		price = stockData.OHLCV[len(stockData.OHLCV)-1].Close
	}
	s.priceCache.Set(symbol, price, cache.DefaultExpiration)

	key := fmt.Sprintf(redisKeyLastPrice, symbol)
	pipe := s.redisClient.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"price":     price,
		"timestamp": time.Now().Unix(),
	})
	pipe.Expire(ctx, key, s.cfg.Alerts.CacheDuration+2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("Failed to execute Redis pipeline", logger.ErrorField(err), logger.StringField("symbol", symbol))
	}

	return price, nil
}

// shouldTriggerAlert suppresses repeated notifications unless the price moved
// past the resend threshold since the last one.
func (s *priceAlertCheckerService) shouldTriggerAlert(ctx context.Context, alert *entity.PriceAlert, price float64) (bool, error) {
	lastAlertPrice, err := s.getLastAlertPrice(ctx, alert)
	if err != nil {
		return false, err
	}

	if lastAlertPrice == 0 {
		return true, nil
	}

	diff := math.Abs(price - lastAlertPrice)
	percentChange := (diff / lastAlertPrice) * 100

	if percentChange >= s.cfg.Alerts.ResendThresholdPercent {
		s.log.Debug("Trigger resend alert",
			logger.StringField("symbol", alert.Symbol),
			logger.Float64Field("price", price),
			logger.Float64Field("last_alert_price", lastAlertPrice),
			logger.Float64Field("percent_change", percentChange))
		return true, nil
	}

	s.log.Debug("Skip resend alert",
		logger.StringField("symbol", alert.Symbol),
		logger.Float64Field("price", price),
		logger.Float64Field("last_alert_price", lastAlertPrice),
		logger.Float64Field("percent_change", percentChange))
	return false, nil
}

func (s *priceAlertCheckerService) getLastAlertPrice(ctx context.Context, alert *entity.PriceAlert) (float64, error) {
	lastAlertPrice, err := s.redisClient.Get(ctx, fmt.Sprintf(redisKeyPriceAlert, alert.Condition, alert.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil // no previous alert
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(lastAlertPrice, 64)
}
