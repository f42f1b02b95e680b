package consumer

import (
	"context"
	"sync"
	"time"

	"stocksage/internal/worker/config"
	"stocksage/internal/worker/service"
	"stocksage/pkg/common"
	"stocksage/pkg/logger"
	"stocksage/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisConsumer manages the consumption of analyzer tasks from the Redis
// stream plus the retry reclaim loop.
type RedisConsumer struct {
	cfg             *config.Config
	redisClient     *redis.Client
	analyzerService service.AnalyzerConsumerService
	logger          *logger.Logger
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	analyzerService service.AnalyzerConsumerService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:             cfg,
		redisClient:     redisClient,
		analyzerService: analyzerService,
		logger:          log,
		stopChan:        make(chan struct{}),
	}
}

// Start begins the consumer's task processing loops.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.analyzerService.ProcessTask, common.RedisStreamStockAnalyzer, c.cfg.Worker.RedisStreamAnalyzerTimeout)
	c.RegisterTickerHandler(ctx, c.analyzerService.ProcessRetries, c.cfg.Worker.RedisStreamAnalyzerRetryInterval, c.cfg.Worker.RedisStreamAnalyzerMaxIdleDuration, common.RedisStreamStockAnalyzer+"-retry")
}

// RegisterStreamHandler runs fn in a loop until the context is done or Stop is
// called. Each iteration gets its own timeout.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// RegisterTickerHandler runs fn at the given interval until the context is
// done or Stop is called.
func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
