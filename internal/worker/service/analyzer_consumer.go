package service

import (
	"context"
	"encoding/json"
	"time"

	"stocksage/internal/analysis"
	"stocksage/internal/analyzer"
	"stocksage/internal/worker/config"
	"stocksage/internal/worker/dto"
	"stocksage/pkg/common"
	"stocksage/pkg/logger"
	"stocksage/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

// AnalyzerConsumerService consumes analyzer tasks from the Redis stream.
type AnalyzerConsumerService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
}

// NewAnalyzerConsumerService creates a new AnalyzerConsumerService.
func NewAnalyzerConsumerService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	pipeline analyzer.Service,
	telegramBot telegram.Notifier,
) AnalyzerConsumerService {
	return &analyzerConsumerService{
		cfg:         cfg,
		log:         log,
		redisClient: redisClient,
		pipeline:    pipeline,
		telegramBot: telegramBot,
	}
}

type analyzerConsumerService struct {
	cfg         *config.Config
	log         *logger.Logger
	redisClient *redis.Client
	pipeline    analyzer.Service
	telegramBot telegram.Notifier
}

// ProcessTask dequeues and runs a single analyzer task.
func (s *analyzerConsumerService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamStockAnalyzer, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
	}).Result()
	if err != nil {
		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	streamData, ok := s.decodeMessage(message)
	if !ok {
		return
	}

	s.log.Debug("Processing analyzer task",
		logger.StringField("symbol", streamData.Symbol),
		logger.StringField("interval", streamData.Interval),
		logger.StringField("range", streamData.Range))

	report, err := s.pipeline.Analyze(ctx, streamData.Symbol, streamData.Interval, streamData.Range)
	if err != nil {
		s.log.Error("Failed to analyze stock", logger.ErrorField(err),
			logger.Field("message_id", message.ID), logger.StringField("symbol", streamData.Symbol))
		return
	}
	s.notifySignal(report)

	if err := s.AckNDel(ctx, common.RedisStreamStockAnalyzer, message.ID); err != nil {
		s.log.Error("Failed to acknowledge analyzer task", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Debug("Analyzer task processed successfully", logger.StringField("symbol", streamData.Symbol))
}

// ProcessRetries reclaims messages that sat pending longer than the configured
// idle duration and retries them, dropping messages past the retry budget.
func (s *analyzerConsumerService) ProcessRetries(ctx context.Context) {
	msgs, _, err := s.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   common.RedisStreamStockAnalyzer,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer + "-retry",
		MinIdle:  s.cfg.Worker.RedisStreamAnalyzerMaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		s.log.Error("Failed to claim analyzer task on retry", logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		s.log.Debug("Retry No pending messages found", logger.StringField("stream", common.RedisStreamStockAnalyzer))
		return
	}

	msg := msgs[0]

	pendingInfo, err := s.redisClient.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamStockAnalyzer,
		Group:  common.RedisStreamGroup,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil {
		s.log.Error("Failed to get pending info", logger.ErrorField(err))
		return
	}

	if len(pendingInfo) == 0 {
		s.log.Warn("pending msg not found, but exist on xautoclaim",
			logger.StringField("stream", common.RedisStreamStockAnalyzer),
			logger.StringField("message_id", msg.ID))
		return
	}

	streamData, ok := s.decodeMessage(msg)
	if !ok {
		return
	}

	if pendingInfo[0].RetryCount >= int64(s.cfg.Worker.RedisStreamAnalyzerMaxRetry) {
		s.log.Error("pending msg retry count exceeded",
			logger.StringField("stream", common.RedisStreamStockAnalyzer),
			logger.StringField("message_id", msg.ID),
			logger.StringField("symbol", streamData.Symbol),
			logger.IntField("retry_count", int(pendingInfo[0].RetryCount)),
			logger.IntField("max_retry", s.cfg.Worker.RedisStreamAnalyzerMaxRetry))

		if s.telegramBot != nil {
			text := telegram.FormatErrorAlertMessage(time.Now(), "analyzer retry exceeded",
				"analysis kept failing and was dropped", streamData.Symbol)
			if err := s.telegramBot.SendMessage(text); err != nil {
				s.log.Error("Failed to send retry exceeded alert", logger.ErrorField(err), logger.StringField("symbol", streamData.Symbol))
			}
		}
		if err := s.AckNDel(ctx, common.RedisStreamStockAnalyzer, msg.ID); err != nil {
			s.log.Error("Failed to acknowledge analyzer task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		}
		return
	}

	report, err := s.pipeline.Analyze(ctx, streamData.Symbol, streamData.Interval, streamData.Range)
	if err != nil {
		s.log.Error("Failed to analyze stock on retry", logger.ErrorField(err),
			logger.Field("message_id", msg.ID), logger.StringField("symbol", streamData.Symbol))
		return
	}
	s.notifySignal(report)

	if err := s.AckNDel(ctx, common.RedisStreamStockAnalyzer, msg.ID); err != nil {
		s.log.Error("Failed to acknowledge analyzer task", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return
	}
	s.log.Info("Retry analyzer task processed successfully", logger.StringField("symbol", streamData.Symbol))
}

// notifySignal pushes actionable results to Telegram. HOLD signals and
// low-confidence calls stay quiet.
func (s *analyzerConsumerService) notifySignal(report *analyzer.Report) {
	if s.telegramBot == nil || report == nil {
		return
	}
	if report.Signal.Signal == analysis.SignalHold {
		return
	}
	if report.Signal.Confidence < s.cfg.Worker.NotifyMinConfidence {
		return
	}

	if err := s.telegramBot.SendMessage(telegram.FormatAnalysisMessage(report)); err != nil {
		s.log.Error("Failed to send analysis notification", logger.ErrorField(err), logger.StringField("symbol", report.Symbol))
	}
}

// AckNDel acknowledges and deletes a processed message so the stream does not
// grow unbounded.
func (s *analyzerConsumerService) AckNDel(ctx context.Context, streamName, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		return err
	}
	return s.redisClient.XDel(ctx, streamName, messageID).Err()
}

func (s *analyzerConsumerService) decodeMessage(msg redis.XMessage) (dto.StreamDataStockAnalyzer, bool) {
	var streamData dto.StreamDataStockAnalyzer

	taskData, ok := msg.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", msg.ID))
		return streamData, false
	}
	if err := json.Unmarshal([]byte(taskData), &streamData); err != nil {
		s.log.Error("Failed to unmarshal task data", logger.ErrorField(err), logger.Field("message_id", msg.ID))
		return streamData, false
	}
	return streamData, true
}
