package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stocksage/internal/analyzer"
	"stocksage/internal/market"
	"stocksage/internal/repository"
	"stocksage/internal/worker/config"
	"stocksage/internal/worker/delivery/consumer"
	"stocksage/internal/worker/service"
	"stocksage/pkg/common"
	"stocksage/pkg/logger"
	"stocksage/pkg/postgres"
	"stocksage/pkg/redis"
	"stocksage/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the worker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Worker Service", zap.String("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamStockAnalyzer, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	analysisRepo := repository.NewStockAnalysisRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	alertRepo := repository.NewPriceAlertRepository(db.DB)
	fundamentalRepo := repository.NewFundamentalRepository(db.DB)
	predictionRepo := repository.NewPricePredictionRepository(db.DB)
	newsRepo := repository.NewStockNewsRepository(db.DB)
	yahooFinanceRepo, err := market.NewYahooFinanceRepository(cfg.YahooFinance, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", zap.Error(err))
	}

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	// Initialize services
	pipeline := analyzer.NewService(yahooFinanceRepo, analysisRepo, fundamentalRepo, predictionRepo, appLogger)
	analyzerSvc := service.NewAnalyzerConsumerService(cfg, appLogger, redisClient.Client, pipeline, telegramNotifier)
	watchlistRefreshSvc := service.NewWatchlistRefreshService(cfg, appLogger, redisClient.Client, watchlistRepo)
	alertCheckerSvc := service.NewPriceAlertCheckerService(cfg, appLogger, redisClient.Client, yahooFinanceRepo, alertRepo, telegramNotifier)
	newsRefreshSvc := service.NewNewsRefreshService(cfg, appLogger, newsRepo, watchlistRepo)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, analyzerSvc, appLogger)
	redisConsumer.Start(ctx)

	// Schedule the periodic jobs
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.Worker.WatchlistRefreshCron, func() { watchlistRefreshSvc.Refresh(ctx) }); err != nil {
		appLogger.Fatal("Invalid watchlist refresh cron expression", zap.Error(err))
	}
	if _, err := cronScheduler.AddFunc(cfg.Worker.AlertCheckCron, func() { alertCheckerSvc.Check(ctx) }); err != nil {
		appLogger.Fatal("Invalid alert check cron expression", zap.Error(err))
	}
	if _, err := cronScheduler.AddFunc(cfg.Worker.NewsRefreshCron, func() { newsRefreshSvc.Refresh(ctx) }); err != nil {
		appLogger.Fatal("Invalid news refresh cron expression", zap.Error(err))
	}
	cronScheduler.Start()

	appLogger.Info("Worker service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker service...")
	cancel()
	<-cronScheduler.Stop().Done()
	redisConsumer.Stop()
	appLogger.Info("Worker service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "worker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-worker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing worker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
