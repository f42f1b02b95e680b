package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocksage/internal/analyzer"
	"stocksage/internal/api/config"
	delivery "stocksage/internal/api/delivery/http"
	_ "stocksage/internal/api/docs"
	"stocksage/internal/api/service"
	"stocksage/internal/market"
	"stocksage/internal/repository"
	"stocksage/pkg/logger"
	"stocksage/pkg/postgres"
	"stocksage/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
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
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	analysisRepo := repository.NewStockAnalysisRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	alertRepo := repository.NewPriceAlertRepository(db.DB)
	fundamentalRepo := repository.NewFundamentalRepository(db.DB)
	predictionRepo := repository.NewPricePredictionRepository(db.DB)
	newsRepo := repository.NewStockNewsRepository(db.DB)
	yahooFinanceRepo, err := market.NewYahooFinanceRepository(cfg.YahooFinance, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", logger.ErrorField(err))
	}

	// Initialize services
	pipeline := analyzer.NewService(yahooFinanceRepo, analysisRepo, fundamentalRepo, predictionRepo, appLogger)
	analysisSvc := service.NewAnalysisService(pipeline, analysisRepo, appLogger)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, analysisRepo, appLogger)
	alertSvc := service.NewAlertService(alertRepo, appLogger)
	stockSvc := service.NewStockService(yahooFinanceRepo, newsRepo, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	analysisHandler := delivery.NewAnalysisHandler(analysisSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1.Group("/analyses"))

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	alertHandler := delivery.NewAlertHandler(alertSvc, appLogger)
	alertHandler.RegisterRoutes(apiV1.Group("/alerts"))

	stockHandler := delivery.NewStockHandler(stockSvc, appLogger)
	stockHandler.RegisterRoutes(apiV1.Group("/stocks"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title StockSage API
// @version 1.0
// @description Stock analysis API: on-demand analyses, charts, watchlist and price alerts.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
