package config

import (
	"time"

	"stocksage/pkg/config"
)

// Worker holds worker-specific configuration.
type Worker struct {
	// Stream consumer
	RedisStreamAnalyzerTimeout         time.Duration `mapstructure:"redis_stream_analyzer_timeout"`
	RedisStreamAnalyzerRetryInterval   time.Duration `mapstructure:"redis_stream_analyzer_retry_interval"`
	RedisStreamAnalyzerMaxIdleDuration time.Duration `mapstructure:"redis_stream_analyzer_max_idle_duration"`
	RedisStreamAnalyzerMaxRetry        int           `mapstructure:"redis_stream_analyzer_max_retry"`

	// Cron expressions
	WatchlistRefreshCron string `mapstructure:"watchlist_refresh_cron"`
	AlertCheckCron       string `mapstructure:"alert_check_cron"`
	NewsRefreshCron      string `mapstructure:"news_refresh_cron"`

	// Analysis defaults used for watchlist refreshes
	DataInterval string `mapstructure:"data_interval"`
	DataRange    string `mapstructure:"data_range"`

	// Minimum confidence before a BUY/SELL result is pushed to Telegram
	NotifyMinConfidence float64 `mapstructure:"notify_min_confidence"`
}

// Alerts holds price alert checker configuration.
type Alerts struct {
	CacheDuration          time.Duration `mapstructure:"cache_duration"`
	ResendThresholdPercent float64       `mapstructure:"resend_threshold_percent"`
}

// News holds news refresh configuration.
type News struct {
	Feeds            []string `mapstructure:"feeds"`
	MaxPerFeed       int      `mapstructure:"max_per_feed"`
	MaxAgeInDays     int      `mapstructure:"max_age_in_days"`
	MaxConcurrent    int      `mapstructure:"max_concurrent"`
	FetchFullContent bool     `mapstructure:"fetch_full_content"`
}

// Config holds the full configuration for the worker service.
type Config struct {
	App          config.App          `mapstructure:"app"`
	Logger       config.Logger       `mapstructure:"logger"`
	Database     config.Database     `mapstructure:"database"`
	Redis        config.Redis        `mapstructure:"redis"`
	Worker       Worker              `mapstructure:"worker"`
	Alerts       Alerts              `mapstructure:"alerts"`
	News         News                `mapstructure:"news"`
	Telegram     config.Telegram     `mapstructure:"telegram"`
	YahooFinance config.YahooFinance `mapstructure:"yahoo_finance"`
}

// Load loads the worker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
