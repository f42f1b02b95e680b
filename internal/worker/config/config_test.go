package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../../configs/config-worker.yaml")
	require.NoError(t, err)

	assert.Equal(t, "stocksage-worker", cfg.App.Name)

	// Every DSN component must survive the round trip through viper.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "stocksage", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, int64(1000), cfg.Redis.StreamMaxLen)
	assert.Equal(t, 3, cfg.Worker.RedisStreamAnalyzerMaxRetry)
	assert.Equal(t, 5*time.Minute, cfg.Worker.RedisStreamAnalyzerMaxIdleDuration)
	assert.NotEmpty(t, cfg.Worker.WatchlistRefreshCron)
	assert.NotEmpty(t, cfg.News.Feeds)
	assert.InDelta(t, 70.0, cfg.Worker.NotifyMinConfidence, 1e-9)
}
