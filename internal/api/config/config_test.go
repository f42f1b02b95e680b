package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../../configs/config-api.yaml")
	require.NoError(t, err)

	assert.Equal(t, "stocksage-api", cfg.App.Name)

	// Every DSN component must survive the round trip through viper.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "stocksage", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.NotEmpty(t, cfg.YahooFinance.BaseURL)
}
