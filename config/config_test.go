package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.redcircleapi.com/request", config.RedCircle.BaseURL)
		assert.Equal(t, 10*time.Second, config.RedCircle.Timeout)
		assert.Equal(t, "memory", config.Cache.Type)
		assert.Equal(t, time.Hour, config.Cache.ProductTTL)
		assert.Equal(t, 5*time.Minute, config.Cache.SearchTTL)
		assert.Equal(t, time.Minute, config.Cache.StockTTL)
		assert.Equal(t, "development", config.AppEnv)
		assert.False(t, config.IsProduction())
	})

	t.Run("MissingAPIKeyIsNotFatal", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Empty(t, config.RedCircle.APIKey)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("REDCIRCLE_API_KEY", "test-api-key"))
		require.NoError(t, os.Setenv("REDCIRCLE_BASE_URL", "http://localhost:9999/request"))
		require.NoError(t, os.Setenv("REDCIRCLE_TIMEOUT", "3s"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_REDIS_ADDR", "redis:6379"))
		require.NoError(t, os.Setenv("CACHE_STOCK_TTL", "30s"))
		require.NoError(t, os.Setenv("APP_ENV", "production"))

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "test-api-key", config.RedCircle.APIKey)
		assert.Equal(t, "http://localhost:9999/request", config.RedCircle.BaseURL)
		assert.Equal(t, 3*time.Second, config.RedCircle.Timeout)
		assert.Equal(t, "redis", config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.RedisAddr)
		assert.Equal(t, 30*time.Second, config.Cache.StockTTL)
		assert.True(t, config.IsProduction())
	})

	t.Run("InvalidPort", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("SERVER_PORT", "70000"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("InvalidBaseURL", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("REDCIRCLE_BASE_URL", "ftp://example.com"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "REDCIRCLE_BASE_URL")
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CACHE_TYPE", "memcached"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "CACHE_TYPE")
	})

	t.Run("InvalidAppEnv", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("APP_ENV", "staging"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "APP_ENV")
	})
}
