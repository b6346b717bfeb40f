package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/shopfront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadFile("")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "default", cfg.API.CartID)
		assert.Zero(t, cfg.API.Timeout)
		assert.False(t, cfg.Broker.Enabled())
		assert.Equal(t, "shopfront-cart-events", cfg.Broker.Topics.CartEvents)
		assert.ErrorIs(t, cfg.RequireAPI(), config.ErrMissingValue)
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: ":9090"
api:
  base_url: "http://localhost:3000"
  cart_id: "c1"
  timeout: 3s
broker:
  seed_brokers: ["kafka-1:9092", "kafka-2:9092"]
  schema_registry_urls: ["http://sr:8081"]
  topics:
    cart_events: "events"
`)
		cfg, err := config.LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, ":9090", cfg.HTTPServerAddr)
		assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
		assert.Equal(t, "c1", cfg.API.CartID)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Broker.SeedBrokers)
		assert.Equal(t, "events", cfg.Broker.Topics.CartEvents)
		assert.Equal(t, "shopfront-cart-stats", cfg.Broker.Consumers.CartStatsGroup)
		assert.NoError(t, cfg.RequireAPI())
		assert.NoError(t, cfg.RequireBroker())
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("SHOPFRONT_API_BASE_URL", "https://shop.example")
		t.Setenv("SHOPFRONT_LOG_LEVEL", "warn")
		t.Setenv("SHOPFRONT_BROKER_SEED_BROKERS", "a:9092,b:9092")

		cfg, err := config.LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, "https://shop.example", cfg.API.BaseURL)
		assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
		assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Broker.SeedBrokers)
		assert.ErrorIs(t, cfg.RequireBroker(), config.ErrMissingValue)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "api:\n  base_urll: \"http://x\"\n")
		_, err := config.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "flag.yaml", config.FilePath("flag.yaml"))

	t.Setenv("SHOPFRONT_CONFIG_FILE", "env.yaml")
	assert.Equal(t, "env.yaml", config.FilePath("flag.yaml"))
}
