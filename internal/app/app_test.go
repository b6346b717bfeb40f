package app_test

import (
	"testing"

	"github.com/niksmo/shopfront/config"
	"github.com/niksmo/shopfront/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIClient(t *testing.T) {
	t.Run("MissingBaseURL", func(t *testing.T) {
		_, err := app.NewAPIClient(config.Config{})
		require.ErrorIs(t, err, config.ErrMissingValue)
	})

	t.Run("Ok", func(t *testing.T) {
		var cfg config.Config
		cfg.API.BaseURL = "http://127.0.0.1:9000/"
		_, err := app.NewAPIClient(cfg)
		require.NoError(t, err)
	})

	t.Run("BrokenTLSFiles", func(t *testing.T) {
		var cfg config.Config
		cfg.API.BaseURL = "https://shop.example"
		cfg.API.TLS.CA = "/nonexistent/ca.pem"
		_, err := app.NewAPIClient(cfg)
		require.Error(t, err)
	})
}

func TestBrokerTLS(t *testing.T) {
	tlsConfig, err := app.BrokerTLS(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, tlsConfig)
}
