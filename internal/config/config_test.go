package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ORDER_API_URL", "")
	t.Setenv("ORDER_API_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.OrderAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OrderAPI.Timeout)
	assert.Equal(t, "orders-view", cfg.Tracing.ServiceName)
	assert.Empty(t, cfg.Tracing.ExporterURL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogSync.Interval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ORDER_API_URL", " https://oms.example.com/api/v1 ")
	t.Setenv("ORDER_API_TIMEOUT", "3s")
	t.Setenv("OTEL_SAMPLE_RATE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://oms.example.com/api/v1", cfg.OrderAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.OrderAPI.Timeout)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRate, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("relative URL", func(t *testing.T) {
		t.Setenv("ORDER_API_URL", "/api/v1")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("ORDER_API_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		OrderAPI: OrderAPIConfig{BaseURL: "http://backend:8080/api/v1", Timeout: time.Second},
		Tracing:  TracingConfig{SampleRate: 1},
	}
	assert.NoError(t, cfg.Validate())

	cfg.OrderAPI.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg.OrderAPI.Timeout = time.Second
	cfg.Tracing.SampleRate = 2
	assert.Error(t, cfg.Validate())
}
