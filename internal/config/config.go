package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	OrderAPI    OrderAPIConfig
	CatalogSync CatalogSyncConfig
	Tracing     TracingConfig
}

// CatalogSyncConfig keeps the search index warm between requests; an empty Token disables it
type CatalogSyncConfig struct {
	Token    string        // CATALOG_SYNC_TOKEN: bearer token used to read the catalog
	Interval time.Duration // CATALOG_SYNC_INTERVAL
}

// OrderAPIConfig is used to call the authoritative order backend
type OrderAPIConfig struct {
	BaseURL string        // e.g. http://localhost:8080/api/v1
	Timeout time.Duration // ORDER_API_TIMEOUT, per request; no retries
}

// TracingConfig controls OTLP export; an empty ExporterURL disables export
type TracingConfig struct {
	ExporterURL string
	SampleRate  float64
	ServiceName string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8090")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ORDER_API_URL", "http://localhost:8080/api/v1")
	viper.SetDefault("ORDER_API_TIMEOUT", "10s")
	viper.SetDefault("CATALOG_SYNC_INTERVAL", "5m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("ORDER_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("ORDER_API_TIMEOUT: %w", err)
	}
	syncInterval, err := time.ParseDuration(getEnvOrViper("CATALOG_SYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("CATALOG_SYNC_INTERVAL: %w", err)
	}
	sampleRate, err := strconv.ParseFloat(getEnvOrViper("OTEL_SAMPLE_RATE", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8090"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		OrderAPI: OrderAPIConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("ORDER_API_URL", "http://localhost:8080/api/v1")),
			Timeout: timeout,
		},
		CatalogSync: CatalogSyncConfig{
			Token:    strings.TrimSpace(getEnvOrViper("CATALOG_SYNC_TOKEN", "")),
			Interval: syncInterval,
		},
		Tracing: TracingConfig{
			ExporterURL: strings.TrimSpace(getEnvOrViper("OTEL_EXPORTER_URL", "")),
			SampleRate:  sampleRate,
			ServiceName: getEnvOrViper("SERVICE_NAME", "orders-view"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	u, err := url.Parse(c.OrderAPI.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ORDER_API_URL must be an absolute http(s) URL, got %q", c.OrderAPI.BaseURL)
	}
	if c.OrderAPI.Timeout <= 0 {
		return fmt.Errorf("ORDER_API_TIMEOUT must be positive")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0 and 1")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
