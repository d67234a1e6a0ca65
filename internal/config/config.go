package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Market   MarketConfig
	Charts   ChartsConfig
	Style    StyleConfig
	Logging  LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds the collection store configuration
type DatabaseConfig struct {
	Path string
}

// MarketConfig holds market-data provider configuration
type MarketConfig struct {
	BaseURL      string
	SymbolSuffix string
	Window       string
	FetchTimeout time.Duration
	MaxRetries   int
	CacheTTL     time.Duration
}

// ChartsConfig holds chart page assembly configuration
type ChartsConfig struct {
	PerPage     int
	MaxPerPage  int
	Concurrency int
}

// StyleConfig holds the fixed chart color configuration
type StyleConfig struct {
	UpColor         string
	DownColor       string
	PivotColor      string
	ResistanceColor string
	SupportColor    string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.path", "stocks.db")

	// Market data defaults
	v.SetDefault("market.baseURL", "https://query1.finance.yahoo.com")
	v.SetDefault("market.symbolSuffix", ".NS")
	v.SetDefault("market.window", "ytd")
	v.SetDefault("market.fetchTimeout", "10s")
	v.SetDefault("market.maxRetries", 2)
	v.SetDefault("market.cacheTTL", "5m")

	// Chart page defaults
	v.SetDefault("charts.perPage", 12)
	v.SetDefault("charts.maxPerPage", 24)
	v.SetDefault("charts.concurrency", 4)

	// Style defaults
	v.SetDefault("style.upColor", "#00ff55")
	v.SetDefault("style.downColor", "#ed4807")
	v.SetDefault("style.pivotColor", "#227cf4")
	v.SetDefault("style.resistanceColor", "#ed4807")
	v.SetDefault("style.supportColor", "#00ff55")

	// Logging defaults
	v.SetDefault("logging.level", "info")
}
