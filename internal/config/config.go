package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Block-explorer API configuration
	Explorer ExplorerConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Insights computation configuration
	Insights InsightsConfig

	// Logging configuration
	Log LogConfig
}

// ExplorerConfig holds upstream block-explorer API settings
type ExplorerConfig struct {
	BaseURL        string        `envconfig:"EXPLORER_BASE_URL" default:"https://eth.blockscout.com/api/v2"`
	RequestTimeout time.Duration `envconfig:"EXPLORER_REQUEST_TIMEOUT" default:"15s"`

	// Page caps per paginated stream. Reaching a cap before the year
	// boundary bounds result completeness; it is not an error.
	TransactionPages   int `envconfig:"EXPLORER_TX_PAGES" default:"10"`
	NFTTransferPages   int `envconfig:"EXPLORER_NFT_PAGES" default:"10"`
	TokenTransferPages int `envconfig:"EXPLORER_ERC20_PAGES" default:"8"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"100"`
}

// InsightsConfig holds insights computation settings
type InsightsConfig struct {
	TargetYear int           `envconfig:"INSIGHTS_TARGET_YEAR" default:"2025"`
	CacheTTL   time.Duration `envconfig:"INSIGHTS_CACHE_TTL" default:"5m"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
