package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Engine     EngineConfig     `envconfig:"ENGINE"`
	AI         AIConfig         `envconfig:"AI"`
	Validation ValidationConfig `envconfig:"VALIDATION"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Telegram   TelegramConfig   `envconfig:"TELEGRAM"`
	Health     HealthConfig     `envconfig:"HEALTH"`
	Logging    LoggingConfig    `envconfig:"LOGGING"`
}

// EngineConfig represents consensus engine parameters
type EngineConfig struct {
	Symbols         []string      `envconfig:"ENGINE_SYMBOLS" default:"BTC/USDT,ETH/USDT"`
	ResolveInterval time.Duration `envconfig:"ENGINE_RESOLVE_INTERVAL" default:"15m"`
	ScoutTimeout    time.Duration `envconfig:"ENGINE_SCOUT_TIMEOUT" default:"45s"`
	RefinerTimeout  time.Duration `envconfig:"ENGINE_REFINER_TIMEOUT" default:"45s"`
	BaseConfidence  float64       `envconfig:"ENGINE_BASE_CONFIDENCE" default:"50.0"`
	CacheTTL        time.Duration `envconfig:"ENGINE_CACHE_TTL" default:"10m"`
	MaxConcurrent   int           `envconfig:"ENGINE_MAX_CONCURRENT" default:"4"`
	StopTimeout     time.Duration `envconfig:"ENGINE_STOP_TIMEOUT" default:"30s"`
}

// AIConfig represents upstream analyzer configuration
type AIConfig struct {
	ScoutURL          string        `envconfig:"AI_SCOUT_URL" required:"true"`
	OpenAIAPIKey      string        `envconfig:"AI_OPENAI_API_KEY" required:"true"`
	OpenAIModel       string        `envconfig:"AI_OPENAI_MODEL" default:"gpt-4o-mini"`
	RequestsPerSecond float64       `envconfig:"AI_REQUESTS_PER_SECOND" default:"2.0"`
	RequestBurst      int           `envconfig:"AI_REQUEST_BURST" default:"4"`
	HTTPTimeout       time.Duration `envconfig:"AI_HTTP_TIMEOUT" default:"60s"`
}

// ValidationConfig represents the independent validation signal source
type ValidationConfig struct {
	URL     string        `envconfig:"VALIDATION_URL" required:"false"`
	Timeout time.Duration `envconfig:"VALIDATION_TIMEOUT" default:"5s"`
}

// RedisConfig represents Redis cache connection parameters
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" required:"false"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// TelegramConfig represents Telegram alerting configuration
type TelegramConfig struct {
	BotToken            string `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID              int64  `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
	AlertOnDisagreement bool   `envconfig:"TELEGRAM_ALERT_ON_DISAGREEMENT" default:"true"`
	AlertOnHybrid       bool   `envconfig:"TELEGRAM_ALERT_ON_HYBRID" default:"true"`
	AlertOnDegraded     bool   `envconfig:"TELEGRAM_ALERT_ON_DEGRADED" default:"false"`
}

// HealthConfig represents health probe server configuration
type HealthConfig struct {
	Port string `envconfig:"HEALTH_PORT" default:"8080"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if len(c.Engine.Symbols) == 0 {
		return fmt.Errorf("at least one symbol must be configured")
	}
	for _, symbol := range c.Engine.Symbols {
		if strings.TrimSpace(symbol) == "" {
			return fmt.Errorf("symbols must not be empty")
		}
	}

	if c.Engine.ScoutTimeout <= 0 || c.Engine.RefinerTimeout <= 0 {
		return fmt.Errorf("analyzer timeouts must be positive")
	}
	if c.Engine.BaseConfidence < 0 || c.Engine.BaseConfidence > 100 {
		return fmt.Errorf("base_confidence must be between 0 and 100")
	}
	if c.Engine.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if c.Engine.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}

	if c.AI.ScoutURL == "" {
		return fmt.Errorf("scout analyzer URL is required")
	}
	if c.AI.OpenAIAPIKey == "" {
		return fmt.Errorf("openai api key is required")
	}
	if c.AI.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}

	// Telegram is optional, but token and chat must come together
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when bot token is set")
	}

	return nil
}
