package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the console.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Predictor PredictorConfig `yaml:"predictor"`
	Health    HealthConfig    `yaml:"health"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	History   HistoryConfig   `yaml:"history"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PredictorConfig points at the upstream prediction service.
type PredictorConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	PredictPath    string        `yaml:"predictPath"`
	HealthPath     string        `yaml:"healthPath"`
	InfoPath       string        `yaml:"infoPath"`
	PredictTimeout time.Duration `yaml:"predictTimeout"`
}

// HealthConfig controls the availability poller.
type HealthConfig struct {
	Schedule    string        `yaml:"schedule"`
	PollTimeout time.Duration `yaml:"pollTimeout"`
}

// CatalogConfig controls sector catalog caching.
type CatalogConfig struct {
	CacheTTL time.Duration `yaml:"cacheTtl"`
	Redis    RedisConfig   `yaml:"redis"`
}

// HistoryConfig controls submission history storage.
type HistoryConfig struct {
	Limit          int            `yaml:"limit"`
	MemoryCapacity int            `yaml:"memoryCapacity"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("PREDICTOR_BASE_URL"); v != "" {
		cfg.Predictor.BaseURL = v
	}
	if v := os.Getenv("PREDICTOR_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Predictor.PredictTimeout = parsed
		}
	}
	if v := os.Getenv("HEALTH_SCHEDULE"); v != "" {
		cfg.Health.Schedule = v
	}
	if v := os.Getenv("HEALTH_POLL_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Health.PollTimeout = parsed
		}
	}
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Catalog.CacheTTL = parsed
		}
	}
	if v := os.Getenv("CATALOG_REDIS_ENABLED"); v != "" {
		cfg.Catalog.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CATALOG_REDIS_ADDR"); v != "" {
		cfg.Catalog.Redis.Addr = v
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Limit = parsed
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_DSN"); v != "" {
		cfg.History.Postgres.DSN = v
	}
	if v := os.Getenv("HISTORY_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 45 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:8080",
			},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Predictor: PredictorConfig{
			BaseURL:        "http://localhost:8000",
			PredictPath:    "/api/predict",
			HealthPath:     "/api/health",
			InfoPath:       "/api/info",
			PredictTimeout: 30 * time.Second,
		},
		Health: HealthConfig{
			Schedule:    "@every 30s",
			PollTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			CacheTTL: 10 * time.Minute,
			Redis: RedisConfig{
				Prefix: "shelter",
			},
		},
		History: HistoryConfig{
			Limit:          20,
			MemoryCapacity: 500,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Predictor.BaseURL) == "" {
		return errors.New("predictor.baseUrl cannot be empty")
	}
	if c.Predictor.PredictTimeout < 0 {
		return errors.New("predictor.predictTimeout cannot be negative")
	}
	if _, err := cron.ParseStandard(c.Health.Schedule); err != nil {
		return fmt.Errorf("health.schedule: %w", err)
	}
	if c.Health.PollTimeout <= 0 {
		return errors.New("health.pollTimeout must be positive")
	}
	if c.Catalog.CacheTTL < 0 {
		return errors.New("catalog.cacheTtl cannot be negative")
	}
	if c.Catalog.Redis.Enabled && strings.TrimSpace(c.Catalog.Redis.Addr) == "" {
		return errors.New("catalog.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.History.Limit <= 0 {
		return errors.New("history.limit must be positive")
	}
	return nil
}
