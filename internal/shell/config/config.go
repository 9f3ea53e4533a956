package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/config"
)

// Config holds all configuration for the dashboard shell.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SHELL_HTTP_PORT" envDefault:"8080"`

	// WanderLanka backend
	APIBaseURL string        `env:"WANDERLANKA_API_URL" envDefault:"http://localhost:5000/api"`
	APITimeout time.Duration `env:"WANDERLANKA_API_TIMEOUT" envDefault:"15s"`

	// Client state store: "memory" for per-process state, "redis" to
	// survive restarts.
	StateStore     string `env:"STATE_STORE" envDefault:"memory"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"wanderlanka:"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load shell config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StateStore != "memory" && c.StateStore != "redis" {
		return fmt.Errorf("invalid state store %q: must be memory or redis", c.StateStore)
	}
	return nil
}
