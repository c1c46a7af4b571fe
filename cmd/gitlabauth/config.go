package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// runtimeConfig holds the process-level settings that are not part of the
// authentication policy.
type runtimeConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// APIRate is the number of GitLab API calls per second; zero disables
	// the limiter.
	APIRate  float64 `env:"GITLAB_API_RATE" envDefault:"0"`
	APIBurst int     `env:"GITLAB_API_BURST" envDefault:"5"`
}

func loadRuntimeConfig() (*runtimeConfig, error) {
	var cfg runtimeConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIRate < 0 {
		return nil, fmt.Errorf("GITLAB_API_RATE must not be negative, got %v", cfg.APIRate)
	}
	if cfg.APIRate > 0 && cfg.APIBurst < 1 {
		return nil, fmt.Errorf("GITLAB_API_BURST must be at least 1, got %d", cfg.APIBurst)
	}
	return &cfg, nil
}

func (c *runtimeConfig) level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// limiter returns nil when no rate is configured.
func (c *runtimeConfig) limiter() *rate.Limiter {
	if c.APIRate == 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.APIRate), c.APIBurst)
}
