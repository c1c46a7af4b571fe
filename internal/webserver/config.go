package webserver

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// WebserverConfig holds the configuration for the webserver.
type WebserverConfig struct {
	ListenTo           string
	CorsAllowedOrigins []string
	LoginTimeout       time.Duration
}

type webserverEnv struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	CorsAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LoginTimeout       time.Duration `env:"LOGIN_TIMEOUT" envDefault:"30s"`
}

// NewWebserverConfig initializes the webserver configuration from environment variables.
func NewWebserverConfig() (*WebserverConfig, error) {
	var raw webserverEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if raw.LoginTimeout <= 0 {
		return nil, fmt.Errorf("LOGIN_TIMEOUT must be positive, got %s", raw.LoginTimeout)
	}

	return &WebserverConfig{
		ListenTo:           ":" + raw.Port,
		CorsAllowedOrigins: raw.CorsAllowedOrigins,
		LoginTimeout:       raw.LoginTimeout,
	}, nil
}
