package notifications

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// NotificationConfig holds the notification-related configuration.
type NotificationConfig struct {
	ShoutrrrURLs []string
}

type notificationEnv struct {
	ShoutrrrURLs string `env:"SHOUTRRR_URLS"`
}

// LoadNotificationConfig loads notification configuration from environment
// variables. Notifications are disabled when SHOUTRRR_URLS is empty.
func LoadNotificationConfig() (*NotificationConfig, error) {
	var raw notificationEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &NotificationConfig{
		ShoutrrrURLs: parseShoutrrrURLs(raw.ShoutrrrURLs),
	}, nil
}

// Enabled reports whether at least one notification URL is configured.
func (c *NotificationConfig) Enabled() bool {
	return len(c.ShoutrrrURLs) > 0
}

// parseShoutrrrURLs parses a comma-separated list of Shoutrrr URLs.
func parseShoutrrrURLs(urls string) []string {
	var result []string
	for _, url := range strings.Split(urls, ",") {
		trimmed := strings.TrimSpace(url)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
