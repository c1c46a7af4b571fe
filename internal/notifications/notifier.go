package notifications

import (
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/containrrr/shoutrrr/pkg/types"
	"github.com/sirupsen/logrus"
)

// Notifier handles sending notifications via Shoutrrr.
type Notifier struct {
	sr     *router.ServiceRouter
	logger logrus.FieldLogger
}

// NewNotifier initializes a new Notifier with the provided Shoutrrr URLs.
func NewNotifier(urls []string, logger logrus.FieldLogger) (*Notifier, error) {
	sr, err := router.New(nil, urls...)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Notifier{sr: sr, logger: logger}, nil
}

// Send sends a notification message to all configured services.
func (n *Notifier) Send(title, message string) {
	params := types.Params{
		"title": title,
	}
	failed := false
	for _, err := range n.sr.Send(message, &params) {
		if err != nil {
			failed = true
			n.logger.WithError(err).Error("Failed to send notification")
		}
	}
	if !failed {
		n.logger.WithField("title", title).Debug("Notification sent successfully")
	}
}
