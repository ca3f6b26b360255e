package notifier

import (
	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/rs/zerolog"
)

// NewNotifiersFromConfig builds one notifier per enabled channel. Credentials are checked
// first, so a returned error is a configuration problem.
func NewNotifiersFromConfig(nc config.NotificationConfig, logger zerolog.Logger) ([]Notifier, error) {
	if err := config.ValidateNotifiers(nc); err != nil {
		return nil, err
	}

	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(nc.Timeout()).
		WithInsecureSkipVerify(false).
		WithMaxContentSize(maxResponseBodySize).
		WithHTTP2(true).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create notification HTTP client")
	}

	var notifiers []Notifier
	if nc.Discord.Enabled {
		notifiers = append(notifiers, NewDiscordNotifier(nc.Discord, nc, client, logger))
	}
	if nc.Telegram.Enabled {
		notifiers = append(notifiers, NewTelegramNotifier(nc.Telegram, client, logger))
	}
	if nc.Slack.Enabled {
		notifiers = append(notifiers, NewSlackNotifier(nc.Slack, nc, client, logger))
	}
	return notifiers, nil
}

// NewDispatcherFromConfig is NewNotifiersFromConfig wrapped in a Dispatcher.
func NewDispatcherFromConfig(nc config.NotificationConfig, logger zerolog.Logger) (*Dispatcher, error) {
	notifiers, err := NewNotifiersFromConfig(nc, logger)
	if err != nil {
		return nil, err
	}
	return NewDispatcher(notifiers, nc.ConcurrentDelivery, logger), nil
}
