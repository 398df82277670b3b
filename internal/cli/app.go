package cli

import (
	"fmt"

	"posterbot/internal/config"
	"posterbot/internal/dispatch"
	"posterbot/internal/monitoring"
	"posterbot/internal/responder"
	"posterbot/internal/sender"
)

// newSelector builds the reply selector. A non-empty mode overrides the
// configured one.
func newSelector(cfg *config.Config, mode string) (*responder.Selector, error) {
	if mode == "" {
		mode = cfg.Responder.Mode
	}
	m, err := responder.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return responder.New(responder.Options{
		Mode:         m,
		ImageBaseURL: cfg.Responder.ImageBaseURL,
	}), nil
}

func newSender(cfg *config.Config) *sender.Client {
	return sender.New(sender.Config{
		GraphAPIURL:     cfg.Messenger.GraphAPIURL,
		PageAccessToken: cfg.Messenger.PageAccessToken,
		Timeout:         cfg.Messenger.SendTimeout,
	}, nil)
}

// newReporter returns the PostHog reporter when analytics is configured and
// a no-op reporter otherwise.
func newReporter(cfg *config.Config) (monitoring.Reporter, error) {
	if !cfg.Analytics.Enabled() {
		return monitoring.Nop{}, nil
	}
	r, err := monitoring.NewPosthogReporter(cfg.Analytics.PosthogAPIKey, cfg.Analytics.PosthogEndpoint)
	if err != nil {
		return nil, fmt.Errorf("init analytics: %w", err)
	}
	return r, nil
}

func newDispatcher(cfg *config.Config, reporter monitoring.Reporter) (*dispatch.Dispatcher, error) {
	sel, err := newSelector(cfg, "")
	if err != nil {
		return nil, err
	}
	return dispatch.New(dispatch.Options{
		Selector:    sel,
		Sender:      newSender(cfg),
		Reporter:    reporter,
		SendTimeout: cfg.Messenger.SendTimeout,
	}), nil
}
