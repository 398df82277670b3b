// Package monitoring reports reply delivery outcomes to product analytics.
package monitoring

import (
	"errors"
	"time"

	"github.com/posthog/posthog-go"

	"posterbot/pkg/logger"
)

// EventReply is the analytics event name captured per outbound reply.
const EventReply = "messenger_reply"

// Delivery describes one outbound Send API call.
type Delivery struct {
	RecipientID string
	Kind        string
	Trigger     string
	Latency     time.Duration
	Err         error
}

// Reporter records deliveries. Implementations must not block the caller
// for long and must never fail the reply path.
type Reporter interface {
	Report(d Delivery)
	Close() error
}

// Nop discards every delivery.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(Delivery) {}

// Close implements Reporter.
func (Nop) Close() error { return nil }

// PosthogReporter enqueues one capture per delivery on a PostHog client.
type PosthogReporter struct {
	client posthog.Client
}

// NewPosthogReporter creates a reporter for the given project key. An empty
// endpoint uses the PostHog cloud default.
func NewPosthogReporter(apiKey, endpoint string) (*PosthogReporter, error) {
	if apiKey == "" {
		return nil, errors.New("posthog api key is empty")
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	return &PosthogReporter{client: client}, nil
}

// Report implements Reporter.
func (p *PosthogReporter) Report(d Delivery) {
	if err := p.client.Enqueue(Capture(d)); err != nil {
		logger.Warn().Err(err).Str("event", EventReply).Msg("analytics enqueue failed")
	}
}

// Close flushes pending captures.
func (p *PosthogReporter) Close() error {
	return p.client.Close()
}

// Capture converts a delivery into a PostHog capture.
func Capture(d Delivery) posthog.Capture {
	props := posthog.NewProperties().
		Set("kind", d.Kind).
		Set("trigger", d.Trigger).
		Set("latency_ms", d.Latency.Milliseconds()).
		Set("failed", d.Err != nil)
	if d.Err != nil {
		props.Set("fail_reason", d.Err.Error())
	}
	return posthog.Capture{
		DistinctId: d.RecipientID,
		Event:      EventReply,
		Properties: props,
	}
}
