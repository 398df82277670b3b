// Package dispatch routes inbound messaging events to the responder and
// hands the replies to the sender.
package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"posterbot/internal/messenger"
	"posterbot/internal/monitoring"
	"posterbot/internal/responder"
	"posterbot/internal/sender"
	"posterbot/pkg/logger"
)

// Route names how an event was handled.
type Route string

const (
	RouteText       Route = "text"
	RouteQuickReply Route = "quick_reply"
	RoutePostback   Route = "postback"
	RouteEcho       Route = "echo"
	RouteIgnored    Route = "ignored"
)

// Options configures a Dispatcher.
type Options struct {
	Selector *responder.Selector
	Sender   sender.Sender
	Reporter monitoring.Reporter
	// SendTimeout bounds each outbound call. Zero uses sender.DefaultTimeout.
	SendTimeout time.Duration
}

// Dispatcher handles webhook envelopes. Replies are sent fire-and-forget in
// their own goroutines; Wait blocks until all in-flight sends finish.
type Dispatcher struct {
	selector *responder.Selector
	sender   sender.Sender
	reporter monitoring.Reporter
	timeout  time.Duration
	inflight sync.WaitGroup
}

// New creates a dispatcher.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		selector: opts.Selector,
		sender:   opts.Sender,
		reporter: opts.Reporter,
		timeout:  opts.SendTimeout,
	}
	if d.selector == nil {
		d.selector = responder.New(responder.Options{})
	}
	if d.reporter == nil {
		d.reporter = monitoring.Nop{}
	}
	if d.timeout <= 0 {
		d.timeout = sender.DefaultTimeout
	}
	return d
}

// Dispatch handles every event of every entry in arrival order. A failure in
// one event is logged and does not stop the rest of the batch. It returns
// the number of replies scheduled.
func (d *Dispatcher) Dispatch(ctx context.Context, env *messenger.Envelope) int {
	log := logger.FromContext(ctx)
	scheduled := 0

	for _, entry := range env.Entry {
		log.Debug().
			Str("page_id", entry.ID).
			Int64("time", entry.Time).
			Int("events", len(entry.Messaging)).
			Msg("dispatching entry")

		for i := range entry.Messaging {
			if d.handleEvent(ctx, &entry.Messaging[i]) {
				scheduled++
			}
		}
	}
	return scheduled
}

// Wait blocks until every scheduled send has completed or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Classify decides how ev is routed and which trigger (text or payload)
// drives the reply.
func Classify(ev *messenger.InboundEvent) (Route, string) {
	switch {
	case ev.Message != nil:
		switch {
		case ev.Message.IsEcho:
			return RouteEcho, ""
		case ev.Message.QuickReply != nil:
			return RouteQuickReply, ev.Message.QuickReply.Payload
		case ev.Message.Text != "":
			return RouteText, ev.Message.Text
		}
		return RouteIgnored, ""
	case ev.Postback != nil:
		return RoutePostback, ev.Postback.Payload
	}
	return RouteIgnored, ""
}

// Reply returns the message to send for ev, or nil if ev gets no reply.
func (d *Dispatcher) Reply(ev *messenger.InboundEvent) (*messenger.OutboundMessage, Route, string) {
	route, trigger := Classify(ev)
	switch route {
	case RouteText:
		return d.selector.ForText(ev.Sender.ID, trigger), route, trigger
	case RouteQuickReply, RoutePostback:
		return d.selector.ForPayload(ev.Sender.ID, trigger), route, trigger
	}
	return nil, route, trigger
}

func (d *Dispatcher) handleEvent(ctx context.Context, ev *messenger.InboundEvent) (scheduled bool) {
	log := logger.FromContext(ctx).With().
		Str("sender_id", ev.Sender.ID).
		Str("recipient_id", ev.Recipient.ID).
		Int64("timestamp", ev.Timestamp).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panicked")
			scheduled = false
		}
	}()

	msg, route, trigger := d.Reply(ev)
	if msg == nil {
		log.Debug().Str("route", string(route)).Msg("event not handled")
		return false
	}
	if ev.Sender.ID == "" {
		log.Warn().Str("route", string(route)).Msg("event has no sender id")
		return false
	}

	if route != RouteText && trigger != responder.PayloadNone && !d.selector.Known(trigger) {
		log.Info().Str("payload", trigger).Msg("unrecognized payload, sending help menu")
	}

	log.Info().
		Str("route", string(route)).
		Str("trigger", trigger).
		Str("kind", msg.Kind()).
		Msg("reply selected")

	d.inflight.Add(1)
	go d.send(log, msg, trigger)
	return true
}

// send runs detached from the inbound request so the webhook can answer
// before the Send API does.
func (d *Dispatcher) send(log zerolog.Logger, msg *messenger.OutboundMessage, trigger string) {
	defer d.inflight.Done()

	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send panicked: %v", r)
			log.Error().Err(err).Msg("reply not sent")
		}
		d.reporter.Report(monitoring.Delivery{
			RecipientID: msg.Recipient.ID,
			Kind:        msg.Kind(),
			Trigger:     trigger,
			Latency:     time.Since(start),
			Err:         err,
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err = d.sender.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("kind", msg.Kind()).Msg("reply not sent")
		return
	}
	log.Debug().
		Str("kind", msg.Kind()).
		Dur("latency", time.Since(start)).
		Msg("reply sent")
}
