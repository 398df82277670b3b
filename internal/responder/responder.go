// Package responder maps trigger keywords and button payloads to canned
// Messenger replies.
//
// Selection is a pure table lookup: every keyword and payload resolves to a
// builder, and anything unknown resolves to the help menu.
package responder

import (
	"fmt"
	"strings"

	"posterbot/internal/messenger"
	"posterbot/pkg/logger"
)

// Mode selects how per-topic help is rendered.
type Mode string

const (
	// ModeGeneric sends one carousel per topic.
	ModeGeneric Mode = "generic"
	// ModeImages walks through each topic one image at a time.
	ModeImages Mode = "images"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeGeneric, ModeImages:
		return m, nil
	case "":
		return ModeGeneric, nil
	default:
		return "", fmt.Errorf("unknown responder mode %q (want %q or %q)", s, ModeGeneric, ModeImages)
	}
}

// Reply texts.
const (
	HelpText     = "Select a feature to learn more."
	GreetingText = "Hello, welcome to @Passionlovetravel"
)

// Quick reply titles used by the walk-through.
const (
	TitleRestart  = "Restart"
	TitleContinue = "Continue"
	TitleExplore  = "Explore another feature"
)

// Options configures a Selector.
type Options struct {
	Mode         Mode
	ImageBaseURL string
}

type builder func(recipientID string) *messenger.OutboundMessage

// Selector picks the reply for an inbound keyword or payload. It holds no
// mutable state and is safe for concurrent use.
type Selector struct {
	mode      Mode
	imageBase string
	keywords  map[string]builder
	payloads  map[string]builder
}

// New creates a selector. Zero options select generic mode and the default
// image host.
func New(opts Options) *Selector {
	s := &Selector{
		mode:      opts.Mode,
		imageBase: opts.ImageBaseURL,
	}
	if s.mode == "" {
		s.mode = ModeGeneric
	}
	if s.imageBase == "" {
		s.imageBase = DefaultImageBaseURL
	}
	if !strings.HasSuffix(s.imageBase, "/") {
		s.imageBase += "/"
	}

	s.keywords = map[string]builder{
		"help": s.HelpMenu,
		"hi": func(id string) *messenger.OutboundMessage {
			return messenger.NewText(id, GreetingText)
		},
		"ticket": func(id string) *messenger.OutboundMessage {
			return messenger.NewTemplate(id, boardingPassTemplate())
		},
		"receipt": func(id string) *messenger.OutboundMessage {
			return messenger.NewTemplate(id, receiptTemplate())
		},
		"button": func(id string) *messenger.OutboundMessage {
			return messenger.NewTemplate(id, buttonTemplate())
		},
	}

	s.payloads = map[string]builder{PayloadRestart: s.HelpMenu}
	for _, t := range topics {
		switch s.mode {
		case ModeImages:
			for n := 1; n <= t.steps(); n++ {
				s.payloads[t.payload(n)] = func(id string) *messenger.OutboundMessage {
					return s.walkthroughStep(id, t, n)
				}
			}
		default:
			s.payloads[t.payload(1)] = func(id string) *messenger.OutboundMessage {
				return s.carousel(id, t)
			}
		}
	}

	return s
}

// Mode returns the configured mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// ForText returns the reply to a free-text message. Keywords match
// case-insensitively; anything else is echoed back unchanged.
func (s *Selector) ForText(recipientID, text string) *messenger.OutboundMessage {
	if text == "" {
		return s.HelpMenu(recipientID)
	}
	if b, ok := s.keywords[strings.ToLower(text)]; ok {
		return b(recipientID)
	}
	return messenger.NewText(recipientID, text)
}

// ForPayload returns the reply to a postback or quick reply payload.
// Unknown payloads get the help menu.
func (s *Selector) ForPayload(recipientID, payload string) *messenger.OutboundMessage {
	if b, ok := s.payloads[payload]; ok {
		return b(recipientID)
	}
	return s.HelpMenu(recipientID)
}

// Known reports whether payload has a dedicated reply in the current mode.
func (s *Selector) Known(payload string) bool {
	_, ok := s.payloads[payload]
	return ok
}

// HelpMenu returns the feature menu.
func (s *Selector) HelpMenu(recipientID string) *messenger.OutboundMessage {
	replies := make([]messenger.QuickReply, 0, len(topics))
	for _, t := range topics {
		replies = append(replies, messenger.TextReply(t.label, t.payload(1)))
	}
	return messenger.NewQuickReplies(recipientID, HelpText, replies...)
}

func (s *Selector) carousel(recipientID string, t topic) *messenger.OutboundMessage {
	// Navigation buttons point at every other topic.
	buttons := make([]messenger.Button, 0, len(topics)-1)
	for _, other := range topics {
		if other.key == t.key {
			continue
		}
		buttons = append(buttons, messenger.Button{
			Type:    messenger.ButtonPostback,
			Title:   other.label,
			Payload: other.payload(1),
		})
	}

	elements := make([]messenger.GenericElement, 0, len(t.cards))
	for _, c := range t.cards {
		elements = append(elements, messenger.GenericElement{
			Title:    t.cardTitle,
			Subtitle: c.subtitle,
			ImageURL: s.imageBase + c.image,
			Buttons:  buttons,
		})
	}

	if len(elements) < 2 {
		logger.Warn().
			Str("topic", t.key).
			Int("elements", len(elements)).
			Msg("generic template should have at least two elements")
	}

	return messenger.NewTemplate(recipientID, &messenger.GenericTemplate{
		TemplateType: messenger.TemplateGeneric,
		Elements:     elements,
	})
}

// walkthroughStep renders step n of t. Step 1 is the intro text, step k > 1
// shows card k-1. The last step drops Continue and retitles Restart.
func (s *Selector) walkthroughStep(recipientID string, t topic, n int) *messenger.OutboundMessage {
	replies := []messenger.QuickReply{messenger.TextReply(TitleRestart, PayloadRestart)}
	if n < t.steps() {
		replies = append(replies, messenger.TextReply(TitleContinue, t.payload(n+1)))
	} else {
		replies[0].Title = TitleExplore
	}

	if n == 1 {
		return messenger.NewQuickReplies(recipientID, t.intro, replies...)
	}
	return messenger.NewImage(recipientID, s.imageBase+t.cards[n-2].image, replies...)
}
