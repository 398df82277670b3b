package responder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterbot/internal/messenger"
)

const psid = "1234567890"

func titles(replies []messenger.QuickReply) []string {
	out := make([]string, len(replies))
	for i, r := range replies {
		out[i] = r.Title
	}
	return out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"generic", ModeGeneric, false},
		{"IMAGES", ModeImages, false},
		{" images ", ModeImages, false},
		{"", ModeGeneric, false},
		{"carousel", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForText_EchoesUnknownText(t *testing.T) {
	s := New(Options{})

	for _, text := range []string{"Hello there", "HELP me", "tickets", "  help", "Bonjour!", "🙂"} {
		t.Run(text, func(t *testing.T) {
			msg := s.ForText(psid, text)
			assert.Equal(t, psid, msg.Recipient.ID)
			assert.Equal(t, text, msg.Message.Text)
			assert.Nil(t, msg.Message.Attachment)
			assert.Empty(t, msg.Message.QuickReplies)
		})
	}
}

func TestForText_Keywords(t *testing.T) {
	s := New(Options{})

	tests := []struct {
		text string
		kind string
	}{
		{"help", "quick_replies"},
		{"HELP", "quick_replies"},
		{"Hi", "text"},
		{"TICKET", messenger.TemplateBoardingPass},
		{"Receipt", messenger.TemplateReceipt},
		{"button", messenger.TemplateButton},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := s.ForText(psid, tt.text)
			require.NoError(t, msg.Validate())
			assert.Equal(t, tt.kind, msg.Kind())
		})
	}

	assert.Equal(t, GreetingText, s.ForText(psid, "hi").Message.Text)
}

func TestForText_EmptyGetsHelpMenu(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, s.HelpMenu(psid), s.ForText(psid, ""))
}

func TestHelpMenu(t *testing.T) {
	s := New(Options{})
	msg := s.ForText(psid, "HELP")

	assert.Equal(t, HelpText, msg.Message.Text)
	assert.Equal(t, []string{"Rotation", "Photo", "Caption", "Background"}, titles(msg.Message.QuickReplies))
	for _, qr := range msg.Message.QuickReplies {
		assert.Equal(t, "text", qr.ContentType)
	}
	assert.Equal(t, "QR_ROTATION_1", msg.Message.QuickReplies[0].Payload)
	assert.Equal(t, "QR_BACKGROUND_1", msg.Message.QuickReplies[3].Payload)
}

func TestHelpMenu_Idempotent(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, s.HelpMenu(psid), s.HelpMenu(psid))
}

func TestForPayload_AllKnownPayloadsProduceValidMessages(t *testing.T) {
	for _, mode := range []Mode{ModeGeneric, ModeImages} {
		s := New(Options{Mode: mode})
		for _, p := range Payloads() {
			t.Run(string(mode)+"/"+p, func(t *testing.T) {
				msg := s.ForPayload(psid, p)
				require.NotNil(t, msg)
				assert.NoError(t, msg.Validate())
				assert.Equal(t, psid, msg.Recipient.ID)
			})
		}
	}
}

func TestForPayload_UnknownGetsHelpMenu(t *testing.T) {
	for _, mode := range []Mode{ModeGeneric, ModeImages} {
		s := New(Options{Mode: mode})
		for _, p := range []string{"QR_UNKNOWN", "QR_ROTATION_4", "qr_rotation_1", "", PayloadRestart} {
			assert.Equal(t, s.HelpMenu(psid), s.ForPayload(psid, p), "mode %s payload %q", mode, p)
		}
	}
}

func TestForPayload_GenericCarousel(t *testing.T) {
	s := New(Options{Mode: ModeGeneric, ImageBaseURL: "https://img.example.com"})

	tests := []struct {
		payload  string
		cards    int
		title    string
		navTitle []string
	}{
		{"QR_ROTATION_1", 2, "Rotation", []string{"Photo", "Caption", "Background"}},
		{"QR_PHOTO_1", 3, "Photo Picker", []string{"Rotation", "Caption", "Background"}},
		{"QR_CAPTION_1", 4, "Caption", []string{"Rotation", "Photo", "Background"}},
		{"QR_BACKGROUND_1", 5, "Background Color Picker", []string{"Rotation", "Photo", "Caption"}},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			msg := s.ForPayload(psid, tt.payload)
			require.NotNil(t, msg.Message.Attachment)
			assert.Equal(t, messenger.AttachmentTemplate, msg.Message.Attachment.Type)

			tpl, ok := msg.Message.Attachment.Payload.(*messenger.GenericTemplate)
			require.True(t, ok)
			assert.Equal(t, messenger.TemplateGeneric, tpl.TemplateType)
			require.Len(t, tpl.Elements, tt.cards)

			for _, el := range tpl.Elements {
				assert.Equal(t, tt.title, el.Title)
				assert.Contains(t, el.ImageURL, "https://img.example.com/")
				var nav []string
				for _, b := range el.Buttons {
					assert.Equal(t, messenger.ButtonPostback, b.Type)
					assert.NotEqual(t, tt.payload, b.Payload)
					nav = append(nav, b.Title)
				}
				assert.Equal(t, tt.navTitle, nav)
			}
		})
	}
}

func TestForPayload_GenericModeLaterStepsFallBack(t *testing.T) {
	s := New(Options{Mode: ModeGeneric})
	assert.False(t, s.Known("QR_PHOTO_2"))
	assert.Equal(t, s.HelpMenu(psid), s.ForPayload(psid, "QR_PHOTO_2"))
}

func TestForPayload_ImagesFinalStep(t *testing.T) {
	s := New(Options{Mode: ModeImages})
	msg := s.ForPayload(psid, "QR_ROTATION_3")

	require.NotNil(t, msg.Message.Attachment)
	assert.Empty(t, msg.Message.Text)
	assert.Equal(t, messenger.AttachmentImage, msg.Message.Attachment.Type)
	assert.Equal(t, []string{TitleExplore}, titles(msg.Message.QuickReplies))
	assert.Equal(t, PayloadRestart, msg.Message.QuickReplies[0].Payload)
}

func TestForPayload_ImagesIntroStep(t *testing.T) {
	s := New(Options{Mode: ModeImages})
	msg := s.ForPayload(psid, "QR_PHOTO_1")

	assert.Nil(t, msg.Message.Attachment)
	assert.Contains(t, msg.Message.Text, "Photo button")
	assert.Equal(t, []string{TitleRestart, TitleContinue}, titles(msg.Message.QuickReplies))
	assert.Equal(t, "QR_PHOTO_2", msg.Message.QuickReplies[1].Payload)
}

func TestForPayload_ImagesWalkThroughReachesEnd(t *testing.T) {
	s := New(Options{Mode: ModeImages, ImageBaseURL: "https://img.example.com/"})

	want := map[string]int{"ROTATION": 3, "PHOTO": 4, "CAPTION": 5, "BACKGROUND": 6}
	for _, tp := range topics {
		t.Run(tp.key, func(t *testing.T) {
			payload := tp.payload(1)
			steps := 0
			for payload != "" {
				steps++
				require.LessOrEqual(t, steps, 10, "walk-through does not terminate")
				msg := s.ForPayload(psid, payload)
				require.NoError(t, msg.Validate())

				payload = ""
				for _, qr := range msg.Message.QuickReplies {
					if qr.Title == TitleContinue {
						payload = qr.Payload
					}
				}
			}
			assert.Equal(t, want[tp.key], steps)
		})
	}
}

func TestMessagesNeverCarryTextAndAttachment(t *testing.T) {
	for _, mode := range []Mode{ModeGeneric, ModeImages} {
		s := New(Options{Mode: mode})

		msgs := []*messenger.OutboundMessage{
			s.ForText(psid, "ticket"),
			s.ForText(psid, "receipt"),
			s.ForText(psid, "button"),
			s.ForText(psid, "echo me"),
		}
		for _, p := range Payloads() {
			msgs = append(msgs, s.ForPayload(psid, p))
		}

		for _, msg := range msgs {
			data, err := json.Marshal(msg.Request())
			require.NoError(t, err)

			var body struct {
				Message map[string]json.RawMessage `json:"message"`
			}
			require.NoError(t, json.Unmarshal(data, &body))
			_, hasText := body.Message["text"]
			_, hasAttachment := body.Message["attachment"]
			assert.False(t, hasText && hasAttachment, "both text and attachment in %s", data)
		}
	}
}

func TestPayloadsCoverEnumeratedDomain(t *testing.T) {
	got := Payloads()
	for _, p := range []string{
		"QR_RESTART", "",
		"QR_ROTATION_1", "QR_ROTATION_2", "QR_ROTATION_3",
		"QR_PHOTO_1", "QR_PHOTO_4",
		"QR_CAPTION_1", "QR_CAPTION_5",
		"QR_BACKGROUND_1", "QR_BACKGROUND_6",
	} {
		assert.Contains(t, got, p)
	}
	assert.Len(t, got, 2+3+4+5+6)
}
