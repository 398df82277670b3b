package messenger

import "errors"

// ErrTextWithAttachment is returned when a message sets both text and an
// attachment, which the Send API rejects.
var ErrTextWithAttachment = errors.New("message has both text and attachment")

// ErrEmptyMessage is returned when a message has neither text nor attachment.
var ErrEmptyMessage = errors.New("message has no text or attachment")

// ErrNoRecipient is returned when the outbound message has no recipient id.
var ErrNoRecipient = errors.New("message has no recipient")

// Message is the message part of a Send API request.
type Message struct {
	Text         string       `json:"text,omitempty"`
	Attachment   *Attachment  `json:"attachment,omitempty"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// OutboundMessage is a fully formed reply addressed to one recipient.
type OutboundMessage struct {
	Recipient User
	Message   Message
}

// Validate checks the text/attachment exclusivity invariant.
func (m *Message) Validate() error {
	switch {
	case m.Text != "" && m.Attachment != nil:
		return ErrTextWithAttachment
	case m.Text == "" && m.Attachment == nil:
		return ErrEmptyMessage
	}
	return nil
}

// Validate checks the recipient and the message body.
func (o *OutboundMessage) Validate() error {
	if o.Recipient.ID == "" {
		return ErrNoRecipient
	}
	return o.Message.Validate()
}

// Request builds the Send API body for o.
func (o *OutboundMessage) Request() SendRequest {
	msg := o.Message
	return SendRequest{Recipient: o.Recipient, Message: &msg}
}

// Kind names the shape of the message for logs and analytics: "text",
// "quick_replies", "image" or the template type.
func (o *OutboundMessage) Kind() string {
	if a := o.Message.Attachment; a != nil {
		if a.Type != AttachmentTemplate {
			return a.Type
		}
		switch p := a.Payload.(type) {
		case *GenericTemplate:
			return p.TemplateType
		case *ButtonTemplate:
			return p.TemplateType
		case *BoardingPassTemplate:
			return p.TemplateType
		case *ReceiptTemplate:
			return p.TemplateType
		}
		return AttachmentTemplate
	}
	if len(o.Message.QuickReplies) > 0 {
		return "quick_replies"
	}
	return "text"
}

// NewText returns a plain text message.
func NewText(recipientID, text string) *OutboundMessage {
	return &OutboundMessage{
		Recipient: User{ID: recipientID},
		Message:   Message{Text: text},
	}
}

// NewQuickReplies returns a text message with quick replies.
func NewQuickReplies(recipientID, text string, replies ...QuickReply) *OutboundMessage {
	return &OutboundMessage{
		Recipient: User{ID: recipientID},
		Message:   Message{Text: text, QuickReplies: replies},
	}
}

// NewTemplate returns a template attachment message.
func NewTemplate(recipientID string, payload any) *OutboundMessage {
	return &OutboundMessage{
		Recipient: User{ID: recipientID},
		Message: Message{
			Attachment: &Attachment{Type: AttachmentTemplate, Payload: payload},
		},
	}
}

// NewImage returns an image attachment message.
func NewImage(recipientID, url string, replies ...QuickReply) *OutboundMessage {
	return &OutboundMessage{
		Recipient: User{ID: recipientID},
		Message: Message{
			Attachment:   &Attachment{Type: AttachmentImage, Payload: &ImagePayload{URL: url}},
			QuickReplies: replies,
		},
	}
}

// TextReply returns a quick reply with content type text.
func TextReply(title, payload string) QuickReply {
	return QuickReply{ContentType: "text", Title: title, Payload: payload}
}
