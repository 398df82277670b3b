// Package messenger defines the Messenger Platform wire types exchanged with
// the webhook and the Send API.
package messenger

// ObjectPage is the envelope object value for page subscriptions.
const ObjectPage = "page"

// Envelope is the body of a webhook POST.
type Envelope struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string         `json:"id"`
	Time      int64          `json:"time"`
	Messaging []InboundEvent `json:"messaging"`
}

// User identifies a sender or recipient by page-scoped id.
type User struct {
	ID string `json:"id"`
}

// InboundEvent is a single messaging event. Exactly one of Message or
// Postback is expected to be set.
type InboundEvent struct {
	Sender    User            `json:"sender"`
	Recipient User            `json:"recipient"`
	Timestamp int64           `json:"timestamp"`
	Message   *InboundMessage `json:"message,omitempty"`
	Postback  *Postback       `json:"postback,omitempty"`
}

// InboundMessage is the message part of an inbound event.
type InboundMessage struct {
	MID        string            `json:"mid,omitempty"`
	Text       string            `json:"text,omitempty"`
	IsEcho     bool              `json:"is_echo,omitempty"`
	QuickReply *QuickReplyAnswer `json:"quick_reply,omitempty"`
}

// QuickReplyAnswer carries the payload of a tapped quick reply.
type QuickReplyAnswer struct {
	Payload string `json:"payload"`
}

// Postback is delivered when a postback button is tapped.
type Postback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload"`
}

// SendRequest is the body of a Send API call.
type SendRequest struct {
	Recipient User     `json:"recipient"`
	Message   *Message `json:"message"`
}

// QuickReply is a tappable reply option attached to a message.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

// Attachment types.
const (
	AttachmentImage    = "image"
	AttachmentTemplate = "template"
)

// Attachment is either an image or a template. Payload is one of
// *ImagePayload, *GenericTemplate, *ButtonTemplate, *BoardingPassTemplate or
// *ReceiptTemplate.
type Attachment struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ImagePayload references a hosted image.
type ImagePayload struct {
	URL string `json:"url"`
}

// Button types.
const (
	ButtonPostback = "postback"
	ButtonWebURL   = "web_url"
)

// Button is a template button.
type Button struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Template type names.
const (
	TemplateGeneric      = "generic"
	TemplateButton       = "button"
	TemplateBoardingPass = "airline_boardingpass"
	TemplateReceipt      = "receipt"
)

// GenericTemplate is a horizontally scrollable carousel.
type GenericTemplate struct {
	TemplateType string           `json:"template_type"`
	Elements     []GenericElement `json:"elements"`
}

// GenericElement is one carousel card.
type GenericElement struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
}

// ButtonTemplate is text with up to three buttons.
type ButtonTemplate struct {
	TemplateType string   `json:"template_type"`
	Text         string   `json:"text"`
	Buttons      []Button `json:"buttons"`
}

// BoardingPassTemplate is the airline boarding pass template.
type BoardingPassTemplate struct {
	TemplateType string         `json:"template_type"`
	IntroMessage string         `json:"intro_message"`
	Locale       string         `json:"locale"`
	BoardingPass []BoardingPass `json:"boarding_pass"`
}

// BoardingPass is a single passenger's pass.
type BoardingPass struct {
	PassengerName        string     `json:"passenger_name"`
	PNRNumber            string     `json:"pnr_number"`
	Seat                 string     `json:"seat,omitempty"`
	LogoImageURL         string     `json:"logo_image_url"`
	HeaderImageURL       string     `json:"header_image_url,omitempty"`
	QRCode               string     `json:"qr_code,omitempty"`
	AboveBarCodeImageURL string     `json:"above_bar_code_image_url"`
	AuxiliaryFields      []Field    `json:"auxiliary_fields,omitempty"`
	SecondaryFields      []Field    `json:"secondary_fields,omitempty"`
	FlightInfo           FlightInfo `json:"flight_info"`
}

// Field is a label/value pair rendered on a boarding pass.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FlightInfo describes the flight on a boarding pass.
type FlightInfo struct {
	FlightNumber     string         `json:"flight_number"`
	DepartureAirport Airport        `json:"departure_airport"`
	ArrivalAirport   Airport        `json:"arrival_airport"`
	FlightSchedule   FlightSchedule `json:"flight_schedule"`
}

// Airport is a departure or arrival airport.
type Airport struct {
	AirportCode string `json:"airport_code"`
	City        string `json:"city"`
	Terminal    string `json:"terminal,omitempty"`
	Gate        string `json:"gate,omitempty"`
}

// FlightSchedule holds departure and arrival times.
type FlightSchedule struct {
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

// ReceiptTemplate is an order confirmation.
type ReceiptTemplate struct {
	TemplateType  string              `json:"template_type"`
	RecipientName string              `json:"recipient_name"`
	OrderNumber   string              `json:"order_number"`
	Currency      string              `json:"currency"`
	PaymentMethod string              `json:"payment_method"`
	OrderURL      string              `json:"order_url,omitempty"`
	Timestamp     string              `json:"timestamp,omitempty"`
	Address       *Address            `json:"address,omitempty"`
	Summary       ReceiptSummary      `json:"summary"`
	Adjustments   []ReceiptAdjustment `json:"adjustments,omitempty"`
	Elements      []ReceiptElement    `json:"elements,omitempty"`
}

// Address is a shipping address.
type Address struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// ReceiptSummary holds order totals.
type ReceiptSummary struct {
	Subtotal     float64 `json:"subtotal,omitempty"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalTax     float64 `json:"total_tax,omitempty"`
	TotalCost    float64 `json:"total_cost"`
}

// ReceiptAdjustment is a discount line.
type ReceiptAdjustment struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ReceiptElement is a purchased item.
type ReceiptElement struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}
