package responder

import "fmt"

// Payloads outside the per-topic steps.
const (
	PayloadRestart = "QR_RESTART"
	// PayloadNone marks a quick reply with nothing further in its branch.
	PayloadNone = ""
)

// DefaultImageBaseURL hosts the Posterific screenshots referenced by cards
// and walk-through steps.
const DefaultImageBaseURL = "https://rodnolan.github.io/posterific-static-images/"

type card struct {
	subtitle string
	image    string
}

// topic is one feature of the poster app. Its walk-through has one intro
// step followed by one image step per card.
type topic struct {
	key       string // payload infix, e.g. ROTATION
	label     string // quick reply and navigation button title
	cardTitle string
	intro     string
	cards     []card
}

// steps returns the number of walk-through steps, intro included.
func (t topic) steps() int {
	return len(t.cards) + 1
}

// payload returns the payload for step n (1-based).
func (t topic) payload(n int) string {
	return fmt.Sprintf("QR_%s_%d", t.key, n)
}

var topics = []topic{
	{
		key:       "ROTATION",
		label:     "Rotation",
		cardTitle: "Rotation",
		intro:     "Click the Rotate button to toggle the poster's orientation between landscape and portrait mode.",
		cards: []card{
			{"portrait mode", "01-rotate-landscape.png"},
			{"landscape mode", "02-rotate-portrait.png"},
		},
	},
	{
		key:       "PHOTO",
		label:     "Photo",
		cardTitle: "Photo Picker",
		intro:     "Click the Photo button to select an image to use on your poster. We recommend visiting https://unsplash.com/random from your device to seed your Downloads folder with some images before you get started.",
		cards: []card{
			{"click to start", "03-photo-hover.png"},
			{"Downloads folder", "04-photo-list.png"},
			{"photo selected", "05-photo-selected.png"},
		},
	},
	{
		key:       "CAPTION",
		label:     "Caption",
		cardTitle: "Caption",
		intro:     "Click the Text button to set the caption that appears at the bottom of the poster.",
		cards: []card{
			{"click to start", "06-text-hover.png"},
			{"enter text", "07-text-mid-entry.png"},
			{"click OK", "08-text-entry-done.png"},
			{"Caption done", "09-text-complete.png"},
		},
	},
	{
		key:       "BACKGROUND",
		label:     "Background",
		cardTitle: "Background Color Picker",
		intro:     "Click the Background button to select a background color for your poster.",
		cards: []card{
			{"click to start", "10-background-picker-hover.png"},
			{"click current color", "11-background-picker-appears.png"},
			{"select new color", "12-background-picker-selection.png"},
			{"click ok", "13-background-picker-selection-made.png"},
			{"color is applied", "14-background-changed.png"},
		},
	},
}

// Payloads returns every payload the selector knows about, in menu order.
func Payloads() []string {
	out := []string{PayloadRestart, PayloadNone}
	for _, t := range topics {
		for n := 1; n <= t.steps(); n++ {
			out = append(out, t.payload(n))
		}
	}
	return out
}
