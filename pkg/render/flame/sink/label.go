package sink

import (
	"strings"
	"unicode/utf8"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/flametower/pkg/render/flame/layout"
)

const ellipsis = "…"

// fitLabel truncates label to at most maxRunes runes, marking the cut with
// an ellipsis. Nothing fits below two runes.
func fitLabel(label string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(label) <= maxRunes {
		return label
	}
	if maxRunes < 2 {
		return ""
	}
	runes := []rune(label)
	return strings.TrimRight(string(runes[:maxRunes-1]), " ") + ellipsis
}

// fill returns the element colour flattened onto bg, or bg itself when the
// element has no colour.
func fill(c layout.Color, has bool, opacity float64, bg colorful.Color) colorful.Color {
	if !has {
		return bg
	}
	return c.WithAlpha(c.A * opacity).Over(bg)
}

// textOn picks black or white text for legibility on bg.
func textOn(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
