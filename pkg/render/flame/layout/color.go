package layout

import (
	"fmt"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/flametower/pkg/errors"
)

// Color is a translucent fill: an opaque base colour plus an alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// DefaultBaseColor is the hue every rectangle is tinted with.
var DefaultBaseColor = Color{R: 255, A: 1}

var white = colorful.Color{R: 1, G: 1, B: 1}

// ParseColor parses a "#rrggbb" or "#rgb" string into an opaque Color.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse colour %q", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// String renders the colour as a CSS rgba() value.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Over composites c onto an opaque background and returns the result.
func (c Color) Over(bg colorful.Color) colorful.Color {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return bg.BlendRgb(base, clamp01(c.A)).Clamped()
}

// Hex returns the colour flattened onto white as "#rrggbb", for sinks that
// cannot express transparency.
func (c Color) Hex() string {
	return c.Over(white).Hex()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
