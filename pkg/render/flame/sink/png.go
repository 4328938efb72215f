package sink

import (
	"image"
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/render"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	fontSize   float64
	background string
	labels     bool
}

// WithScale sets the output resolution multiplier (default 2.0).
func WithScale(scale float64) PNGOption { return func(r *pngRenderer) { r.scale = scale } }

// WithLabelSize sets the label size in viewport pixels (default 12).
func WithLabelSize(px float64) PNGOption { return func(r *pngRenderer) { r.fontSize = px } }

// WithPNGBackground sets the canvas colour (default white).
func WithPNGBackground(hex string) PNGOption { return func(r *pngRenderer) { r.background = hex } }

// WithoutPNGLabels skips label drawing.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// RenderPNG rasterises elements at the configured scale. Rectangles go
// through the SVG path; labels are drawn afterwards with the Go Regular
// face, truncated to the rectangle width.
func RenderPNG(elems []anim.Element, vp anim.Viewport, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, fontSize: 12, background: "#ffffff", labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	bg, err := colorful.Hex(r.background)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse background %q", r.background)
	}

	svg := RenderSVG(elems, vp, WithoutLabels(), WithBackground(bg.Hex()))
	img, err := render.ToImage(svg, r.scale)
	if err != nil {
		return nil, err
	}

	if r.labels {
		if err := r.drawLabels(img, elems, bg); err != nil {
			return nil, err
		}
	}
	return render.EncodePNG(img)
}

func (r pngRenderer) drawLabels(img *image.NRGBA, elems []anim.Element, bg colorful.Color) error {
	fnt, err := goRegular()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    r.fontSize * r.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	defer face.Close()

	m := face.Metrics()
	shift := (m.Ascent - m.Descent).Ceil() / 2

	for _, el := range elems {
		if !el.ShowLabel || el.Opacity <= 0 {
			continue
		}
		maxW := (el.Rect.Size.X - 4) * r.scale
		text := measureFit(face, el.Label, maxW)
		if text == "" {
			continue
		}
		x := int(math.Round((el.Rect.Pos.X + 2) * r.scale))
		y := int(math.Round(el.Rect.Center().Y*r.scale)) + shift

		fg := textOn(fill(el.Color, el.HasColor, el.Opacity, bg))
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(fg),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
		}
		d.DrawString(text)
	}
	return nil
}

// measureFit truncates label until it renders no wider than maxW pixels.
func measureFit(face font.Face, label string, maxW float64) string {
	if maxW <= 0 {
		return ""
	}
	n := len([]rune(label))
	for ; n > 0; n-- {
		text := fitLabel(label, n)
		if text == "" {
			return ""
		}
		if float64(font.MeasureString(face, text).Ceil()) <= maxW {
			return text
		}
	}
	return ""
}
