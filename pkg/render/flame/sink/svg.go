package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flametower/pkg/render/flame/anim"
)

const svgStyle = `
    .frame { cursor: pointer; }
    .frame rect { stroke: none; }
    .frame:hover rect { stroke: #000; stroke-width: 1; }
    .frame text { font-family: Menlo, Consolas, monospace; pointer-events: none; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontSize   float64
	labels     bool
	title      string
	selected   string
}

// WithBackground sets the canvas colour (default white).
func WithBackground(hex string) SVGOption { return func(r *svgRenderer) { r.background = hex } }

// WithFontSize sets the label font size in pixels (default 12).
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithoutLabels omits text; the PNG sink draws labels itself.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithTitle adds a document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithSelected outlines the element with the given id.
func WithSelected(id string) SVGOption { return func(r *svgRenderer) { r.selected = id } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{background: "#ffffff", fontSize: 12, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG paints elements onto a viewport-sized SVG canvas in painting
// order. Fills use the base colour with fill-opacity so the output stays
// readable by rasterisers that do not parse rgba(). Labels are truncated to
// the element width; hidden labels are omitted.
func RenderSVG(elems []anim.Element, vp anim.Viewport, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	if r.labels {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", vp.Width, vp.Height, r.background)

	charW := r.fontSize * 0.6
	for _, el := range elems {
		if el.Opacity <= 0 {
			continue
		}
		renderFrame(&buf, r, el, charW)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFrame(buf *bytes.Buffer, r svgRenderer, el anim.Element, charW float64) {
	x, y := el.Rect.Pos.X, el.Rect.Pos.Y
	w, h := el.Rect.Size.X, el.Rect.Size.Y

	fmt.Fprintf(buf, `  <g class="frame" id="frame-%s">`+"\n", html.EscapeString(string(el.ID)))
	if r.labels {
		fmt.Fprintf(buf, "    <title>%s</title>\n", html.EscapeString(el.Label))
	}

	fillAttr := `fill="none"`
	if el.HasColor {
		fillAttr = fmt.Sprintf(`fill="%s" fill-opacity="%.4f"`, baseHex(el), el.Color.A*el.Opacity)
	}
	stroke := ""
	if r.selected != "" && string(el.ID) == r.selected {
		stroke = ` stroke="#000000" stroke-width="2"`
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s%s/>`+"\n", x, y, w, h, fillAttr, stroke)

	if r.labels && el.ShowLabel {
		if text := fitLabel(el.Label, int((w-4)/charW)); text != "" {
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" dominant-baseline="middle">%s</text>`+"\n",
				x+2, y+h/2, r.fontSize, html.EscapeString(text))
		}
	}
	buf.WriteString("  </g>\n")
}

func baseHex(el anim.Element) string {
	return fmt.Sprintf("#%02x%02x%02x", el.Color.R, el.Color.G, el.Color.B)
}
