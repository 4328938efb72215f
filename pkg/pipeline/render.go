package pipeline

import (
	"bytes"
	"fmt"

	fio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/selection"
	"github.com/matzehuels/flametower/pkg/render/flame/sink"
	"github.com/matzehuels/flametower/pkg/render/nodelink"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Frame is a settled flamechart: the scene a renderer painted and the view
// it painted with.
type Frame struct {
	Scene      *sink.Scene
	Viewport   anim.Viewport
	Controller *selection.Controller
	Frames     int
}

// Settle places rects on a fresh scene. The view is fitted, or zoomed to
// opts.Focus when it names a rectangle, and the configured strategy is run
// to rest.
func Settle(rects []layout.DrawRect, opts Options) (*Frame, error) {
	kind, err := opts.Kind()
	if err != nil {
		return nil, err
	}
	scene := sink.NewScene()
	r, err := anim.New(kind, scene, opts.AnimOptions()...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	vp := opts.Viewport(rects)
	c := selection.New(rects, vp.Width)
	if opts.Focus != "" {
		c.Click(tree.ID(opts.Focus))
		if c.Selection() == nil {
			opts.Logger.Warn("focus node not found, showing the whole tree", "focus", opts.Focus)
		}
	}

	if err = r.Transition(rects, c.Transform(), vp, opts.Decay); err != nil {
		return nil, err
	}
	n, err := anim.Settle(r, opts.FrameInterval(), DefaultMaxFrames)
	if err != nil {
		return nil, err
	}
	return &Frame{Scene: scene, Viewport: vp, Controller: c, Frames: n}, nil
}

// Render generates output artifacts in the requested formats.
func Render(root *tree.Node, rects []layout.DrawRect, opts Options) (map[string][]byte, int, error) {
	if opts.IsNodelink() {
		artifacts, err := RenderNodelink(root, opts)
		return artifacts, 0, err
	}
	return renderFlame(root, rects, opts)
}

// RenderNodelink generates node-link outputs directly from the tree.
func RenderNodelink(root *tree.Node, opts Options) (map[string][]byte, error) {
	base, err := layout.ParseColor(opts.BaseColor)
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed, MaxNodes: opts.MaxNodes, BaseColor: base})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			var buf bytes.Buffer
			err = fio.WriteJSON(root, &buf)
			data = buf.Bytes()
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFlame(root *tree.Node, rects []layout.DrawRect, opts Options) (map[string][]byte, int, error) {
	f, err := Settle(rects, opts)
	if err != nil {
		return nil, 0, err
	}
	elems := f.Scene.Elements()
	selected := ""
	if sel := f.Controller.Selection(); sel != nil {
		selected = string(sel.ID)
	}
	title := ""
	if root != nil {
		title = root.DisplayLabel()
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			svgOpts := []sink.SVGOption{sink.WithTitle(title), sink.WithSelected(selected)}
			if opts.Background != "" {
				svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
			}
			if opts.NoLabels {
				svgOpts = append(svgOpts, sink.WithoutLabels())
			}
			data = sink.RenderSVG(elems, f.Viewport, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
			if opts.Background != "" {
				pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
			}
			if opts.NoLabels {
				pngOpts = append(pngOpts, sink.WithoutPNGLabels())
			}
			data, err = sink.RenderPNG(elems, f.Viewport, pngOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(elems, f.Viewport,
				sink.WithJSONTransform(f.Controller.Transform()),
				sink.WithJSONRenderer(opts.Renderer),
				sink.WithJSONSelected(selected))
		case FormatDOT:
			base, perr := layout.ParseColor(opts.BaseColor)
			if perr != nil {
				return nil, 0, perr
			}
			data = []byte(nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed, MaxNodes: opts.MaxNodes, BaseColor: base}))
		default:
			return nil, 0, ValidateFormat(format)
		}

		if err != nil {
			return nil, 0, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, f.Frames, nil
}
