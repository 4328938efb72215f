package sink

import (
	"encoding/json"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	transform *view.Transform
	renderer  string
	selected  string
}

// WithJSONTransform records the view transform the elements were placed with.
func WithJSONTransform(t view.Transform) JSONOption {
	return func(r *jsonRenderer) { r.transform = &t }
}

// WithJSONRenderer records the render strategy name.
func WithJSONRenderer(kind string) JSONOption { return func(r *jsonRenderer) { r.renderer = kind } }

// WithJSONSelected records the selected node id.
func WithJSONSelected(id string) JSONOption { return func(r *jsonRenderer) { r.selected = id } }

type jsonOutput struct {
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Renderer  string         `json:"renderer,omitempty"`
	Selected  string         `json:"selected,omitempty"`
	Transform *jsonTransform `json:"transform,omitempty"`
	Rects     []jsonRect     `json:"rects"`
}

type jsonTransform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
}

type jsonRect struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color,omitempty"`
	ShowLabel bool    `json:"show_label"`
	Opacity   float64 `json:"opacity"`
}

// RenderJSON serialises the elements in painting order, with viewport
// geometry and the optional metadata set by opts.
func RenderJSON(elems []anim.Element, vp anim.Viewport, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    vp.Width,
		Height:   vp.Height,
		Renderer: r.renderer,
		Selected: r.selected,
		Rects:    make([]jsonRect, 0, len(elems)),
	}
	if t := r.transform; t != nil {
		out.Transform = &jsonTransform{
			TranslateX: t.Translate.X,
			TranslateY: t.Translate.Y,
			ScaleX:     t.Scale.X,
			ScaleY:     t.Scale.Y,
		}
	}

	for _, el := range elems {
		jr := jsonRect{
			ID:        string(el.ID),
			Label:     el.Label,
			X:         el.Rect.Pos.X,
			Y:         el.Rect.Pos.Y,
			Width:     el.Rect.Size.X,
			Height:    el.Rect.Size.Y,
			ShowLabel: el.ShowLabel,
			Opacity:   el.Opacity,
		}
		if el.HasColor {
			jr.Color = el.Color.String()
		}
		out.Rects = append(out.Rects, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json")
	}
	return data, nil
}
