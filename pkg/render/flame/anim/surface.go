package anim

import (
	"time"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Viewport is the visible pixel area. Rectangles outside
// [0, Width] × [0, Height] are culled by the incremental engine.
type Viewport struct {
	Width, Height float64
}

// Rect returns the viewport as a rectangle anchored at the origin.
func (v Viewport) Rect() geom.Rect {
	return geom.Rect{Size: geom.Vec2{X: v.Width, Y: v.Height}}
}

// Element is what a [Surface] is asked to paint for one rectangle.
type Element struct {
	ID tree.ID
	// Rect is in viewport pixels with the visual gap already subtracted.
	Rect      geom.Rect
	Color     layout.Color
	HasColor  bool
	Label     string
	ShowLabel bool
	// Opacity of the whole element; renderers that never fade set 1.
	Opacity float64
	// Transition asks the host to interpolate towards this state over the
	// given duration. Zero means apply immediately.
	Transition time.Duration
}

// Surface hosts the visual elements a renderer manages. Elements are keyed
// by ID; painting order is the order of Attach calls.
//
// Renderers only Update elements they attached. Update reports false when
// the surface has no element with that id, which renderers treat as a
// broken invariant.
type Surface interface {
	Attach(e Element)
	Update(e Element) bool
	Detach(id tree.ID)
}

func elementFor(r layout.DrawRect, px geom.Rect, gap float64) Element {
	return Element{
		ID:       r.ID,
		Rect:     px.Inset(gap),
		Color:    r.Color,
		HasColor: r.HasColor,
		Label:    r.Label,
		Opacity:  1,
	}
}
