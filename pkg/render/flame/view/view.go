// Package view maps unit-space rectangles to viewport pixels.
//
// A [Transform] translates first and scales second, per axis:
//
//	pos'  = (pos + translate) * scale
//	size' = size * scale
//
// Translating in unit space before scaling is what makes "zoom to a
// rectangle" a plain translate-to-origin followed by a scale. Rows are never
// scaled vertically by [Fit] or [ZoomTo]; a frame keeps its pixel height at
// every zoom level.
package view

import (
	"math"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
)

// Transform is an independent per-axis pan and zoom.
type Transform struct {
	Translate geom.Vec2
	Scale     geom.Vec2
}

// Identity returns the transform that leaves rectangles unchanged.
func Identity() Transform {
	return Transform{Scale: geom.Vec2{X: 1, Y: 1}}
}

// Apply maps r through t.
func Apply(r geom.Rect, t Transform) geom.Rect {
	return geom.Rect{
		Pos:  r.Pos.Add(t.Translate).Mul(t.Scale),
		Size: r.Size.Mul(t.Scale),
	}
}

// Invert maps a viewport point back into unit space. A zero scale on an
// axis maps that coordinate to -translate.
func Invert(p geom.Vec2, t Transform) geom.Vec2 {
	return geom.Vec2{
		X: safeDiv(p.X, t.Scale.X) - t.Translate.X,
		Y: safeDiv(p.Y, t.Scale.Y) - t.Translate.Y,
	}
}

// Fit returns the transform that makes the widest rectangle span exactly
// viewportWidth pixels. An empty set, or one whose right edge is not
// positive, yields a horizontal scale of 1.
func Fit(rects []layout.DrawRect, viewportWidth float64) Transform {
	right := layout.Extent(rects).X
	return Transform{Scale: geom.Vec2{X: scaleFor(viewportWidth, right), Y: 1}}
}

// ZoomTo returns the transform that moves target's origin to (0, 0) and
// stretches its width to viewportWidth. A zero-width target yields a
// horizontal scale of 1.
func ZoomTo(target geom.Rect, viewportWidth float64) Transform {
	return Transform{
		Translate: target.Pos.Neg(),
		Scale:     geom.Vec2{X: scaleFor(viewportWidth, target.Size.X), Y: 1},
	}
}

// Pan returns t shifted by (dx, dy) viewport pixels.
func Pan(t Transform, dx, dy float64) Transform {
	t.Translate.X += safeDiv(dx, t.Scale.X)
	t.Translate.Y += safeDiv(dy, t.Scale.Y)
	return t
}

// Zoom returns t with its horizontal scale multiplied by factor, keeping the
// unit-space point under viewport x = anchor in place.
func Zoom(t Transform, factor, anchor float64) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) || t.Scale.X == 0 {
		return t
	}
	u := anchor/t.Scale.X - t.Translate.X
	t.Scale.X *= factor
	t.Translate.X = anchor/t.Scale.X - u
	return t
}

func scaleFor(viewport, extent float64) float64 {
	s := viewport / extent
	if extent <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
