// Package selection maps clicks on flamechart rectangles to view
// transforms.
//
// A [Controller] owns the current layout, the selected rectangle (if any)
// and the transform derived from them. Selecting a rectangle zooms to it;
// clearing the selection fits the whole layout to the viewport. The
// selection is always nil or a rectangle of the most recent layout.
package selection

import (
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Controller tracks selection and the resulting view transform.
// It is not safe for concurrent use.
type Controller struct {
	rects    []layout.DrawRect
	index    map[tree.ID]int
	width    float64
	selected int // index into rects, -1 when nothing is selected
	t        view.Transform
}

// New returns a controller for rects with nothing selected and the layout
// fitted to viewportWidth.
func New(rects []layout.DrawRect, viewportWidth float64) *Controller {
	c := &Controller{width: viewportWidth}
	c.SetRects(rects)
	return c
}

// Click selects the rectangle with the given id and zooms to it. An empty
// or unknown id clears the selection instead.
func (c *Controller) Click(id tree.ID) {
	i, ok := c.index[id]
	if id == "" || !ok {
		c.Clear()
		return
	}
	c.selected = i
	c.t = view.ZoomTo(c.rects[i].Rect, c.width)
}

// Clear drops the selection and fits the layout to the viewport.
func (c *Controller) Clear() {
	c.selected = -1
	c.t = view.Fit(c.rects, c.width)
}

// SetRects installs a new layout pass. Any selection refers to the old
// layout and is cleared.
func (c *Controller) SetRects(rects []layout.DrawRect) {
	c.rects = rects
	c.index = layout.Index(rects)
	c.Clear()
}

// Resize records a new viewport width. Without a selection the layout is
// refitted; an active selection keeps its transform until it is changed
// explicitly.
func (c *Controller) Resize(viewportWidth float64) {
	c.width = viewportWidth
	if c.selected < 0 {
		c.t = view.Fit(c.rects, c.width)
	}
}

// Selection returns the selected rectangle, or nil.
func (c *Controller) Selection() *layout.DrawRect {
	if c.selected < 0 {
		return nil
	}
	r := c.rects[c.selected]
	return &r
}

// Rects returns the current layout.
func (c *Controller) Rects() []layout.DrawRect { return c.rects }

// Transform returns the current view transform.
func (c *Controller) Transform() view.Transform { return c.t }

// SetTransform replaces the transform, as manual pan and zoom controls do.
// The selection is kept.
func (c *Controller) SetTransform(t view.Transform) { c.t = t }

// Pan shifts the view by (dx, dy) viewport pixels.
func (c *Controller) Pan(dx, dy float64) { c.t = view.Pan(c.t, dx, dy) }

// Zoom scales the view horizontally by factor around the viewport centre.
func (c *Controller) Zoom(factor float64) { c.t = view.Zoom(c.t, factor, c.width/2) }

// ViewportWidth returns the width transforms are computed for.
func (c *Controller) ViewportWidth() float64 { return c.width }
