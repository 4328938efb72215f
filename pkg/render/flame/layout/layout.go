package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/tree"
)

const (
	DefaultRowHeight     = 20.0
	DefaultWidthScale    = 2.0
	DefaultColorExponent = 0.4
)

// DrawRect is a laid-out rectangle in unit space tagged with the node it
// was produced from. ID equals Node.ID and is stable across layout passes.
type DrawRect struct {
	geom.Rect
	ID       tree.ID
	Node     *tree.Node
	Label    string
	Color    Color
	HasColor bool
}

// Options holds the presentation constants of a layout pass.
type Options struct {
	RowHeight     float64
	WidthScale    float64
	ColorExponent float64
	BaseColor     Color
}

// Option configures a layout pass.
type Option func(*Options)

func WithRowHeight(h float64) Option     { return func(o *Options) { o.RowHeight = h } }
func WithWidthScale(s float64) Option    { return func(o *Options) { o.WidthScale = s } }
func WithColorExponent(k float64) Option { return func(o *Options) { o.ColorExponent = k } }
func WithBaseColor(c Color) Option       { return func(o *Options) { o.BaseColor = c } }

// DefaultOptions returns the constants used when no Option is given.
func DefaultOptions() Options {
	return Options{
		RowHeight:     DefaultRowHeight,
		WidthScale:    DefaultWidthScale,
		ColorExponent: DefaultColorExponent,
		BaseColor:     DefaultBaseColor,
	}
}

// Build lays out the subtree rooted at root as one rectangle per node, in
// pre-order. The root is placed at origin; each child sits one row below its
// parent, packed left to right after its preceding siblings with no gap.
//
// Widths are WidthScale × WeightIncl, so [tree.Propagate] must have run.
// Labels and colours use the node's share of total. A total that is zero,
// negative or NaN yields a 0% share rather than NaN. Build does not modify
// the tree.
func Build(root *tree.Node, origin geom.Vec2, total float64, opts ...Option) []DrawRect {
	if root == nil {
		return nil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	type entry struct {
		n   *tree.Node
		pos geom.Vec2
	}
	rects := make([]DrawRect, 0, 64)
	stack := []entry{{root, origin}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		frac := share(e.n.WeightIncl, total)
		rects = append(rects, DrawRect{
			Rect: geom.Rect{
				Pos:  e.pos,
				Size: geom.Vec2{X: o.width(e.n), Y: o.RowHeight},
			},
			ID:       e.n.ID,
			Node:     e.n,
			Label:    fmt.Sprintf("%s (%.2f%%)", e.n.DisplayLabel(), 100*frac),
			Color:    o.BaseColor.WithAlpha(math.Pow(frac, o.ColorExponent)),
			HasColor: true,
		})

		// Children are pushed in reverse so the first sibling pops first.
		offsets := make([]float64, len(e.n.Children))
		x := e.pos.X
		for i, c := range e.n.Children {
			offsets[i] = x
			x += o.width(c)
		}
		for i := len(e.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{
				n:   e.n.Children[i],
				pos: geom.Vec2{X: offsets[i], Y: e.pos.Y + o.RowHeight},
			})
		}
	}
	return rects
}

func (o Options) width(n *tree.Node) float64 {
	w := o.WidthScale * n.WeightIncl
	if w <= 0 || math.IsNaN(w) {
		return 0
	}
	return w
}

// share returns weight/total, or 0 when the ratio is undefined.
func share(weight, total float64) float64 {
	if total <= 0 || math.IsNaN(total) {
		return 0
	}
	f := weight / total
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}

// Extent returns the largest right and bottom edge over rects.
func Extent(rects []DrawRect) geom.Vec2 {
	var ext geom.Vec2
	for _, r := range rects {
		ext.X = max(ext.X, r.Right())
		ext.Y = max(ext.Y, r.Bottom())
	}
	return ext
}

// Index maps each rectangle's id to its position in rects.
func Index(rects []DrawRect) map[tree.ID]int {
	idx := make(map[tree.ID]int, len(rects))
	for i, r := range rects {
		idx[r.ID] = i
	}
	return idx
}
