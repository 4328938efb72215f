// Package geom holds the small value types shared by layout, view and the
// renderers. All values are copied freely; nothing here is owned.
package geom

import "math"

// Vec2 is a 2D point or extent.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the componentwise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.Pos.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Pos.X + r.Size.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Pos.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Size.X <= 0 || r.Size.Y <= 0 }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.Pos.X + r.Size.X/2, r.Pos.Y + r.Size.Y/2}
}

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge do not intersect, and neither does an empty rectangle.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Contains reports whether p lies inside r (left/top edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Inset shrinks the size of r by d on both axes, keeping the origin. Sizes
// never go below zero.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Pos:  r.Pos,
		Size: Vec2{max(0, r.Size.X-d), max(0, r.Size.Y-d)},
	}
}

// MaxDiff returns the largest absolute difference between any of the four
// channels (pos.x, pos.y, size.x, size.y) of a and b.
func MaxDiff(a, b Rect) float64 {
	return max(
		math.Abs(a.Pos.X-b.Pos.X),
		math.Abs(a.Pos.Y-b.Pos.Y),
		math.Abs(a.Size.X-b.Size.X),
		math.Abs(a.Size.Y-b.Size.Y),
	)
}
