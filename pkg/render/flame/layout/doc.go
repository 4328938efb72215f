// Package layout converts a weighted tree into flamechart rectangles.
//
// # Unit Space
//
// [Build] produces one [DrawRect] per node in a coordinate system that is
// independent of any viewport: a node is WidthScale × WeightIncl wide and
// RowHeight tall, children hang one row below their parent and are packed
// left to right in sibling order. The view package maps unit space to
// pixels.
//
// # Labels and Colour
//
// Each rectangle is labelled "name (12.34%)" with the node's share of the
// total weight. Its fill is the base colour with alpha share^ColorExponent;
// the concave curve keeps small frames visible.
//
//	rects := layout.Build(root, geom.Vec2{}, tree.Propagate(root))
//
// Build is pure and iterative, so it is safe for very deep trees and may be
// called concurrently on the same tree.
package layout
