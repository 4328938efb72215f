// Package nodelink renders call trees as traditional node-link diagrams.
//
// # Overview
//
// Each call-tree node becomes a Graphviz box with arrows to its callees,
// coloured by inclusive weight like its flamechart rectangle.
// It's an alternative to the flamechart when the shape of the call tree
// matters more than the weights.
//
// # Usage
//
// Propagate weights, convert the tree to DOT format, then render to SVG:
//
//	tree.Propagate(root)
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// [Options] fields:
//
//   - Detailed: node labels include exclusive and inclusive weights
//   - MaxNodes: cap on exported nodes, in pre-order
//   - BaseColor: hue used for the share-of-total tint
//
// Leaves are drawn with a double outline.
//
// # Dependencies
//
// Layout runs in-process through [github.com/goccy/go-graphviz]; PNG output
// goes through [render.ToPNG].
package nodelink
