// Package render provides visualization rendering for call trees.
//
// # Overview
//
// This package contains the shared rasterisation step used by the
// renderers below it:
//
//   - Format conversion (SVG to image/PNG)
//   - Flamechart visualization (in the flame subpackages)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// [ToImage] and [ToPNG] rasterise an SVG in-process using oksvg and rasterx,
// rendering at twice the target size and downscaling with a Lanczos filter.
// Text elements are not rasterised; the flamechart PNG sink draws its labels
// on the image returned by [ToImage].
//
//	svg := sink.RenderSVG(scene.Elements(), vp)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Flamecharts
//
// Key flame subpackages:
//   - [flame/layout]: Rectangle geometry and colour per node
//   - [flame/view]: Translate/scale transforms, fit and zoom-to
//   - [flame/anim]: Incremental, declarative and spring renderers
//   - [flame/selection]: Click-to-zoom controller
//   - [flame/sink]: Output formats (SVG, PNG, JSON, terminal)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the call tree as a Graphviz diagram.
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [flame/layout]: github.com/matzehuels/flametower/pkg/render/flame/layout
// [flame/view]: github.com/matzehuels/flametower/pkg/render/flame/view
// [flame/anim]: github.com/matzehuels/flametower/pkg/render/flame/anim
// [flame/selection]: github.com/matzehuels/flametower/pkg/render/flame/selection
// [flame/sink]: github.com/matzehuels/flametower/pkg/render/flame/sink
// [nodelink]: github.com/matzehuels/flametower/pkg/render/nodelink
package render
