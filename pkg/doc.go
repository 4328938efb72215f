// Package pkg provides the core libraries for Flametower flamechart
// visualization.
//
// # Overview
//
// Flametower turns a weighted call tree into a flamechart: one rectangle per
// frame, callers above callees, widths proportional to inclusive weight.
// Clicking a frame zooms to it, and every change of view is animated by one
// of three interchangeable render strategies.
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON / folded stacks / generator
//	         ↓
//	    [io], [tree] (build the tree, propagate inclusive weights)
//	         ↓
//	    [render/flame/layout] (unit-space rectangles and colours)
//	         ↓
//	    [render/flame/selection] + [render/flame/view] (click → transform)
//	         ↓
//	    [render/flame/anim] (incremental, declarative or spring transitions)
//	         ↓
//	    [render/flame/sink] (scene → terminal, SVG, PNG, JSON)
//
// # Quick Start
//
//	root, _ := io.ImportFile("profile.folded")
//	tree.Propagate(root)
//	rects := layout.Build(root, geom.Vec2{}, root.WeightIncl)
//
//	scene := sink.NewScene()
//	r, _ := anim.New(anim.KindIncremental, scene)
//	c := selection.New(rects, 1200)
//	c.Click("root;main;parse")
//	_ = r.Transition(rects, c.Transform(), anim.Viewport{Width: 1200, Height: 400}, anim.DefaultDecay)
//	_, _ = anim.Settle(r, time.Second/60, 2000)
//
//	svg := sink.RenderSVG(scene.Elements(), anim.Viewport{Width: 1200, Height: 400})
//
// # Main Packages
//
// [tree] - The weighted call tree, graph-to-tree construction, weight
// propagation and a seeded random generator.
//
// [io] - Graph JSON and folded-stack import, graph JSON export.
//
// [geom] - Vectors and axis-aligned rectangles.
//
// [render/flame/layout] - Flamechart rectangles in unit space.
//
// [render/flame/view] - Per-axis pan/zoom transforms, fit and zoom-to.
//
// [render/flame/selection] - Click handling and the current transform.
//
// [render/flame/anim] - The render strategies and their frame loop.
//
// [render/flame/sink] - The scene the strategies draw on and its painters.
//
// [render/nodelink] - Graphviz node-link export of the call tree.
//
// [render] - SVG rasterisation to PNG.
//
// [pipeline] - load → layout → render orchestration shared by CLI commands,
// with TOML/YAML/JSON options files.
//
// [observability] - Pipeline and frame event hooks.
//
// [errors] - Structured errors with stable codes.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/...
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/tree
// [io]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/io
// [geom]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/geom
// [render/flame/layout]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame/layout
// [render/flame/view]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame/view
// [render/flame/selection]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame/selection
// [render/flame/anim]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame/anim
// [render/flame/sink]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/flame/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flametower/pkg/errors
package pkg
