// Package sink turns renderer output into pixels, cells and documents.
//
// [Scene] is the retained element store every renderer draws into: it
// implements [anim.Surface], keeps painting order (attach order) and answers
// hit tests for click handling. Painters read a snapshot of its elements:
//
//   - [RenderSVG]: standalone SVG document
//   - [RenderPNG]: rasterised SVG plus labels drawn with the Go fonts
//   - [RenderJSON]: element geometry for other tools
//   - [Terminal]: lipgloss-styled character grid for the interactive viewer
//
// # Usage
//
//	scene := sink.NewScene()
//	r, _ := anim.New(anim.KindIncremental, scene)
//	_ = r.Transition(rects, t, vp, anim.DefaultDecay)
//	svg := sink.RenderSVG(scene.Elements(), vp)
//
// Colours with alpha are flattened onto the canvas background for opaque
// targets (PNG, terminal); SVG keeps the alpha as fill-opacity.
package sink
