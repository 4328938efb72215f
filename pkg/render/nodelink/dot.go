package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/render"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes exclusive and inclusive weights in node labels.
	// When false, only the display label is shown.
	Detailed bool

	// MaxNodes stops the export after this many nodes in pre-order
	// (0 means no limit). Graphviz layout time grows quickly with size.
	MaxNodes int

	// BaseColor tints nodes by their share of the total, like the
	// flamechart. The zero value uses [layout.DefaultBaseColor].
	BaseColor layout.Color
}

// ToDOT converts a call tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Inclusive weights must already be propagated; node fill alpha follows the
// same curve as the flamechart layout.
func ToDOT(root *tree.Node, opts Options) string {
	base := opts.BaseColor
	if base == (layout.Color{}) {
		base = layout.DefaultBaseColor
	}
	total := 0.0
	if root != nil {
		total = root.WeightIncl
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []tree.Edge
	included := make(map[tree.ID]bool)
	tree.Walk(root, func(n *tree.Node, _ int) bool {
		if opts.MaxNodes > 0 && len(included) >= opts.MaxNodes {
			return false
		}
		included[n.ID] = true
		attrs := fmtAttrs(n, fmtLabel(n, total, opts.Detailed), base, total)
		fmt.Fprintf(&buf, "  %q [%s];\n", string(n.ID), strings.Join(attrs, ", "))
		for _, c := range n.Children {
			edges = append(edges, tree.Edge{From: n.ID, To: c.ID})
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		if included[e.To] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", string(e.From), string(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, total float64, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}
	share := 0.0
	if total > 0 {
		share = 100 * n.WeightIncl / total
	}
	parts := []string{
		fmt.Sprintf("self: %s", strconv.FormatFloat(n.WeightExcl, 'g', 6, 64)),
		fmt.Sprintf("total: %s (%.2f%%)", strconv.FormatFloat(n.WeightIncl, 'g', 6, 64), share),
	}
	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tree.Node, label string, base layout.Color, total float64) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	frac := 0.0
	if total > 0 && !math.IsNaN(total) {
		frac = n.WeightIncl / total
	}
	alpha := math.Pow(max(frac, 0), layout.DefaultColorExponent)
	attrs = append(attrs, fmt.Sprintf("fillcolor=%q", base.WithAlpha(alpha).Hex()))
	if n.IsLeaf() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
// Graphviz text is not rasterised.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
