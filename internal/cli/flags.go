package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/flametower/pkg/pipeline"
)

// addLoadFlags registers the input and generator flags.
func addLoadFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVar(&opts.Format, "input-format", opts.Format, "input format: json, folded (default: by extension)")
	fs.BoolVar(&opts.Generate, "generate", opts.Generate, "use a random call tree instead of an input file")
	fs.IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "generated tree depth (default 16)")
	fs.IntVar(&opts.Fanout, "fanout", opts.Fanout, "maximum children per generated node (default 3)")
	fs.IntVar(&opts.MaxNodes, "max-nodes", opts.MaxNodes, "cap on generated (and nodelink) nodes, 0 for none")
	fs.Uint64Var(&opts.Seed, "seed", opts.Seed, "generator seed")
}

// addLayoutFlags registers the flamechart layout flags.
func addLayoutFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.Float64Var(&opts.RowHeight, "row-height", opts.RowHeight, "row height in unit space (default 20)")
	fs.Float64Var(&opts.WidthScale, "width-scale", opts.WidthScale, "unit-space width per weight unit (default 2)")
	fs.Float64Var(&opts.ColorExponent, "color-exponent", opts.ColorExponent, "alpha exponent over the weight fraction (default 0.4)")
	fs.StringVar(&opts.BaseColor, "color", opts.BaseColor, "base colour as #rrggbb (default #ff0000)")
}

// addAnimFlags registers the render strategy flags.
func addAnimFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVar(&opts.Renderer, "renderer", opts.Renderer, "render strategy: incremental (default), declarative, spring")
	fs.Float64Var(&opts.Decay, "decay", opts.Decay, "decay speed of the incremental renderer, 0-25 (default 16)")
	fs.Float64Var(&opts.MinRectWidth, "min-rect-width", opts.MinRectWidth, "hide rectangles narrower than this many pixels (default 2)")
	fs.Float64Var(&opts.MinTextWidth, "min-text-width", opts.MinTextWidth, "hide labels on rectangles narrower than this (default 8)")
	fs.Float64Var(&opts.Gap, "gap", opts.Gap, "pixels between adjacent rectangles (default 2)")
}
