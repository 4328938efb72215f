package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Runner encapsulates pipeline execution with logging and hooks.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	root, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Root = root
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = tree.Count(root)
	result.Stats.Depth = tree.Depth(root)
	result.Stats.TotalWeight = root.WeightIncl

	r.Logger.Info("loaded tree",
		"source", opts.Source(),
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	rects, err := r.ComputeLayout(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Rects = rects
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RectCount = len(rects)

	r.Logger.Info("computed layout",
		"rects", len(rects),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, frames, err := r.Render(ctx, root, rects, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.Frames = frames
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load imports or generates the tree, reporting to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, opts Options) (root *tree.Node, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source())
	start := time.Now()
	defer func() {
		hooks.OnLoadComplete(ctx, opts.Source(), tree.Count(root), time.Since(start), err)
	}()

	return Load(ctx, opts)
}

// ComputeLayout lays out root, reporting to the pipeline hooks.
func (r *Runner) ComputeLayout(ctx context.Context, root *tree.Node, opts Options) (rects []layout.DrawRect, err error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := ValidateVizType(opts.VizType); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, tree.Count(root))
	start := time.Now()
	defer func() {
		hooks.OnLayoutComplete(ctx, len(rects), time.Since(start), err)
	}()

	return ComputeLayout(root, opts)
}

// Render paints the requested formats, reporting to the pipeline hooks.
// It returns the artifacts and the number of frames the renderer needed to
// settle.
func (r *Runner) Render(ctx context.Context, root *tree.Node, rects []layout.DrawRect, opts Options) (artifacts map[string][]byte, frames int, err error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	return Render(root, rects, opts)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
