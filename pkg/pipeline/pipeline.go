// Package pipeline provides the core visualization pipeline for flametower.
//
// This package implements the complete load → layout → render pipeline that
// the CLI commands share. By centralizing this logic, static renders and the
// interactive viewer agree on defaults and validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Import a call tree (JSON or folded stacks) or generate one,
//     then propagate inclusive weights
//  2. Layout: Compute flamechart rectangles in unit space
//  3. Render: Fit (or zoom to the focused node), settle the chosen render
//     strategy on a scene, and paint the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "profile.folded",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be read from a TOML, YAML or JSON file with [LoadOptions];
// zero values are replaced by defaults before validation.
package pipeline

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	validator "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI commands
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 1200.0

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultFPS is the frame rate of the interactive viewer.
	DefaultFPS = 60

	// DefaultMaxFrames bounds how long a static render lets a strategy settle.
	DefaultMaxFrames = 2000

	// DefaultBaseColor is the flamechart hue.
	DefaultBaseColor = "#ff0000"
)

// Visualization types.
const (
	VizTypeFlame    = "flame"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeFlame

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeFlame:    true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// Zero values mean "use the default".
type Options struct {
	// Load options
	Input    string `toml:"input" yaml:"input" json:"input,omitempty"`
	Format   string `toml:"format" yaml:"format" json:"format,omitempty" validate:"omitempty,oneof=json folded"`
	Generate bool   `toml:"generate" yaml:"generate" json:"generate,omitempty"`
	MaxDepth int    `toml:"max_depth" yaml:"max_depth" json:"max_depth,omitempty" validate:"gte=0"`
	Fanout   int    `toml:"fanout" yaml:"fanout" json:"fanout,omitempty" validate:"gte=0"`
	MaxNodes int    `toml:"max_nodes" yaml:"max_nodes" json:"max_nodes,omitempty" validate:"gte=0"`
	Seed     uint64 `toml:"seed" yaml:"seed" json:"seed,omitempty"`

	// Layout options
	VizType       string  `toml:"viz_type" yaml:"viz_type" json:"viz_type,omitempty" validate:"oneof=flame nodelink"`
	RowHeight     float64 `toml:"row_height" yaml:"row_height" json:"row_height,omitempty" validate:"gt=0"`
	WidthScale    float64 `toml:"width_scale" yaml:"width_scale" json:"width_scale,omitempty" validate:"gt=0"`
	ColorExponent float64 `toml:"color_exponent" yaml:"color_exponent" json:"color_exponent,omitempty" validate:"gt=0"`
	BaseColor     string  `toml:"base_color" yaml:"base_color" json:"base_color,omitempty" validate:"hexcolor"`

	// Render options
	Width        float64  `toml:"width" yaml:"width" json:"width,omitempty" validate:"gt=0"`
	Height       float64  `toml:"height" yaml:"height" json:"height,omitempty" validate:"gte=0"` // 0 fits the layout
	Focus        string   `toml:"focus" yaml:"focus" json:"focus,omitempty"`
	Formats      []string `toml:"formats" yaml:"formats" json:"formats,omitempty" validate:"dive,oneof=svg png json dot"`
	Renderer     string   `toml:"renderer" yaml:"renderer" json:"renderer,omitempty"`
	Decay        float64  `toml:"decay" yaml:"decay" json:"decay,omitempty" validate:"gte=0,lte=25"`
	MinRectWidth float64  `toml:"min_rect_width" yaml:"min_rect_width" json:"min_rect_width,omitempty" validate:"gte=0"`
	MinTextWidth float64  `toml:"min_text_width" yaml:"min_text_width" json:"min_text_width,omitempty" validate:"gte=0"`
	Gap          float64  `toml:"gap" yaml:"gap" json:"gap,omitempty" validate:"gte=0"`
	Scale        float64  `toml:"scale" yaml:"scale" json:"scale,omitempty" validate:"gt=0,lte=8"`
	Background   string   `toml:"background" yaml:"background" json:"background,omitempty" validate:"omitempty,hexcolor"`
	NoLabels     bool     `toml:"no_labels" yaml:"no_labels" json:"no_labels,omitempty"`
	Detailed     bool     `toml:"detailed" yaml:"detailed" json:"detailed,omitempty"`
	FPS          int      `toml:"fps" yaml:"fps" json:"fps,omitempty" validate:"gte=1,lte=240"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" yaml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the loaded call tree with inclusive weights propagated.
	Root *tree.Node

	// Rects is the flamechart layout in unit space.
	Rects []layout.DrawRect

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	Depth       int
	TotalWeight float64
	RectCount   int
	Frames      int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid viz_type: %q (must be one of: flame, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// LoadOptions reads options from a TOML, YAML or JSON file, chosen by
// extension. Defaults are not applied.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if err := errors.ValidatePath(path); err != nil {
		return opts, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &opts)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opts)
	case ".json":
		err = json.Unmarshal(data, &opts)
	default:
		return opts, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	return opts, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if !o.Generate && o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "an input file or generate is required")
	}
	if o.Generate {
		def := tree.DefaultGenerateOptions
		if o.MaxDepth == 0 {
			o.MaxDepth = def.MaxDepth
		}
		if o.Fanout == 0 {
			o.Fanout = def.Fanout
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.RowHeight == 0 {
		o.RowHeight = layout.DefaultRowHeight
	}
	if o.WidthScale == 0 {
		o.WidthScale = layout.DefaultWidthScale
	}
	if o.ColorExponent == 0 {
		o.ColorExponent = layout.DefaultColorExponent
	}
	if o.BaseColor == "" {
		o.BaseColor = DefaultBaseColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = anim.KindIncremental.String()
	}
	if o.Decay == 0 {
		o.Decay = anim.DefaultDecay
	}
	if o.MinRectWidth == 0 {
		o.MinRectWidth = anim.DefaultMinRectWidth
	}
	if o.MinTextWidth == 0 {
		o.MinTextWidth = anim.DefaultMinTextWidth
	}
	if o.Gap == 0 {
		o.Gap = anim.DefaultGap
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field against its constraints. Defaults should be
// applied first.
func (o *Options) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	// Unknown strategies keep their own code.
	if _, err := o.Kind(); err != nil {
		return err
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Kind returns the render strategy.
func (o *Options) Kind() (anim.Kind, error) {
	return anim.ParseKind(o.Renderer)
}

// FrameInterval returns the time between frames at the configured rate.
func (o *Options) FrameInterval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// LayoutOptions translates the layout settings.
func (o *Options) LayoutOptions() ([]layout.Option, error) {
	opts := []layout.Option{
		layout.WithRowHeight(o.RowHeight),
		layout.WithWidthScale(o.WidthScale),
		layout.WithColorExponent(o.ColorExponent),
	}
	if o.BaseColor != "" {
		c, err := layout.ParseColor(o.BaseColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, layout.WithBaseColor(c))
	}
	return opts, nil
}

// AnimOptions translates the renderer settings.
func (o *Options) AnimOptions() []anim.Option {
	return []anim.Option{
		anim.WithMinRectWidth(o.MinRectWidth),
		anim.WithMinTextWidth(o.MinTextWidth),
		anim.WithGap(o.Gap),
	}
}

// GenerateOptions translates the generator settings.
func (o *Options) GenerateOptions() tree.GenerateOptions {
	return tree.GenerateOptions{MaxDepth: o.MaxDepth, Fanout: o.Fanout, Seed: o.Seed, MaxNodes: o.MaxNodes}
}

// Viewport returns the render viewport. A zero height fits the layout's
// full depth.
func (o *Options) Viewport(rects []layout.DrawRect) anim.Viewport {
	h := o.Height
	if h == 0 {
		h = max(layout.Extent(rects).Y, o.RowHeight)
	}
	return anim.Viewport{Width: o.Width, Height: h}
}

// Source describes where the tree comes from, for logs and hooks.
func (o *Options) Source() string {
	if o.Generate {
		return "generated"
	}
	return o.Input
}
