package anim

import (
	"math"
	"time"

	"github.com/matzehuels/flametower/pkg/errors"
)

const (
	DefaultDecay        = 16.0
	MaxDecay            = 25.0
	DefaultMinRectWidth = 2.0
	DefaultMinTextWidth = 8.0
	DefaultGap          = 2.0
	DefaultSnapEpsilon  = 0.1
	DefaultStopEpsilon  = 0.001
	DefaultTransition   = 300 * time.Millisecond
)

// SpringProfile is a mass-spring-damper configuration.
type SpringProfile struct {
	Tension  float64
	Friction float64
	Mass     float64
}

// GentleSpring is a soft, slightly underdamped profile.
var GentleSpring = SpringProfile{Tension: 120, Friction: 14, Mass: 1}

type config struct {
	minRectWidth float64
	minTextWidth float64
	gap          float64
	snapEps      float64
	stopEps      float64
	transition   time.Duration
	spring       SpringProfile
	clock        func() time.Time
}

func defaultConfig() config {
	return config{
		minRectWidth: DefaultMinRectWidth,
		minTextWidth: DefaultMinTextWidth,
		gap:          DefaultGap,
		snapEps:      DefaultSnapEpsilon,
		stopEps:      DefaultStopEpsilon,
		transition:   DefaultTransition,
		spring:       GentleSpring,
		clock:        time.Now,
	}
}

// Option configures a renderer. Options a strategy does not use are ignored.
type Option func(*config)

// WithMinRectWidth sets the pixel width below which a rectangle is culled
// (incremental) or faded out (spring).
func WithMinRectWidth(px float64) Option { return func(c *config) { c.minRectWidth = px } }

// WithMinTextWidth sets the pixel width below which labels are hidden.
func WithMinTextWidth(px float64) Option { return func(c *config) { c.minTextWidth = px } }

// WithGap sets the margin subtracted from every element's size.
func WithGap(px float64) Option { return func(c *config) { c.gap = px } }

// WithSnapEpsilon sets the per-rectangle error below which the current
// rectangle jumps to its target.
func WithSnapEpsilon(eps float64) Option { return func(c *config) { c.snapEps = eps } }

// WithStopEpsilon sets the global error below which the frame loop stops.
func WithStopEpsilon(eps float64) Option { return func(c *config) { c.stopEps = eps } }

// WithTransition sets the duration declarative elements ask the host to
// interpolate over.
func WithTransition(d time.Duration) Option { return func(c *config) { c.transition = d } }

// WithSpring sets the spring strategy's profile.
func WithSpring(p SpringProfile) Option { return func(c *config) { c.spring = p } }

// WithClock replaces time.Now as the time source used when arming the loop.
func WithClock(now func() time.Time) Option { return func(c *config) { c.clock = now } }

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// checkDecay rejects decay speeds the exponential step cannot use.
func checkDecay(decay float64) error {
	if math.IsNaN(decay) || math.IsInf(decay, 0) || decay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "decay speed must be a finite value >= 0, got %v", decay)
	}
	return nil
}

// ClampDecay limits decay to the interactive range [0, MaxDecay].
func ClampDecay(decay float64) float64 {
	if math.IsNaN(decay) {
		return DefaultDecay
	}
	return math.Max(0, math.Min(MaxDecay, decay))
}
