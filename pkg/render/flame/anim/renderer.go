package anim

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
)

// Renderer is the contract shared by the render strategies. Every strategy
// consumes the same unit-space rectangles and view transform.
type Renderer interface {
	// Transition installs a new target snapshot.
	Transition(rects []layout.DrawRect, t view.Transform, vp Viewport, decay float64) error
	// Frame advances the animation to now and reports whether more frames
	// are needed.
	Frame(now time.Time) (bool, error)
	// Running reports whether the host should keep calling Frame.
	Running() bool
	// Close stops any scheduled frames and releases every element.
	Close()
}

// DecaySetter is implemented by renderers whose convergence speed can change
// between transitions.
type DecaySetter interface {
	SetDecay(decay float64) error
}

var (
	_ DecaySetter = (*Engine)(nil)

	_ Renderer = (*Engine)(nil)
	_ Renderer = (*Declarative)(nil)
	_ Renderer = (*Spring)(nil)
)

// Kind selects a render strategy.
type Kind string

const (
	KindIncremental Kind = "incremental"
	KindDeclarative Kind = "declarative"
	KindSpring      Kind = "spring"
)

// Kinds lists every strategy in selector order.
func Kinds() []Kind {
	return []Kind{KindIncremental, KindDeclarative, KindSpring}
}

func (k Kind) String() string { return string(k) }

// Next returns the strategy after k in selector order, wrapping around.
func (k Kind) Next() Kind {
	kinds := Kinds()
	for i, kk := range kinds {
		if kk == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return KindIncremental
}

// ParseKind resolves a strategy name, ignoring case and surrounding space.
// Unknown names yield an UNSUPPORTED_RENDERER error.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, kk := range Kinds() {
		if k == kk {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupportedRenderer,
		"unsupported renderer %q (want incremental, declarative or spring)", s)
}

// New returns a renderer of the given kind painting onto s.
func New(kind Kind, s Surface, opts ...Option) (Renderer, error) {
	switch kind {
	case KindIncremental:
		return NewEngine(s, opts...), nil
	case KindDeclarative:
		return NewDeclarative(s, opts...), nil
	case KindSpring:
		return NewSpring(s, opts...), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedRenderer, "unsupported renderer %q", kind)
	}
}

// Run drives r from a ticker on the calling goroutine until it goes idle,
// a frame fails, or ctx is done.
func Run(ctx context.Context, r Renderer, interval time.Duration) error {
	if !r.Running() {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			more, err := r.Frame(now)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
	}
}

// Settle advances r with synthetic timestamps step apart until it goes idle,
// without waiting in real time. It gives up after maxFrames and returns the
// number of frames run.
func Settle(r Renderer, step time.Duration, maxFrames int) (int, error) {
	now := time.Now()
	frames := 0
	for r.Running() && frames < maxFrames {
		now = now.Add(step)
		frames++
		more, err := r.Frame(now)
		if err != nil {
			return frames, err
		}
		if !more {
			break
		}
	}
	return frames, nil
}
