package anim

import (
	"math"
	"time"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
	"github.com/matzehuels/flametower/pkg/tree"
)

const (
	springStep     = time.Millisecond
	maxSpringSteps = 250
)

// spring is one damped oscillator channel.
type spring struct {
	x, v, to float64
}

func (s *spring) step(p SpringProfile, h float64) {
	a := (-p.Tension*(s.x-s.to) - p.Friction*s.v) / p.Mass
	s.v += a * h
	s.x += s.v * h
}

func (s *spring) atRest(eps float64) bool {
	return math.Abs(s.x-s.to) < eps && math.Abs(s.v) < eps
}

// springRect animates pos.x, pos.y, size.x, size.y and opacity.
type springRect [5]spring

const opacityChannel = 4

func newSpringRect(from, to geom.Rect, minWidth float64) springRect {
	return springRect{
		{x: from.Pos.X, to: to.Pos.X},
		{x: from.Pos.Y, to: to.Pos.Y},
		{x: from.Size.X, to: to.Size.X},
		{x: from.Size.Y, to: to.Size.Y},
		{x: opacityAt(from, minWidth), to: opacityAt(to, minWidth)},
	}
}

// opacityAt is 0 for rectangles narrower than minWidth and 1 otherwise.
func opacityAt(r geom.Rect, minWidth float64) float64 {
	if r.Size.X < minWidth {
		return 0
	}
	return 1
}

func (s *springRect) opacity() float64 {
	return min(max(s[opacityChannel].x, 0), 1)
}

func (s *springRect) rect() geom.Rect {
	return geom.Rect{
		Pos:  geom.Vec2{X: s[0].x, Y: s[1].x},
		Size: geom.Vec2{X: s[2].x, Y: s[3].x},
	}
}

// Spring animates each rectangle with a mass-spring-damper per channel.
//
// Springs are indexed by position in the rectangle list, not by id, and are
// rebuilt on every transition from the previous transform's placement to the
// new one. A transition that arrives mid-flight therefore restarts from the
// old resting position. Rectangles that end up narrower than the minimum
// width fade to opacity 0 on their own spring instead of being culled.
type Spring struct {
	surface Surface
	cfg     config
	loop    Loop

	prev    view.Transform
	hasPrev bool

	rects    []layout.DrawRect
	springs  []springRect
	attached map[tree.ID]bool
}

// NewSpring returns a spring renderer painting onto s.
func NewSpring(s Surface, opts ...Option) *Spring {
	return &Spring{surface: s, cfg: newConfig(opts), attached: make(map[tree.ID]bool)}
}

// Transition rebuilds every spring and arms the loop when any of them has
// somewhere to go. The viewport and decay speed are ignored.
func (s *Spring) Transition(rects []layout.DrawRect, t view.Transform, _ Viewport, _ float64) error {
	next := make(map[tree.ID]struct{}, len(rects))
	for _, r := range rects {
		if _, dup := next[r.ID]; dup {
			return errors.StateConsistency("duplicate rectangle id %q in snapshot", r.ID)
		}
		next[r.ID] = struct{}{}
	}
	for _, r := range s.rects {
		if _, keep := next[r.ID]; !keep && s.attached[r.ID] {
			s.surface.Detach(r.ID)
			delete(s.attached, r.ID)
		}
	}

	from := t
	if s.hasPrev {
		from = s.prev
	}
	s.springs = make([]springRect, len(rects))
	for i, r := range rects {
		s.springs[i] = newSpringRect(view.Apply(r.Rect, from), view.Apply(r.Rect, t), s.cfg.minRectWidth)
	}
	s.rects = rects
	s.prev, s.hasPrev = t, true

	if err := s.emit(); err != nil {
		return err
	}
	if !s.atRest() {
		s.loop.Start(s.cfg.clock())
	}
	observability.Frame().OnTransition(KindSpring.String(), len(rects), len(s.attached))
	return nil
}

// Frame integrates every spring up to now in fixed sub-steps.
func (s *Spring) Frame(now time.Time) (bool, error) {
	dt, ok := s.loop.Advance(now)
	if !ok {
		return false, nil
	}

	h := springStep.Seconds()
	n := min(maxSpringSteps, int(math.Round(dt/h)))
	for i := range s.springs {
		for c := range s.springs[i] {
			for range n {
				s.springs[i][c].step(s.cfg.spring, h)
			}
		}
	}

	var maxErr float64
	for i := range s.springs {
		for _, ch := range s.springs[i] {
			maxErr = max(maxErr, math.Abs(ch.x-ch.to))
		}
	}

	rest := s.atRest()
	if rest {
		for i := range s.springs {
			for c := range s.springs[i] {
				s.springs[i][c].x = s.springs[i][c].to
				s.springs[i][c].v = 0
			}
		}
	}
	if err := s.emit(); err != nil {
		s.loop.Stop()
		return false, err
	}

	hooks := observability.Frame()
	hooks.OnFrame(KindSpring.String(), time.Duration(dt*float64(time.Second)), maxErr, len(s.attached))
	if rest {
		frames := s.loop.Frames()
		s.loop.Stop()
		hooks.OnConverged(KindSpring.String(), frames)
		return false, nil
	}
	return true, nil
}

// Running reports whether the host should keep calling Frame.
func (s *Spring) Running() bool { return s.loop.Running() }

// Close stops the loop and detaches every element.
func (s *Spring) Close() {
	s.loop.Stop()
	for _, r := range s.rects {
		if s.attached[r.ID] {
			s.surface.Detach(r.ID)
			delete(s.attached, r.ID)
		}
	}
	s.rects, s.springs = nil, nil
}

func (s *Spring) atRest() bool {
	for i := range s.springs {
		for _, ch := range s.springs[i] {
			if !ch.atRest(s.cfg.stopEps) {
				return false
			}
		}
	}
	return true
}

func (s *Spring) emit() error {
	for i, r := range s.rects {
		px := s.springs[i].rect()
		el := elementFor(r, px, s.cfg.gap)
		el.ShowLabel = px.Size.X >= s.cfg.minTextWidth
		el.Opacity = s.springs[i].opacity()
		if s.attached[r.ID] {
			if !s.surface.Update(el) {
				return errors.StateConsistency("element for %q missing from surface", r.ID)
			}
			continue
		}
		s.surface.Attach(el)
		s.attached[r.ID] = true
	}
	return nil
}
