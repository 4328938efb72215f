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

// Engine is the incremental renderer. It keeps a current and a target
// rectangle per id, moves every current rectangle towards its target by
// exponential decay each frame, and only keeps surface elements for
// rectangles that are on screen and wide enough to see.
//
// Targets can be replaced at any rate; rectangles already in flight keep
// their current geometry and simply head for the new target.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	surface Surface
	cfg     config
	loop    Loop

	order    []tree.ID // ids of the latest snapshot, in layout order
	rects    map[tree.ID]layout.DrawRect
	current  map[tree.ID]geom.Rect
	target   map[tree.ID]geom.Rect
	attached map[tree.ID]bool

	viewport Viewport
	decay    float64
}

// NewEngine returns an idle engine painting onto s.
func NewEngine(s Surface, opts ...Option) *Engine {
	return &Engine{
		surface:  s,
		cfg:      newConfig(opts),
		rects:    make(map[tree.ID]layout.DrawRect),
		current:  make(map[tree.ID]geom.Rect),
		target:   make(map[tree.ID]geom.Rect),
		attached: make(map[tree.ID]bool),
		decay:    DefaultDecay,
	}
}

// Transition replaces the target snapshot.
//
// Ids absent from rects are detached and forgotten immediately. New ids
// start at their target so they appear without animating. Ids already
// tracked keep their current rectangle and get a new target. The viewport
// and decay speed take effect from the next frame. The loop is armed when
// any rectangle is away from its target.
func (e *Engine) Transition(rects []layout.DrawRect, t view.Transform, vp Viewport, decay float64) error {
	if err := checkDecay(decay); err != nil {
		return err
	}

	next := make(map[tree.ID]struct{}, len(rects))
	order := make([]tree.ID, 0, len(rects))
	for _, r := range rects {
		if _, dup := next[r.ID]; dup {
			return errors.StateConsistency("duplicate rectangle id %q in snapshot", r.ID)
		}
		next[r.ID] = struct{}{}
		order = append(order, r.ID)
	}

	for _, id := range e.order {
		if _, keep := next[id]; keep {
			continue
		}
		e.forget(id)
	}

	for _, r := range rects {
		tgt := view.Apply(r.Rect, t)
		if _, tracked := e.current[r.ID]; !tracked {
			e.current[r.ID] = tgt
		}
		e.target[r.ID] = tgt
		e.rects[r.ID] = r
	}
	e.order = order
	e.viewport = vp
	e.decay = decay

	var maxErr float64
	for _, id := range e.order {
		cur := e.current[id]
		maxErr = max(maxErr, geom.MaxDiff(cur, e.target[id]))
		if err := e.reconcile(id, cur); err != nil {
			return err
		}
	}
	if maxErr >= e.cfg.stopEps {
		e.loop.Start(e.cfg.clock())
	}
	observability.Frame().OnTransition(KindIncremental.String(), len(e.order), len(e.attached))
	return nil
}

// SetDecay changes the convergence speed without touching any target. A
// running animation picks it up on its next frame.
func (e *Engine) SetDecay(decay float64) error {
	if err := checkDecay(decay); err != nil {
		return err
	}
	e.decay = decay
	return nil
}

// Frame advances the animation to now. It returns false once the loop is
// idle, either because it already was or because this frame converged.
//
// All rectangles in one frame use the same dt and the same targets. A
// tracked id without a target, or an attached element the surface no longer
// has, stops the loop and returns an INTERNAL_STATE error.
func (e *Engine) Frame(now time.Time) (bool, error) {
	dt, ok := e.loop.Advance(now)
	if !ok {
		return false, nil
	}
	k := math.Exp(-e.decay * dt)

	var maxErr float64
	for _, id := range e.order {
		cur, ok := e.current[id]
		if !ok {
			e.loop.Stop()
			return false, errors.StateConsistency("no animation state for tracked id %q", id)
		}
		tgt, ok := e.target[id]
		if !ok {
			e.loop.Stop()
			return false, errors.StateConsistency("no target for tracked id %q", id)
		}

		cur = decayToward(cur, tgt, k)
		d := geom.MaxDiff(cur, tgt)
		maxErr = max(maxErr, d)
		if d < e.cfg.snapEps {
			cur = tgt
		}
		e.current[id] = cur

		if err := e.reconcile(id, cur); err != nil {
			e.loop.Stop()
			return false, err
		}
	}

	hooks := observability.Frame()
	hooks.OnFrame(KindIncremental.String(), time.Duration(dt*float64(time.Second)), maxErr, len(e.attached))
	if maxErr < e.cfg.stopEps {
		frames := e.loop.Frames()
		e.loop.Stop()
		hooks.OnConverged(KindIncremental.String(), frames)
		return false, nil
	}
	return true, nil
}

// Running reports whether the host should keep calling Frame.
func (e *Engine) Running() bool { return e.loop.Running() }

// Close stops the loop and detaches every element.
func (e *Engine) Close() {
	e.loop.Stop()
	for _, id := range e.order {
		e.forget(id)
	}
	e.order = nil
}

// Current returns the current rectangle of id in viewport pixels.
func (e *Engine) Current(id tree.ID) (geom.Rect, bool) {
	r, ok := e.current[id]
	return r, ok
}

// Target returns the target rectangle of id in viewport pixels.
func (e *Engine) Target(id tree.ID) (geom.Rect, bool) {
	r, ok := e.target[id]
	return r, ok
}

// Tracked returns the number of ids in the latest snapshot.
func (e *Engine) Tracked() int { return len(e.order) }

// Attached returns the number of elements currently on the surface.
func (e *Engine) Attached() int { return len(e.attached) }

func (e *Engine) forget(id tree.ID) {
	if e.attached[id] {
		e.surface.Detach(id)
		delete(e.attached, id)
	}
	delete(e.current, id)
	delete(e.target, id)
	delete(e.rects, id)
}

// reconcile makes the surface reflect cur for id: detached when culled,
// attached or updated otherwise.
func (e *Engine) reconcile(id tree.ID, cur geom.Rect) error {
	r, ok := e.rects[id]
	if !ok {
		return errors.StateConsistency("no layout rectangle for tracked id %q", id)
	}

	visible := cur.Size.X >= e.cfg.minRectWidth && cur.Intersects(e.viewport.Rect())
	if !visible {
		if e.attached[id] {
			e.surface.Detach(id)
			delete(e.attached, id)
		}
		return nil
	}

	el := elementFor(r, cur, e.cfg.gap)
	el.ShowLabel = cur.Size.X >= e.cfg.minTextWidth
	if e.attached[id] {
		if !e.surface.Update(el) {
			return errors.StateConsistency("element for %q missing from surface", id)
		}
		return nil
	}
	e.surface.Attach(el)
	e.attached[id] = true
	return nil
}

// decayToward moves each channel of cur towards tgt, keeping the fraction k
// of the remaining distance.
func decayToward(cur, tgt geom.Rect, k float64) geom.Rect {
	ch := func(c, t float64) float64 { return t + (c-t)*k }
	return geom.Rect{
		Pos:  geom.Vec2{X: ch(cur.Pos.X, tgt.Pos.X), Y: ch(cur.Pos.Y, tgt.Pos.Y)},
		Size: geom.Vec2{X: ch(cur.Size.X, tgt.Size.X), Y: ch(cur.Size.Y, tgt.Size.Y)},
	}
}
