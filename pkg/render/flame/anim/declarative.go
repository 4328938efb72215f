package anim

import (
	"time"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Declarative re-emits every rectangle on each transition and leaves the
// interpolation to the surface: each element carries the configured
// transition duration. Nothing is culled and no frames are ever scheduled.
type Declarative struct {
	surface  Surface
	cfg      config
	order    []tree.ID
	attached map[tree.ID]bool
}

// NewDeclarative returns a declarative renderer painting onto s.
func NewDeclarative(s Surface, opts ...Option) *Declarative {
	return &Declarative{surface: s, cfg: newConfig(opts), attached: make(map[tree.ID]bool)}
}

// Transition emits the full rectangle list at its new placement. The
// viewport and decay speed are ignored.
func (d *Declarative) Transition(rects []layout.DrawRect, t view.Transform, _ Viewport, _ float64) error {
	next := make(map[tree.ID]struct{}, len(rects))
	order := make([]tree.ID, 0, len(rects))
	for _, r := range rects {
		if _, dup := next[r.ID]; dup {
			return errors.StateConsistency("duplicate rectangle id %q in snapshot", r.ID)
		}
		next[r.ID] = struct{}{}
		order = append(order, r.ID)
	}
	for _, id := range d.order {
		if _, keep := next[id]; !keep && d.attached[id] {
			d.surface.Detach(id)
			delete(d.attached, id)
		}
	}
	d.order = order

	for _, r := range rects {
		px := view.Apply(r.Rect, t)
		el := elementFor(r, px, d.cfg.gap)
		el.ShowLabel = px.Size.X >= d.cfg.minTextWidth
		el.Transition = d.cfg.transition
		if d.attached[r.ID] {
			if !d.surface.Update(el) {
				return errors.StateConsistency("element for %q missing from surface", r.ID)
			}
			continue
		}
		d.surface.Attach(el)
		d.attached[r.ID] = true
	}
	observability.Frame().OnTransition(KindDeclarative.String(), len(rects), len(d.attached))
	return nil
}

// Frame never has work to do.
func (d *Declarative) Frame(time.Time) (bool, error) { return false, nil }

// Running is always false.
func (d *Declarative) Running() bool { return false }

// Close detaches every element.
func (d *Declarative) Close() {
	for _, id := range d.order {
		if d.attached[id] {
			d.surface.Detach(id)
			delete(d.attached, id)
		}
	}
	d.order = nil
}
