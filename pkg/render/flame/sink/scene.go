package sink

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/tree"
)

type sceneEntry struct {
	el  anim.Element
	seq uint64
}

// Scene is a retained element store: renderers attach, update and detach
// elements; painters read them back in attach order.
//
// Scene is the [anim.Surface] behind every sink. It is not safe for
// concurrent use.
type Scene struct {
	entries map[tree.ID]*sceneEntry
	seq     uint64
	version uint64
}

var _ anim.Surface = (*Scene)(nil)

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{entries: make(map[tree.ID]*sceneEntry)}
}

// Attach adds e on top of everything attached before it. Attaching an id
// that is already present replaces it and moves it to the top.
func (s *Scene) Attach(e anim.Element) {
	s.seq++
	s.version++
	s.entries[e.ID] = &sceneEntry{el: e, seq: s.seq}
}

// Update replaces the element with e.ID in place. It returns false if the
// scene has no such element.
func (s *Scene) Update(e anim.Element) bool {
	ent, ok := s.entries[e.ID]
	if !ok {
		return false
	}
	ent.el = e
	s.version++
	return true
}

// Detach removes the element with the given id, if present.
func (s *Scene) Detach(id tree.ID) {
	if _, ok := s.entries[id]; ok {
		delete(s.entries, id)
		s.version++
	}
}

// Elements returns a snapshot of every element in painting order.
func (s *Scene) Elements() []anim.Element {
	ents := make([]*sceneEntry, 0, len(s.entries))
	for _, e := range s.entries {
		ents = append(ents, e)
	}
	slices.SortFunc(ents, func(a, b *sceneEntry) int { return cmp.Compare(a.seq, b.seq) })

	out := make([]anim.Element, len(ents))
	for i, e := range ents {
		out[i] = e.el
	}
	return out
}

// Get returns the element with the given id.
func (s *Scene) Get(id tree.ID) (anim.Element, bool) {
	e, ok := s.entries[id]
	if !ok {
		return anim.Element{}, false
	}
	return e.el, true
}

// Len returns the number of elements.
func (s *Scene) Len() int { return len(s.entries) }

// Version increases on every change, so painters can skip unchanged frames.
func (s *Scene) Version() uint64 { return s.version }

// HitTest returns the topmost visible element containing p.
func (s *Scene) HitTest(p geom.Vec2) (tree.ID, bool) {
	var (
		hit   tree.ID
		found bool
		best  uint64
	)
	for id, e := range s.entries {
		if e.el.Opacity <= 0 || !e.el.Rect.Contains(p) {
			continue
		}
		if !found || e.seq > best {
			hit, best, found = id, e.seq, true
		}
	}
	return hit, found
}

// Clear removes every element.
func (s *Scene) Clear() {
	if len(s.entries) == 0 {
		return
	}
	clear(s.entries)
	s.version++
}
