package selection

import (
	"math"
	"testing"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/view"
	"github.com/matzehuels/flametower/pkg/tree"
)

func sampleRects() []layout.DrawRect {
	root := &tree.Node{ID: "0", Label: "root", WeightExcl: 100, Children: []*tree.Node{
		{ID: "1", Label: "A", WeightExcl: 40},
		{ID: "3", Label: "B", WeightExcl: 4, Children: []*tree.Node{
			{ID: "4", Label: "BA", WeightExcl: 3, Children: []*tree.Node{
				{ID: "5", Label: "BAA", WeightExcl: 2},
			}},
		}},
	}}
	return layout.Build(root, geom.Vec2{}, tree.Propagate(root))
}

func TestNew_FitsLayout(t *testing.T) {
	c := New(sampleRects(), 596)
	if c.Selection() != nil {
		t.Error("new controller has a selection")
	}
	if got := c.Transform(); got.Scale.X != 2 || got.Translate != (geom.Vec2{}) {
		t.Errorf("Transform() = %+v, want fit scale 2", got)
	}
}

func TestClick(t *testing.T) {
	rects := sampleRects()
	c := New(rects, 900)

	c.Click("3")
	sel := c.Selection()
	if sel == nil || sel.ID != "3" {
		t.Fatalf("Selection() = %v, want B", sel)
	}
	if want := view.ZoomTo(rects[2].Rect, 900); c.Transform() != want {
		t.Errorf("Transform() = %+v, want %+v", c.Transform(), want)
	}
	got := view.Apply(sel.Rect, c.Transform())
	if math.Abs(got.Pos.X) > 1e-9 || math.Abs(got.Size.X-900) > 1e-9 {
		t.Errorf("selected rect maps to %v", got)
	}
}

func TestClick_UnknownClears(t *testing.T) {
	rects := sampleRects()
	c := New(rects, 900)
	c.Click("3")

	for _, id := range []tree.ID{"nope", ""} {
		c.Click("3")
		c.Click(id)
		if c.Selection() != nil {
			t.Errorf("Click(%q) kept the selection", id)
		}
		if want := view.Fit(rects, 900); c.Transform() != want {
			t.Errorf("Click(%q) transform = %+v, want fit", id, c.Transform())
		}
	}
}

func TestSetRects_ClearsSelection(t *testing.T) {
	c := New(sampleRects(), 900)
	c.Click("1")

	other := []layout.DrawRect{{ID: "1", Rect: geom.Rect{Size: geom.Vec2{X: 50, Y: 20}}}}
	c.SetRects(other)
	if c.Selection() != nil {
		t.Error("stale selection survived a new layout")
	}
	if c.Transform().Scale.X != 18 {
		t.Errorf("scale = %v, want refit to 18", c.Transform().Scale.X)
	}
}

func TestResize(t *testing.T) {
	rects := sampleRects()

	t.Run("no selection refits", func(t *testing.T) {
		c := New(rects, 596)
		c.Resize(298)
		if c.Transform().Scale.X != 1 {
			t.Errorf("scale = %v, want 1", c.Transform().Scale.X)
		}
	})

	t.Run("selection is not reframed", func(t *testing.T) {
		c := New(rects, 900)
		c.Click("3")
		before := c.Transform()
		c.Resize(300)
		if c.Transform() != before {
			t.Error("resize reframed the active selection")
		}
		// An explicit re-selection uses the new width.
		c.Click("3")
		if got := c.Transform().Scale.X; math.Abs(got-300.0/18) > 1e-9 {
			t.Errorf("re-selection scale = %v", got)
		}
	})
}

func TestManualControls(t *testing.T) {
	c := New(sampleRects(), 596)
	c.Pan(-20, 0)
	if got := c.Transform().Translate.X; got != -10 {
		t.Errorf("Pan translate = %v, want -10", got)
	}
	c.SetTransform(view.Identity())
	c.Zoom(2)
	if got := c.Transform(); got.Scale.X != 2 || got.Translate.X != -149 {
		t.Errorf("Zoom() = %+v", got)
	}
}
