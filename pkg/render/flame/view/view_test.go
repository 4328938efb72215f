package view

import (
	"math"
	"testing"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/tree"
)

const tol = 1e-9

func rect(x, y, w, h float64) geom.Rect {
	return geom.Rect{Pos: geom.Vec2{X: x, Y: y}, Size: geom.Vec2{X: w, Y: h}}
}

func TestApply(t *testing.T) {
	tr := Transform{Translate: geom.Vec2{X: -10, Y: 5}, Scale: geom.Vec2{X: 2, Y: 1}}
	got := Apply(rect(30, 20, 40, 20), tr)
	if want := rect(40, 25, 80, 20); got != want {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
	if got := Apply(rect(1, 2, 3, 4), Identity()); got != rect(1, 2, 3, 4) {
		t.Errorf("Apply(Identity) = %v", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		rects []layout.DrawRect
		width float64
	}{
		{"single", []layout.DrawRect{{Rect: rect(0, 0, 298, 20)}}, 1024},
		{"offset widest", []layout.DrawRect{{Rect: rect(0, 0, 100, 20)}, {Rect: rect(50, 20, 100, 20)}}, 600},
		{"narrow viewport", []layout.DrawRect{{Rect: rect(0, 0, 5000, 20)}}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Fit(tt.rects, tt.width)
			if tr.Translate != (geom.Vec2{}) {
				t.Errorf("Translate = %v, want zero", tr.Translate)
			}
			if tr.Scale.Y != 1 {
				t.Errorf("Scale.Y = %v, want 1", tr.Scale.Y)
			}
			var right float64
			for _, r := range tt.rects {
				right = max(right, Apply(r.Rect, tr).Right())
			}
			if math.Abs(right-tt.width) > tol {
				t.Errorf("widest right edge = %v, want %v", right, tt.width)
			}
		})
	}
}

func TestFit_Degenerate(t *testing.T) {
	for name, rects := range map[string][]layout.DrawRect{
		"empty":      nil,
		"zero width": {{Rect: rect(0, 0, 0, 20)}},
	} {
		if got := Fit(rects, 800).Scale.X; got != 1 {
			t.Errorf("%s: Scale.X = %v, want 1", name, got)
		}
	}
}

func TestZoomTo(t *testing.T) {
	for _, r := range []geom.Rect{rect(80, 20, 18, 20), rect(0, 0, 298, 20), rect(3.5, 60, 0.25, 20)} {
		got := Apply(r, ZoomTo(r, 1200))
		if math.Abs(got.Pos.X) > tol || math.Abs(got.Size.X-1200) > tol {
			t.Errorf("ZoomTo(%v) maps it to x=%v w=%v", r, got.Pos.X, got.Size.X)
		}
		if got.Pos.Y != 0 || got.Size.Y != r.Size.Y {
			t.Errorf("ZoomTo(%v) changed row geometry: %v", r, got)
		}
	}
	if s := ZoomTo(rect(10, 0, 0, 20), 500).Scale.X; s != 1 {
		t.Errorf("zero-width ZoomTo Scale.X = %v, want 1", s)
	}
}

func TestZoomTo_SampleTree(t *testing.T) {
	root := &tree.Node{ID: "r", WeightExcl: 100, Children: []*tree.Node{
		{ID: "a", WeightExcl: 40}, {ID: "b", WeightExcl: 9},
	}}
	rects := layout.Build(root, geom.Vec2{}, tree.Propagate(root))
	tr := ZoomTo(rects[2].Rect, 360)
	a := Apply(rects[1].Rect, tr)
	if math.Abs(a.Right()) > tol {
		t.Errorf("sibling left of selection should end at 0, ends at %v", a.Right())
	}
}

func TestInvert(t *testing.T) {
	tr := Transform{Translate: geom.Vec2{X: -80, Y: 0}, Scale: geom.Vec2{X: 4, Y: 1}}
	p := geom.Vec2{X: 12, Y: 33}
	back := Apply(geom.Rect{Pos: Invert(p, tr)}, tr).Pos
	if math.Abs(back.X-p.X) > tol || math.Abs(back.Y-p.Y) > tol {
		t.Errorf("Apply(Invert(p)) = %v, want %v", back, p)
	}
}

func TestPanZoom(t *testing.T) {
	tr := Identity()
	tr = Pan(tr, 10, 0)
	if tr.Translate.X != 10 {
		t.Errorf("Pan translate = %v, want 10", tr.Translate.X)
	}

	tr = Transform{Scale: geom.Vec2{X: 2, Y: 1}}
	before := Invert(geom.Vec2{X: 100}, tr).X
	tr = Zoom(tr, 1.5, 100)
	if tr.Scale.X != 3 {
		t.Errorf("Zoom scale = %v, want 3", tr.Scale.X)
	}
	if after := Invert(geom.Vec2{X: 100}, tr).X; math.Abs(after-before) > tol {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
	if got := Zoom(tr, 0, 0); got != tr {
		t.Error("Zoom with factor 0 changed the transform")
	}
}
