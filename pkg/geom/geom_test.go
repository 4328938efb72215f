package geom

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{Pos: Vec2{10, 20}, Size: Vec2{40, 5}}
	if r.Right() != 50 || r.Bottom() != 25 || r.Left() != 10 || r.Top() != 20 {
		t.Errorf("edges = %v %v %v %v", r.Left(), r.Top(), r.Right(), r.Bottom())
	}
	if c := r.Center(); c != (Vec2{30, 22.5}) {
		t.Errorf("Center() = %v", c)
	}
}

func TestRectIntersects_EmptyViewport(t *testing.T) {
	r := Rect{Pos: Vec2{10, 10}, Size: Vec2{20, 20}}
	if r.Intersects(Rect{Size: Vec2{100, 0}}) {
		t.Error("nothing should intersect a zero-height viewport")
	}
}

func TestRectIntersects(t *testing.T) {
	vp := Rect{Size: Vec2{100, 50}}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{Pos: Vec2{10, 10}, Size: Vec2{20, 20}}, true},
		{"straddles right edge", Rect{Pos: Vec2{90, 0}, Size: Vec2{50, 20}}, true},
		{"straddles left edge", Rect{Pos: Vec2{-30, 0}, Size: Vec2{40, 20}}, true},
		{"covers viewport", Rect{Pos: Vec2{-10, -10}, Size: Vec2{200, 200}}, true},
		{"right of viewport", Rect{Pos: Vec2{120, 0}, Size: Vec2{20, 20}}, false},
		{"below viewport", Rect{Pos: Vec2{0, 60}, Size: Vec2{20, 20}}, false},
		{"touching edge", Rect{Pos: Vec2{100, 0}, Size: Vec2{20, 20}}, false},
		{"zero width", Rect{Pos: Vec2{10, 10}, Size: Vec2{0, 20}}, false},
		{"zero height", Rect{Pos: Vec2{10, 10}, Size: Vec2{20, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Intersects(vp); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Pos: Vec2{0, 0}, Size: Vec2{10, 10}}
	for _, tt := range []struct {
		p    Vec2
		want bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{9.9, 9.9}, true},
		{Vec2{10, 5}, false},
		{Vec2{-1, 5}, false},
	} {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectInset(t *testing.T) {
	got := Rect{Pos: Vec2{5, 5}, Size: Vec2{10, 1}}.Inset(2)
	want := Rect{Pos: Vec2{5, 5}, Size: Vec2{8, 0}}
	if got != want {
		t.Errorf("Inset() = %v, want %v", got, want)
	}
}

func TestMaxDiff(t *testing.T) {
	a := Rect{Pos: Vec2{0, 0}, Size: Vec2{10, 10}}
	b := Rect{Pos: Vec2{1, -3}, Size: Vec2{10.5, 10}}
	if got := MaxDiff(a, b); got != 3 {
		t.Errorf("MaxDiff() = %v, want 3", got)
	}
	if got := MaxDiff(a, a); got != 0 {
		t.Errorf("MaxDiff(a, a) = %v, want 0", got)
	}
}
