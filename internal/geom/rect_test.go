package geom

import "testing"

func TestFromCorners(t *testing.T) {
	r := FromCorners(10, 10, 0, 0)
	if r.X != 0 || r.Y != 0 || r.W != 10 || r.H != 10 {
		t.Fatalf("unexpected rect from swapped corners: %+v", r)
	}
}

func TestCenterInside(t *testing.T) {
	head := Rect{X: 0, Y: 0, W: 1000, H: 800}
	c := head.CenterInside(200, 100)
	if c.X != 400 || c.Y != 350 {
		t.Fatalf("expected centered at (400,350), got (%d,%d)", c.X, c.Y)
	}
}

func TestArea(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 20}
	if r.Area() != 200 {
		t.Fatalf("expected area 200, got %d", r.Area())
	}
	degenerate := Rect{X: 0, Y: 0, W: 0, H: 20}
	if degenerate.Area() != 0 {
		t.Fatalf("expected zero area for degenerate rect")
	}
}

func TestIsOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	c := Rect{X: 20, Y: 20, W: 5, H: 5}
	if !a.Overlaps(b) {
		t.Fatalf("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Fatalf("expected a and c not to overlap")
	}
}

func TestOverlapPercent(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 0, Y: 0, W: 5, H: 10}
	if pct := a.OverlapPercent(b); pct != 0.5 {
		t.Fatalf("expected 50%% overlap, got %v", pct)
	}
}

func TestNearestCenter(t *testing.T) {
	heads := []Rect{
		{X: 0, Y: 0, W: 1000, H: 1000},
		{X: 1000, Y: 0, W: 1000, H: 1000},
	}
	idx := NearestCenter(Point{X: 1900, Y: 500}, heads)
	if idx != 1 {
		t.Fatalf("expected nearest head 1, got %d", idx)
	}
}

func TestStrutMax(t *testing.T) {
	a := Strut{Left: 10, Top: 5}
	b := Strut{Left: 2, Top: 20}
	m := a.Max(b)
	if m.Left != 10 || m.Top != 20 {
		t.Fatalf("unexpected max strut: %+v", m)
	}
}
