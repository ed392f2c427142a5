package harbour

import (
	"testing"

	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/layer"
	"github.com/pekwm/pekwm-go/internal/strut"
)

func TestLayerFollowsOntop(t *testing.T) {
	h := New(strut.New(), 0, Bottom, true, false)
	if h.Layer() != layer.Dock {
		t.Fatalf("expected Dock layer when ontop")
	}
	h2 := New(strut.New(), 0, Bottom, false, false)
	if h2.Layer() != layer.Desktop {
		t.Fatalf("expected Desktop layer when not ontop")
	}
}

func TestAddPlacesEdgeToEdgeWithoutOverlap(t *testing.T) {
	set := strut.New()
	h := New(set, 0, Bottom, true, false)
	head := geom.Rect{X: 0, Y: 0, W: 400, H: 300}

	a := &DockApp{Width: 64, Height: 64}
	b := &DockApp{Width: 64, Height: 64}
	h.Add(a, head)
	h.Add(b, head)

	if a.X == b.X {
		t.Fatalf("expected two dockapps to be placed at different x positions, got a=%d b=%d", a.X, b.X)
	}
	if !(a.X+a.Width <= b.X || b.X+b.Width <= a.X) {
		t.Fatalf("expected no overlap between dockapps: a=%+v b=%+v", a, b)
	}
}

func TestUpdateSizeTracksLargestDockApp(t *testing.T) {
	set := strut.New()
	h := New(set, 0, Bottom, true, false)
	head := geom.Rect{X: 0, Y: 0, W: 400, H: 300}
	h.Add(&DockApp{Width: 32, Height: 32}, head)
	h.Add(&DockApp{Width: 48, Height: 48}, head)

	eff := set.Effective(0)
	if eff.Bottom != 48 {
		t.Fatalf("expected strut bottom to track largest dockapp height, got %d", eff.Bottom)
	}
}

func TestSortedPlacementOrdersByPosition(t *testing.T) {
	set := strut.New()
	h := New(set, 0, Bottom, true, true)
	head := geom.Rect{X: 0, Y: 0, W: 400, H: 300}

	second := &DockApp{Width: 32, Height: 32, Position: 2}
	first := &DockApp{Width: 32, Height: 32, Position: 1}
	h.Add(second, head)
	h.Add(first, head)

	if first.X >= second.X {
		t.Fatalf("expected dockapp with lower Position to be placed first, first.X=%d second.X=%d", first.X, second.X)
	}
}

func TestRemoveShrinksStrut(t *testing.T) {
	set := strut.New()
	h := New(set, 0, Bottom, true, false)
	head := geom.Rect{X: 0, Y: 0, W: 400, H: 300}
	a := &DockApp{Width: 32, Height: 64}
	h.Add(a, head)
	if set.Effective(0).Bottom != 64 {
		t.Fatalf("expected strut bottom 64, got %d", set.Effective(0).Bottom)
	}
	h.Remove(a, head)
	if set.Effective(0).Bottom != 0 {
		t.Fatalf("expected strut bottom 0 after removing only dockapp, got %d", set.Effective(0).Bottom)
	}
}
