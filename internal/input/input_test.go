package input

import (
	"testing"
	"time"

	"github.com/pekwm/pekwm-go/internal/geom"
)

func TestDoubleClickWithinIntervalAndRadius(t *testing.T) {
	d := NewDoubleClickDetector(250)
	base := time.Now()
	if d.Click(1, geom.Point{X: 10, Y: 10}, base) {
		t.Fatalf("first click should never be a double click")
	}
	if !d.Click(1, geom.Point{X: 11, Y: 10}, base.Add(100*time.Millisecond)) {
		t.Fatalf("expected second nearby, timely click to be a double click")
	}
}

func TestDoubleClickRejectsSlowOrDistantClicks(t *testing.T) {
	d := NewDoubleClickDetector(250)
	base := time.Now()
	d.Click(1, geom.Point{X: 0, Y: 0}, base)
	if d.Click(1, geom.Point{X: 0, Y: 0}, base.Add(500*time.Millisecond)) {
		t.Fatalf("expected a slow second click not to count as double")
	}

	d2 := NewDoubleClickDetector(250)
	d2.Click(1, geom.Point{X: 0, Y: 0}, base)
	if d2.Click(1, geom.Point{X: 100, Y: 100}, base.Add(50*time.Millisecond)) {
		t.Fatalf("expected a distant second click not to count as double")
	}
}

func TestDragMoveTranslatesGeometry(t *testing.T) {
	orig := geom.Rect{X: 100, Y: 100, W: 50, H: 50}
	drag := NewDrag(ModeMove, orig, geom.Point{X: 0, Y: 0}, 0, 0)
	got := drag.Update(geom.Point{X: 10, Y: -5}, nil)
	if got.X != 110 || got.Y != 95 {
		t.Fatalf("expected translated geometry, got %+v", got)
	}
}

func TestDragMoveSnapsToNearbyTarget(t *testing.T) {
	orig := geom.Rect{X: 100, Y: 100, W: 50, H: 50}
	drag := NewDrag(ModeMove, orig, geom.Point{X: 0, Y: 0}, 10, 0)
	target := geom.Rect{X: 152, Y: 100, W: 50, H: 50}
	got := drag.Update(geom.Point{X: 1, Y: 0}, []geom.Rect{target})
	if got.Right() != target.X {
		t.Fatalf("expected right edge to snap to target's left edge, got %+v", got)
	}
}

func TestDragCancelRestoresOriginal(t *testing.T) {
	orig := geom.Rect{X: 100, Y: 100, W: 50, H: 50}
	drag := NewDrag(ModeMove, orig, geom.Point{X: 0, Y: 0}, 0, 0)
	drag.Update(geom.Point{X: 200, Y: 200}, nil)
	if got := drag.Cancel(); got != orig {
		t.Fatalf("expected cancel to restore original geometry, got %+v", got)
	}
}

func TestKeyboardStepMoveAndResize(t *testing.T) {
	g := geom.Rect{X: 10, Y: 10, W: 100, H: 100}
	moved := KeyboardStep(g, ModeMove, DirRight, 5)
	if moved.X != 15 {
		t.Fatalf("expected x+=5, got %+v", moved)
	}
	resized := KeyboardStep(g, ModeResize, DirDown, 5)
	if resized.H != 105 {
		t.Fatalf("expected h+=5, got %+v", resized)
	}
}
