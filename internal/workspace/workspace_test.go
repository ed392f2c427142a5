package workspace

import (
	"testing"

	"github.com/pekwm/pekwm-go/internal/geom"
)

func TestSetSizeClampsAndNames(t *testing.T) {
	s := New(true)
	if s.SetSize(0) {
		t.Fatalf("expected setting size to 0 on a one-workspace set to report no change (clamped to 1)")
	}
	if s.Size() != 1 || s.Active() != 0 || s.Previous() != 0 {
		t.Fatalf("expected size 1, active 0, previous 0")
	}

	if !s.SetSize(4) {
		t.Fatalf("expected growing to 4 to report a change")
	}
	for i, want := range []string{"1", "2", "3", "4"} {
		if s.Name(i) != want {
			t.Fatalf("workspace %d: got name %q, want %q", i, s.Name(i), want)
		}
	}

	if s.SetSize(4) {
		t.Fatalf("expected unchanged size to report no change")
	}
}

func TestGotoWorkspaceBackAndForth(t *testing.T) {
	s := New(true)
	s.SetSize(4)

	if s.Active() != 0 {
		t.Fatalf("expected active 0 at start")
	}
	if !s.Goto(1) || s.Active() != 1 {
		t.Fatalf("expected move 0 -> 1")
	}
	if !s.Goto(1) || s.Active() != 0 {
		t.Fatalf("expected move 1 -> 1 to go back to 0")
	}
	if !s.Goto(1) || s.Active() != 1 {
		t.Fatalf("expected move 0 -> 1")
	}
	if !s.Goto(3) || s.Active() != 3 {
		t.Fatalf("expected move 1 -> 3")
	}
	if !s.Goto(3) || s.Active() != 1 {
		t.Fatalf("expected move 3 -> 3 to go back to 1")
	}
}

func TestGotoWithoutBackAndForthNoOpsOnSameWorkspace(t *testing.T) {
	s := New(false)
	s.SetSize(2)
	s.Goto(1)
	if s.Goto(1) {
		t.Fatalf("expected no-op switch to report no change without back-and-forth")
	}
}

func TestPlaceCenteredCentersWithinUsable(t *testing.T) {
	s := New(false)
	usable := geom.Rect{X: 0, Y: 0, W: 1000, H: 800}
	win := geom.Rect{W: 200, H: 100}
	r := s.Place(PlacementCentered, nil, usable, geom.Point{}, win)
	if r.X != 400 || r.Y != 350 {
		t.Fatalf("expected centered at (400,350), got (%d,%d)", r.X, r.Y)
	}
}

func TestPlaceSmartAvoidsExisting(t *testing.T) {
	s := New(false)
	usable := geom.Rect{X: 0, Y: 0, W: 200, H: 200}
	win := geom.Rect{W: 50, H: 50}
	existing := []geom.Rect{{X: 0, Y: 0, W: 50, H: 50}}
	r := s.Place(PlacementSmart, existing, usable, geom.Point{}, win)
	if r.Overlaps(existing[0]) {
		t.Fatalf("expected smart placement to avoid existing window, got %+v", r)
	}
}
