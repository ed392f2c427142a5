// Package workspace implements the workspace set: naming, active/back-
// and-forth switching, and new-window placement strategies (spec.md
// 3 "Workspace", spec.md 4.2).
//
// Grounded on original_source/test/test_Workspaces.hh's testSetSize and
// testGotoWorkspaceBackAndForth, whose exact sequences this package's
// SetSize and Goto reproduce, and on the teacher's wm/move.go
// ensureWorkspace/switchWorkspace for the Go-shaped API (methods
// returning bool/error instead of void).
package workspace

import (
	"fmt"

	"github.com/pekwm/pekwm-go/internal/geom"
)

// Placement names a new-window placement strategy (spec.md 4.2
// "Placement strategies").
type Placement int

const (
	PlacementSmart Placement = iota
	PlacementCentered
	PlacementMouseTopLeft
	PlacementMouseCentered
	PlacementCascade
)

// Set is the ordered collection of workspaces with an active index and
// "back and forth" toggle memory.
type Set struct {
	names        []string
	active       int
	previous     int
	backAndForth bool
	cascadeNext  int
}

// New creates a Set with a single workspace.
func New(backAndForth bool) *Set {
	s := &Set{backAndForth: backAndForth}
	s.SetSize(1)
	return s
}

// defaultName mirrors pekwm's fallback naming for workspaces beyond any
// configured names: plain 1-based integers.
func defaultName(i int) string { return fmt.Sprintf("%d", i+1) }

// SetSize resizes the workspace set to n (clamped to at least 1),
// preserving existing names and appending default names for newly
// added workspaces. Returns false if the size did not change.
func (s *Set) SetSize(n int) bool {
	if n < 1 {
		n = 1
	}
	if n == len(s.names) {
		return false
	}
	names := make([]string, n)
	for i := range names {
		if i < len(s.names) {
			names[i] = s.names[i]
		} else {
			names[i] = defaultName(i)
		}
	}
	s.names = names
	if s.active >= n {
		s.active = n - 1
	}
	if s.previous >= n {
		s.previous = n - 1
	}
	return true
}

// Size returns the current workspace count.
func (s *Set) Size() int { return len(s.names) }

// Active returns the active workspace index.
func (s *Set) Active() int { return s.active }

// Previous returns the previously active workspace index.
func (s *Set) Previous() int { return s.previous }

// Name returns the name of workspace i, or "" if out of range.
func (s *Set) Name(i int) string {
	if i < 0 || i >= len(s.names) {
		return ""
	}
	return s.names[i]
}

// SetName renames workspace i.
func (s *Set) SetName(i int, name string) {
	if i < 0 || i >= len(s.names) {
		return
	}
	s.names[i] = name
}

// Goto switches the active workspace to n (clamped into range). If n is
// already active and back-and-forth is enabled, it toggles back to the
// previously active workspace instead (spec.md 4.2 "Back-and-forth
// toggling": "requesting the already-active workspace a second time
// returns to whichever workspace was active before it"). Returns
// whether the active workspace actually changed.
func (s *Set) Goto(n int) bool {
	if n < 0 {
		n = 0
	}
	if n >= len(s.names) {
		n = len(s.names) - 1
	}
	target := n
	if target == s.active && s.backAndForth {
		target = s.previous
	}
	if target == s.active {
		return false
	}
	s.previous = s.active
	s.active = target
	return true
}

// Place computes the geometry for a newly mapped window of size
// winSize within usable (the head's usable area after struts), given
// the strategy and, for mouse-relative strategies, the current pointer
// position. existing is the set of already-placed windows' geometry on
// this head, consulted only by PlacementSmart.
func (s *Set) Place(strategy Placement, existing []geom.Rect, usable geom.Rect, mouse geom.Point, winSize geom.Rect) geom.Rect {
	switch strategy {
	case PlacementCentered:
		return geom.Rect{
			X: usable.X + (usable.W-winSize.W)/2,
			Y: usable.Y + (usable.H-winSize.H)/2,
			W: winSize.W, H: winSize.H,
		}
	case PlacementMouseTopLeft:
		return clampToUsable(geom.Rect{X: mouse.X, Y: mouse.Y, W: winSize.W, H: winSize.H}, usable)
	case PlacementMouseCentered:
		return clampToUsable(geom.Rect{
			X: mouse.X - winSize.W/2, Y: mouse.Y - winSize.H/2,
			W: winSize.W, H: winSize.H,
		}, usable)
	case PlacementCascade:
		const step = 24
		r := geom.Rect{
			X: usable.X + int32(s.cascadeNext)*step,
			Y: usable.Y + int32(s.cascadeNext)*step,
			W: winSize.W, H: winSize.H,
		}
		s.cascadeNext++
		return clampToUsable(r, usable)
	case PlacementSmart:
		return smartPlace(existing, usable, winSize)
	default:
		return clampToUsable(geom.Rect{X: usable.X, Y: usable.Y, W: winSize.W, H: winSize.H}, usable)
	}
}

// clampToUsable keeps r's top-left within usable so the window isn't
// placed fully off a head.
func clampToUsable(r geom.Rect, usable geom.Rect) geom.Rect {
	if r.X < usable.X {
		r.X = usable.X
	}
	if r.Y < usable.Y {
		r.Y = usable.Y
	}
	if r.X+r.W > usable.Right() {
		r.X = usable.Right() - r.W
	}
	if r.Y+r.H > usable.Bottom() {
		r.Y = usable.Bottom() - r.H
	}
	return r
}

// smartPlace scans a coarse grid of candidate top-left positions and
// returns the first one that overlaps no existing window, falling back
// to the usable area's top-left if every candidate overlaps something
// (spec.md 4.2 "Smart placement": "the first non-overlapping position
// found in a left-to-right, top-to-bottom scan wins").
func smartPlace(existing []geom.Rect, usable geom.Rect, winSize geom.Rect) geom.Rect {
	const grid = 16
	for y := usable.Y; y+winSize.H <= usable.Bottom(); y += grid {
		for x := usable.X; x+winSize.W <= usable.Right(); x += grid {
			candidate := geom.Rect{X: x, Y: y, W: winSize.W, H: winSize.H}
			if !overlapsAny(candidate, existing) {
				return candidate
			}
		}
	}
	return clampToUsable(geom.Rect{X: usable.X, Y: usable.Y, W: winSize.W, H: winSize.H}, usable)
}

func overlapsAny(r geom.Rect, existing []geom.Rect) bool {
	for _, e := range existing {
		if r.Overlaps(e) {
			return true
		}
	}
	return false
}
