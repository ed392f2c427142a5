// Package harbour implements the dockapp tray (spec.md 4.5): windows
// that set the WM_HINTS withdrawn-state convention pekwm calls
// "DockApps" are placed edge-to-edge along one screen edge instead of
// being framed like ordinary Clients, and that edge's occupied extent
// is published as a strut.
//
// Grounded directly on original_source/src/Harbour.cc: Placement/
// Orientation naming, updateHarbourSize/updateStrutSize's
// size-is-max-of-children-along-the-placement-axis rule, and
// placeDockApp's edge-to-edge packing (simplified here to a single
// linear scan instead of the original's bidirectional test-position
// search, since pekwm's own comment above it still carries a "todo
// screen boundary checking" for the sorted path).
package harbour

import (
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/layer"
	"github.com/pekwm/pekwm-go/internal/strut"
)

// Placement names the screen edge the harbour occupies.
type Placement int

const (
	Top Placement = iota
	Bottom
	Left
	Right
)

// Orientation controls which end of the edge new dockapps are packed
// from first.
type Orientation int

const (
	TopToBottom Orientation = iota
	BottomToTop
)

// DockApp is one withdrawn-state window managed by the harbour.
type DockApp struct {
	Width, Height int32
	X, Y          int32
	// Position is the AutoProperties dockapp-rule sort key: sortDockApps
	// orders positive Positions ascending first, then zeros in
	// insertion order, then negative Positions ascending at the end.
	Position int
	Mapped   bool
}

// Harbour places and sizes dockapps along one screen edge.
type Harbour struct {
	placement   Placement
	orientation Orientation
	onTop       bool
	sortEnabled bool
	maximizeOver bool
	hidden      bool

	dapps []*DockApp
	size  int32

	struts    *strut.Set
	head      int
	lastStrut geom.Strut
}

// New creates a Harbour contributing its strut to set for the given
// head.
func New(set *strut.Set, head int, placement Placement, ontop, sortEnabled bool) *Harbour {
	return &Harbour{
		placement:   placement,
		onTop:       ontop,
		sortEnabled: sortEnabled,
		struts:      set,
		head:        head,
	}
}

// Layer returns the stacking layer new dockapps should join, mirroring
// Harbour::addDockApp's isHarbourOntop() ? LAYER_DOCK : LAYER_DESKTOP.
func (h *Harbour) Layer() layer.Layer {
	if h.onTop {
		return layer.Dock
	}
	return layer.Desktop
}

// Add registers da, places it (sorted or edge-packed depending on
// configuration) and recomputes the harbour's size and strut
// contribution (spec.md 4.5 "Adding a dockapp").
func (h *Harbour) Add(da *DockApp, head geom.Rect) {
	h.dapps = append(h.dapps, da)
	if h.sortEnabled {
		h.placeAllSorted(head)
	} else {
		h.placeOne(da, head)
	}
	h.updateSize()
	h.updateStrut()
}

// Remove detaches da from the harbour, re-laying-out the remainder when
// sorted placement is active (spec.md 4.5 "Removing a dockapp").
func (h *Harbour) Remove(da *DockApp, head geom.Rect) {
	for i, d := range h.dapps {
		if d == da {
			h.dapps = append(h.dapps[:i], h.dapps[i+1:]...)
			break
		}
	}
	if h.sortEnabled {
		h.placeAllSorted(head)
	}
	h.updateSize()
	h.updateStrut()
}

// DockApps returns the currently managed dockapps in harbour order.
func (h *Harbour) DockApps() []*DockApp { return h.dapps }

// SetHidden toggles harbour visibility, re-publishing the strut
// (spec.md 4.5 "Hiding the harbour": "a hidden harbour contributes no
// strut even though its windows remain mapped or unmapped per caller
// policy").
func (h *Harbour) SetHidden(hidden bool) {
	if h.hidden == hidden {
		return
	}
	h.hidden = hidden
	h.updateStrut()
}

func axisIsHorizontal(p Placement) bool { return p == Top || p == Bottom }

// updateSize recomputes the harbour's thickness as the largest
// dimension along the placement axis among current dockapps
// (Harbour::updateHarbourSize).
func (h *Harbour) updateSize() {
	var size int32
	for _, d := range h.dapps {
		var dim int32
		if axisIsHorizontal(h.placement) {
			dim = d.Height
		} else {
			dim = d.Width
		}
		if dim > size {
			size = dim
		}
	}
	h.size = size
}

// updateStrut republishes this harbour's strut contribution
// (Harbour::updateStrutSize).
func (h *Harbour) updateStrut() {
	if h.struts == nil {
		return
	}
	h.struts.Remove(h.lastStrut)
	if h.maximizeOver || h.hidden {
		h.lastStrut = geom.Strut{Head: h.head}
		return
	}
	s := geom.Strut{Head: h.head}
	switch h.placement {
	case Top:
		s.Top = h.size
	case Bottom:
		s.Bottom = h.size
	case Left:
		s.Left = h.size
	case Right:
		s.Right = h.size
	}
	h.lastStrut = s
	h.struts.Add(s)
}

// placeOne packs da at the first free position along the placement
// edge, scanning from the orientation's starting end (simplified
// Harbour::placeDockApp).
func (h *Harbour) placeOne(da *DockApp, head geom.Rect) {
	if axisIsHorizontal(h.placement) {
		da.Y = edgeY(h.placement, head, da.Height)
		da.X = firstFreeX(h.dapps, da, head, h.orientation)
		return
	}
	da.X = edgeX(h.placement, head, da.Width)
	da.Y = firstFreeY(h.dapps, da, head, h.orientation)
}

func edgeY(p Placement, head geom.Rect, h32 int32) int32 {
	if p == Top {
		return head.Y
	}
	return head.Bottom() - h32
}

func edgeX(p Placement, head geom.Rect, w int32) int32 {
	if p == Left {
		return head.X
	}
	return head.Right() - w
}

func firstFreeX(existing []*DockApp, da *DockApp, head geom.Rect, o Orientation) int32 {
	if o == BottomToTop {
		x := head.Right() - da.Width
		for x >= head.X {
			if !overlapsX(existing, da, x) {
				return x
			}
			x--
		}
		return head.X
	}
	x := head.X
	for x+da.Width <= head.Right() {
		if !overlapsX(existing, da, x) {
			return x
		}
		x++
	}
	return head.X
}

func firstFreeY(existing []*DockApp, da *DockApp, head geom.Rect, o Orientation) int32 {
	if o == BottomToTop {
		y := head.Bottom() - da.Height
		for y >= head.Y {
			if !overlapsY(existing, da, y) {
				return y
			}
			y--
		}
		return head.Y
	}
	y := head.Y
	for y+da.Height <= head.Bottom() {
		if !overlapsY(existing, da, y) {
			return y
		}
		y++
	}
	return head.Y
}

func overlapsX(existing []*DockApp, da *DockApp, x int32) bool {
	for _, d := range existing {
		if d == da {
			continue
		}
		if x < d.X+d.Width && x+da.Width > d.X {
			return true
		}
	}
	return false
}

func overlapsY(existing []*DockApp, da *DockApp, y int32) bool {
	for _, d := range existing {
		if d == da {
			continue
		}
		if y < d.Y+d.Height && y+da.Height > d.Y {
			return true
		}
	}
	return false
}

// placeAllSorted re-lays-out every dockapp edge-to-edge in
// sortDockApps order (positive Positions ascending, then zeros, then
// negative Positions ascending; Harbour::placeDockAppsSorted).
func (h *Harbour) placeAllSorted(head geom.Rect) {
	sortDockApps(h.dapps)
	var cursor int32
	if axisIsHorizontal(h.placement) {
		if h.orientation == BottomToTop {
			cursor = head.Right()
		} else {
			cursor = head.X
		}
		for _, d := range h.dapps {
			d.Y = edgeY(h.placement, head, d.Height)
			if h.orientation == BottomToTop {
				cursor -= d.Width
				d.X = cursor
			} else {
				d.X = cursor
				cursor += d.Width
			}
		}
		return
	}
	if h.orientation == BottomToTop {
		cursor = head.Bottom()
	} else {
		cursor = head.Y
	}
	for _, d := range h.dapps {
		d.X = edgeX(h.placement, head, d.Width)
		if h.orientation == BottomToTop {
			cursor -= d.Height
			d.Y = cursor
		} else {
			d.Y = cursor
			cursor += d.Height
		}
	}
}
