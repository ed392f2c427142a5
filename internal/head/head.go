// Package head models a physical monitor: its rectangle, derived from
// RandR or Xinerama (or a single synthetic head covering the root when
// neither extension is present), plus its current effective strut
// (spec.md 3 "Head").
package head

import (
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/strut"
)

// Head is one physical monitor's rectangle plus its current strut.
type Head struct {
	Rect  geom.Rect
	Strut geom.Strut
}

// Set is the ordered list of heads currently known to the WM.
type Set struct {
	heads []Head
	struts *strut.Set
}

// NewSynthetic builds a Set with a single head covering root, used when
// neither RandR nor Xinerama report per-monitor geometry.
func NewSynthetic(root geom.Rect, struts *strut.Set) *Set {
	s := &Set{struts: struts}
	s.heads = []Head{{Rect: root}}
	s.refreshStruts()
	return s
}

// NewFromRects builds a Set from a list of monitor rectangles reported
// by RandR (RRScreenChangeNotify) or Xinerama (XineramaQueryScreens).
func NewFromRects(rects []geom.Rect, struts *strut.Set) *Set {
	s := &Set{struts: struts}
	s.heads = make([]Head, len(rects))
	for i, r := range rects {
		s.heads[i] = Head{Rect: r}
	}
	s.refreshStruts()
	return s
}

// Update replaces the head rectangles in place (spec.md 4.5 "RandR
// response") and re-derives each head's effective strut.
func (s *Set) Update(rects []geom.Rect) {
	s.heads = make([]Head, len(rects))
	for i, r := range rects {
		s.heads[i] = Head{Rect: r}
	}
	s.refreshStruts()
}

func (s *Set) refreshStruts() {
	for i := range s.heads {
		if s.struts != nil {
			s.heads[i].Strut = s.struts.Effective(i)
		}
	}
}

// RefreshStruts re-derives every head's effective strut without
// changing geometry, used after a harbour/dock hide/show toggle.
func (s *Set) RefreshStruts() { s.refreshStruts() }

// Len returns the number of heads.
func (s *Set) Len() int { return len(s.heads) }

// At returns the head at index i.
func (s *Set) At(i int) Head { return s.heads[i] }

// All returns every head.
func (s *Set) All() []Head { return s.heads }

// ForPoint returns the index of the head whose center is nearest p,
// falling back to head 0 when the set is empty.
func (s *Set) ForPoint(p geom.Point) int {
	if len(s.heads) == 0 {
		return 0
	}
	rects := make([]geom.Rect, len(s.heads))
	for i, h := range s.heads {
		rects[i] = h.Rect
	}
	return geom.NearestCenter(p, rects)
}

// ForRect returns the index of the head whose center is nearest to
// rect's center (spec.md 3 "Head-lookup by nearest center").
func (s *Set) ForRect(rect geom.Rect) int {
	return s.ForPoint(geom.Point{X: rect.CenterX(), Y: rect.CenterY()})
}

// UsableArea returns the head's rectangle with its effective strut
// subtracted -- the area available for window placement.
func (h Head) UsableArea() geom.Rect {
	return h.Rect.Shrink(h.Strut)
}
