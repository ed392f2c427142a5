// Package geom provides the rectangle and point arithmetic shared by every
// stackable object: clients, frames, the harbour, and heads.
package geom

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y int32
	W, H int32
}

// FromCorners builds a Rect from two opposite corners, normalizing the
// ordering so W and H are always non-negative.
func FromCorners(x0, y0, x1, y1 int32) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Right returns the X coordinate just past the rectangle's right edge.
func (r Rect) Right() int32 { return r.X + r.W }

// Bottom returns the Y coordinate just past the rectangle's bottom edge.
func (r Rect) Bottom() int32 { return r.Y + r.H }

// Area returns the rectangle's area in square pixels. Degenerate
// rectangles (W or H <= 0) have zero area.
func (r Rect) Area() int64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return int64(r.W) * int64(r.H)
}

// CenterX and CenterY return the rectangle's center point.
func (r Rect) CenterX() int32 { return r.X + r.W/2 }
func (r Rect) CenterY() int32 { return r.Y + r.H/2 }

// Overlaps reports whether r and o share any pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersection returns the overlapping sub-rectangle of r and o. The
// second return value is false when the rectangles don't overlap, in
// which case the Rect is the zero value.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	if !r.Overlaps(o) {
		return Rect{}, false
	}
	x0 := max32(r.X, o.X)
	y0 := max32(r.Y, o.Y)
	x1 := min32(r.Right(), o.Right())
	y1 := min32(r.Bottom(), o.Bottom())
	return FromCorners(x0, y0, x1, y1), true
}

// OverlapPercent returns what fraction (0..1) of r's area is covered by
// its intersection with o. Used by the SMART placement strategy to
// score candidate positions against already-mapped frames.
func (r Rect) OverlapPercent(o Rect) float64 {
	area := r.Area()
	if area == 0 {
		return 0
	}
	isect, ok := r.Intersection(o)
	if !ok {
		return 0
	}
	return float64(isect.Area()) / float64(area)
}

// Contains reports whether p lies within r (right/bottom exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// CenterInside returns a w x h rectangle centered inside r.
func (r Rect) CenterInside(w, h int32) Rect {
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// Clamp returns r translated and clipped so that it fits entirely
// within bounds, preserving W/H when bounds is large enough.
func (r Rect) Clamp(bounds Rect) Rect {
	w, h := r.W, r.H
	if w > bounds.W {
		w = bounds.W
	}
	if h > bounds.H {
		h = bounds.H
	}
	x, y := r.X, r.Y
	if x < bounds.X {
		x = bounds.X
	}
	if y < bounds.Y {
		y = bounds.Y
	}
	if x+w > bounds.Right() {
		x = bounds.Right() - w
	}
	if y+h > bounds.Bottom() {
		y = bounds.Bottom() - h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Point is a screen coordinate pair.
type Point struct {
	X, Y int32
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// NearestCenter returns the index into rects whose center is nearest to
// p, used for head-lookup-by-nearest-center (spec.md 3 "Head").
func NearestCenter(p Point, rects []Rect) int {
	best := -1
	var bestDist int64
	for i, r := range rects {
		dx := int64(r.CenterX() - p.X)
		dy := int64(r.CenterY() - p.Y)
		d := dx*dx + dy*dy
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
