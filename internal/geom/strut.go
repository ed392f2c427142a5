package geom

// Strut reserves pixels on one edge of a head. Head -1 means "no head
// assigned yet"; a registered Strut is always assigned to a concrete
// head index before it contributes to an effective strut.
type Strut struct {
	Left, Right, Top, Bottom int32
	Head                     int
}

// IsZero reports whether the strut reserves no pixels at all.
func (s Strut) IsZero() bool {
	return s.Left == 0 && s.Right == 0 && s.Top == 0 && s.Bottom == 0
}

// Max returns the per-direction maximum of s and o, keeping s's head.
func (s Strut) Max(o Strut) Strut {
	return Strut{
		Left:   max32(s.Left, o.Left),
		Right:  max32(s.Right, o.Right),
		Top:    max32(s.Top, o.Top),
		Bottom: max32(s.Bottom, o.Bottom),
		Head:   s.Head,
	}
}

// Shrink returns r with the strut's reservations removed from each
// side it applies to, used to compute a head's usable (non-strut) area.
func (r Rect) Shrink(s Strut) Rect {
	return Rect{
		X: r.X + s.Left,
		Y: r.Y + s.Top,
		W: r.W - s.Left - s.Right,
		H: r.H - s.Top - s.Bottom,
	}
}
