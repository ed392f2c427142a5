package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pekwm/pekwm-go/internal/geom"
)

// SetBoundingShapeRects applies a composite shape mask to w: the union
// of the given rectangles intersected with w's own bounding rectangle,
// used by Decor re-derivation to union child/border/title rectangles
// (spec.md 4.1 "Decor re-derivation"). A no-op (and nil error) when the
// server lacks the XShape extension -- the frame falls back to its
// default rectangular bounds.
func (c *Conn) SetBoundingShapeRects(w xproto.Window, rects []geom.Rect) error {
	if !c.HasShape || len(rects) == 0 {
		return nil
	}
	xrects := make([]xproto.Rectangle, len(rects))
	for i, r := range rects {
		xrects[i] = xproto.Rectangle{
			X: int16(r.X), Y: int16(r.Y),
			Width: clampDim(r.W), Height: clampDim(r.H),
		}
	}
	err := shape.RectanglesChecked(
		c.X, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted,
		w, 0, 0, xrects,
	).Check()
	if err != nil {
		return fmt.Errorf("x11: set bounding shape: %w", err)
	}
	return nil
}

// ClearBoundingShape resets w to its default rectangular bounds.
func (c *Conn) ClearBoundingShape(w xproto.Window) error {
	if !c.HasShape {
		return nil
	}
	err := shape.MaskChecked(c.X, shape.SoSet, shape.SkBounding, w, 0, 0, 0).Check()
	if err != nil {
		return fmt.Errorf("x11: clear bounding shape: %w", err)
	}
	return nil
}
