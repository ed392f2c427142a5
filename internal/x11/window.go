package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pekwm/pekwm-go/internal/geom"
)

// CreateFrameWindow allocates an override-redirect input/output window
// used as a Frame's reparenting target, the same shape teacher's
// createParent builds (funkycode-marwind wm/frame.go).
func (c *Conn) CreateFrameWindow(g geom.Rect, borderPixel uint32) (xproto.Window, error) {
	id, err := xproto.NewWindowId(c.X)
	if err != nil {
		return 0, fmt.Errorf("x11: alloc window id: %w", err)
	}
	w, h := clampDim(g.W), clampDim(g.H)
	err = xproto.CreateWindowChecked(
		c.X, c.Screen.RootDepth, id, c.Root,
		int16(g.X), int16(g.Y), w, h, 0,
		xproto.WindowClassInputOutput, c.Screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{
			borderPixel,
			1,
			uint32(xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskExposure |
				xproto.EventMaskButtonPress |
				xproto.EventMaskButtonRelease |
				xproto.EventMaskFocusChange),
		},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create frame window: %w", err)
	}
	return id, nil
}

func clampDim(v int32) uint16 {
	if v < 1 {
		return 1
	}
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}

// Reparent moves client under parent at (0,0) and adds it to the save
// set, so a WM crash releases clients back to root instead of losing
// them (funkycode-marwind wm/frame.go reparent).
func (c *Conn) Reparent(client, parent xproto.Window) error {
	if err := xproto.ReparentWindowChecked(c.X, client, parent, 0, 0).Check(); err != nil {
		return fmt.Errorf("x11: reparent: %w", err)
	}
	// funkycode-marwind wm/frame.go: save-set insert via the core request,
	// using xfixes's mode constant (shared numeric value with xproto's own).
	_ = xproto.ChangeSaveSetChecked(c.X, xfixes.SaveSetModeInsert, client).Check()
	return nil
}

// ReparentToRoot is the inverse used on unmanage and on WM shutdown
// (spec.md 7 "Assertion violation in the core" panic path).
func (c *Conn) ReparentToRoot(client xproto.Window, x, y int16) error {
	return xproto.ReparentWindowChecked(c.X, client, c.Root, x, y).Check()
}

// MapWindow / UnmapWindow / DestroyWindow are direct Checked wrappers;
// kept as named methods so every X round trip in the codebase goes
// through x11 rather than bare xproto calls scattered across packages.
func (c *Conn) MapWindow(w xproto.Window) error {
	if err := xproto.MapWindowChecked(c.X, w).Check(); err != nil {
		return fmt.Errorf("x11: map window: %w", err)
	}
	return nil
}

func (c *Conn) UnmapWindow(w xproto.Window) error {
	if err := xproto.UnmapWindowChecked(c.X, w).Check(); err != nil {
		return fmt.Errorf("x11: unmap window: %w", err)
	}
	return nil
}

func (c *Conn) DestroyWindow(w xproto.Window) error {
	if err := xproto.DestroyWindowChecked(c.X, w).Check(); err != nil {
		return fmt.Errorf("x11: destroy window: %w", err)
	}
	return nil
}

// ConfigureWindow issues a ConfigureWindow restricted to position and
// size, the common case for frame/client geometry updates.
func (c *Conn) ConfigureWindow(w xproto.Window, g geom.Rect) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{
		uint32(int32ToUint16AsUint32(g.X)),
		uint32(int32ToUint16AsUint32(g.Y)),
		uint32(clampDim(g.W)),
		uint32(clampDim(g.H)),
	}
	if err := xproto.ConfigureWindowChecked(c.X, w, mask, values).Check(); err != nil {
		return fmt.Errorf("x11: configure window: %w", err)
	}
	return nil
}

func int32ToUint16AsUint32(v int32) uint32 {
	return uint32(uint16(int16(v)))
}

// SelectInput requests delivery of the given event mask for w.
func (c *Conn) SelectInput(w xproto.Window, mask uint32) error {
	if err := xproto.ChangeWindowAttributesChecked(c.X, w, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		return fmt.Errorf("x11: select input: %w", err)
	}
	return nil
}

// SendConfigureNotify synthesizes the ConfigureNotify a client expects
// after a WM-driven resize, matching the Java-popup workaround the
// teacher documents (funkycode-marwind wm/render.go).
func (c *Conn) SendConfigureNotify(w xproto.Window, g geom.Rect, borderWidth uint16) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            w,
		Window:           w,
		AboveSibling:     0,
		X:                int16(g.X),
		Y:                int16(g.Y),
		Width:            clampDim(g.W),
		Height:           clampDim(g.H),
		BorderWidth:      borderWidth,
		OverrideRedirect: false,
	}
	err := xproto.SendEventChecked(c.X, false, w, uint32(xproto.EventMaskStructureNotify), string(ev.Bytes())).Check()
	if err != nil {
		return fmt.Errorf("x11: send configure notify: %w", err)
	}
	return nil
}

// QueryTree returns the immediate children of w (used for the initial
// scan, spec.md 4.1 "Creation").
func (c *Conn) QueryTree(w xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.X, w).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: query tree: %w", err)
	}
	return reply.Children, nil
}

// RestackAbove restacks w directly above sibling, or to the top of its
// siblings when sibling is 0, driving the stacking list's in-memory
// order onto the X server (spec.md 3 "the stacking list... is the
// single source of truth for X stacking order").
func (c *Conn) RestackAbove(w, sibling xproto.Window) error {
	if sibling == 0 {
		mask := uint16(xproto.ConfigWindowStackMode)
		values := []uint32{uint32(xproto.StackModeAbove)}
		if err := xproto.ConfigureWindowChecked(c.X, w, mask, values).Check(); err != nil {
			return fmt.Errorf("x11: restack to top: %w", err)
		}
		return nil
	}
	mask := uint16(xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode)
	values := []uint32{uint32(sibling), uint32(xproto.StackModeAbove)}
	if err := xproto.ConfigureWindowChecked(c.X, w, mask, values).Check(); err != nil {
		return fmt.Errorf("x11: restack above %d: %w", sibling, err)
	}
	return nil
}

// OverrideRedirect reports whether w has override-redirect set. For a
// destroyed window GetWindowAttributes fails with BadWindow, and that
// error is returned wrapped.
func (c *Conn) OverrideRedirect(w xproto.Window) (bool, error) {
	reply, err := xproto.GetWindowAttributes(c.X, w).Reply()
	if err != nil {
		return false, fmt.Errorf("x11: get window attributes: %w", err)
	}
	return reply.OverrideRedirect, nil
}
