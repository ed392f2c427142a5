package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/pekwm/pekwm-go/internal/geom"
)

// SetWMName advertises the running window manager's name via WM_NAME on
// the root window, as the teacher's x11.SetWMName("Marwind") call does
// (funkycode-marwind wm/wm.go); the EWMH supporting-WM-check-window
// dance lives in internal/ewmh.
func (c *Conn) SetWMName(name string) error {
	atom, err := c.Atom("WM_NAME")
	if err != nil {
		return err
	}
	return c.SetTextProperty(c.Root, atom, name)
}

// SetActiveWindow is the minimal non-EWMH "who has focus" bookkeeping
// the teacher keeps directly in x11 (manager_ref/manager.go:
// m.warpPointerToFrame, m.setFocus -> x11.SetActiveWindow); full
// _NET_ACTIVE_WINDOW maintenance lives in internal/ewmh.
func (c *Conn) SetActiveWindow(w xproto.Window) error {
	atom, err := c.Atom("_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}
	err = xproto.ChangePropertyChecked(
		c.X, xproto.PropModeReplace, c.Root, atom, xproto.AtomWindow, 32,
		1, []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)},
	).Check()
	if err != nil {
		return fmt.Errorf("x11: set active window: %w", err)
	}
	return nil
}

// WarpPointer moves the pointer to (x, y) on the root window, used to
// center the cursor over a newly focused or grouped frame
// (manager_ref/manager.go warpPointerToFrame).
func (c *Conn) WarpPointer(x, y int32) error {
	err := xproto.WarpPointerChecked(c.X, 0, c.Root, 0, 0, 0, 0, int16(x), int16(y)).Check()
	if err != nil {
		return fmt.Errorf("x11: warp pointer: %w", err)
	}
	return nil
}

// QueryPointer returns the current pointer position relative to the
// root window, used by the MOUSETOPLEFT/MOUSECENTERED placement
// strategies to place a newly mapped frame at the pointer (spec.md 4.2
// "Placement strategies").
func (c *Conn) QueryPointer() (geom.Point, error) {
	reply, err := xproto.QueryPointer(c.X, c.Root).Reply()
	if err != nil {
		return geom.Point{}, fmt.Errorf("x11: query pointer: %w", err)
	}
	return geom.Point{X: int32(reply.RootX), Y: int32(reply.RootY)}, nil
}

// ChangeWindowAttributesEventMask is used by BecomeWM to select
// SubstructureRedirect on root (funkycode-marwind wm/wm.go becomeWM).
func (c *Conn) ChangeWindowAttributesEventMask(w xproto.Window, mask uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.X, w, xproto.CwEventMask, []uint32{mask}).Check()
}

// BecomeWM selects the substructure-redirect event mask on root that
// makes this process the window manager. Acquiring it fails with
// BadAccess if another WM already holds it (spec.md 6).
func (c *Conn) BecomeWM() error {
	mask := uint32(xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskFocusChange |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskSubstructureRedirect)
	if err := c.ChangeWindowAttributesEventMask(c.Root, mask); err != nil {
		return fmt.Errorf("x11: become wm: %w", err)
	}
	return nil
}
