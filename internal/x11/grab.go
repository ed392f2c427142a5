package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// GrabServer/UngrabServer bracket the server grabs spec.md 5 requires
// during the initial scan, non-opaque interactive move/resize, WM
// shutdown, and the replacement handshake. Callers must defer Ungrab
// immediately after a successful Grab so every exit path (including a
// recovered panic) releases it.
func (c *Conn) GrabServer() error {
	if err := xproto.GrabServerChecked(c.X).Check(); err != nil {
		return fmt.Errorf("x11: grab server: %w", err)
	}
	return nil
}

func (c *Conn) UngrabServer() error {
	if err := xproto.UngrabServerChecked(c.X).Check(); err != nil {
		return fmt.Errorf("x11: ungrab server: %w", err)
	}
	return nil
}

// GrabPointerForMove grabs the pointer for an interactive move/resize
// loop with the cursor shape appropriate for the operation.
func (c *Conn) GrabPointerForMove(win xproto.Window, cursor xproto.Cursor) error {
	mask := uint16(xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskButtonMotion |
		xproto.EventMaskPointerMotion)
	reply, err := xproto.GrabPointer(
		c.X, false, c.Root, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		c.Root, cursor, xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return fmt.Errorf("x11: grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("x11: grab pointer: %w (status %d)", errGrabDenied, reply.Status)
	}
	_ = win
	return nil
}

func (c *Conn) UngrabPointer() error {
	if err := xproto.UngrabPointerChecked(c.X, xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("x11: ungrab pointer: %w", err)
	}
	return nil
}

// GrabKeyboardForMove grabs the keyboard for the keyboard move/resize
// loop of spec.md 4.3.
func (c *Conn) GrabKeyboardForMove() error {
	reply, err := xproto.GrabKeyboard(
		c.X, false, c.Root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Reply()
	if err != nil {
		return fmt.Errorf("x11: grab keyboard: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("x11: grab keyboard: %w (status %d)", errGrabDenied, reply.Status)
	}
	return nil
}

func (c *Conn) UngrabKeyboard() error {
	if err := xproto.UngrabKeyboardChecked(c.X, xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("x11: ungrab keyboard: %w", err)
	}
	return nil
}

// GrabKey and GrabButton register a passive grab on root for a bound
// action (funkycode-marwind wm/wm.go grabKeys).
func (c *Conn) GrabKey(keycode xproto.Keycode, modifiers uint16) error {
	return xproto.GrabKeyChecked(
		c.X, false, c.Root, modifiers, keycode,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
}

func (c *Conn) GrabButton(win xproto.Window, button xproto.Button, modifiers uint16) error {
	mask := uint16(xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease)
	return xproto.GrabButtonChecked(
		c.X, false, win, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, 0, button, modifiers,
	).Check()
}
