package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// GetTextProperty reads a string-typed property (STRING or
// UTF8_STRING), used for WM_NAME/_NET_WM_NAME/WM_WINDOW_ROLE.
func (c *Conn) GetTextProperty(w xproto.Window, atom xproto.Atom) (string, error) {
	reply, err := xproto.GetProperty(c.X, false, w, atom, xproto.GetPropertyTypeAny, 0, 1<<20).Reply()
	if err != nil {
		return "", fmt.Errorf("x11: get text property: %w", err)
	}
	if reply == nil || reply.ValueLen == 0 {
		return "", nil
	}
	return string(reply.Value), nil
}

// SetTextProperty writes value as UTF8_STRING under atom (used for
// _NET_WM_NAME/_NET_WM_VISIBLE_NAME style hints the WM itself sets).
func (c *Conn) SetTextProperty(w xproto.Window, atom xproto.Atom, value string) error {
	utf8, err := c.Atom("UTF8_STRING")
	if err != nil {
		return err
	}
	err = xproto.ChangePropertyChecked(
		c.X, xproto.PropModeReplace, w, atom, utf8, 8,
		uint32(len(value)), []byte(value),
	).Check()
	if err != nil {
		return fmt.Errorf("x11: set text property: %w", err)
	}
	return nil
}

// GetWindowTitle prefers _NET_WM_NAME (UTF-8) and falls back to
// WM_NAME, matching the teacher's setTitleProperty call site
// (funkycode-marwind wm/frame.go) which only reads one title source --
// generalized here to the dual-source ICCCM+EWMH lookup spec.md 4.1
// requires ("WM_NAME/UTF8 name").
func (c *Conn) GetWindowTitle(w xproto.Window) (string, error) {
	netName, err := c.Atom("_NET_WM_NAME")
	if err == nil {
		if title, err := c.GetTextProperty(w, netName); err == nil && title != "" {
			return title, nil
		}
	}
	wmName, err := c.Atom("WM_NAME")
	if err != nil {
		return "", err
	}
	return c.GetTextProperty(w, wmName)
}

// GetClassHint reads WM_CLASS, returning (instance, class).
func (c *Conn) GetClassHint(w xproto.Window) (instance, class string, err error) {
	atom, err := c.Atom("WM_CLASS")
	if err != nil {
		return "", "", err
	}
	raw, err := c.GetTextProperty(w, atom)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(strings.TrimRight(raw, "\x00"), "\x00", 2)
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	if len(parts) == 1 {
		return parts[0], parts[0], nil
	}
	return "", "", nil
}

// GetWindowRole reads WM_WINDOW_ROLE, returning "" when unset.
func (c *Conn) GetWindowRole(w xproto.Window) (string, error) {
	atom, err := c.Atom("WM_WINDOW_ROLE")
	if err != nil {
		return "", err
	}
	return c.GetTextProperty(w, atom)
}

// GetTransientFor reads WM_TRANSIENT_FOR, returning ok=false when unset.
func (c *Conn) GetTransientFor(w xproto.Window) (xproto.Window, bool, error) {
	atom, err := c.Atom("WM_TRANSIENT_FOR")
	if err != nil {
		return 0, false, err
	}
	reply, err := xproto.GetProperty(c.X, false, w, atom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return 0, false, fmt.Errorf("x11: get transient-for: %w", err)
	}
	if reply == nil || reply.ValueLen == 0 || len(reply.Value) < 4 {
		return 0, false, nil
	}
	id := xproto.Window(le32(reply.Value))
	return id, true, nil
}

// GetProtocols reads WM_PROTOCOLS into the set of supported atoms
// (WM_DELETE_WINDOW, WM_TAKE_FOCUS).
func (c *Conn) GetProtocols(w xproto.Window) (map[xproto.Atom]bool, error) {
	atom, err := c.Atom("WM_PROTOCOLS")
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(c.X, false, w, atom, xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: get protocols: %w", err)
	}
	protos := make(map[xproto.Atom]bool)
	if reply == nil {
		return protos, nil
	}
	for v := reply.Value; len(v) >= 4; v = v[4:] {
		protos[xproto.Atom(le32(v))] = true
	}
	return protos, nil
}

// SendProtocolMessage sends a WM_PROTOCOLS ClientMessage (used for
// WM_DELETE_WINDOW close requests and WM_TAKE_FOCUS, matching
// manager_ref/manager.go's takeFocusProp).
func (c *Conn) SendProtocolMessage(w xproto.Window, proto xproto.Atom, t xproto.Timestamp) error {
	wmProtocols, err := c.Atom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   wmProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(proto), uint32(t), 0, 0, 0,
		}),
	}
	err = xproto.SendEventChecked(c.X, false, w, 0, string(ev.Bytes())).Check()
	if err != nil {
		return fmt.Errorf("x11: send protocol message: %w", err)
	}
	return nil
}

// SetInputFocus sets input focus to w, recording t as the last event
// time via NoteEventTime so later lookups see a monotonic server clock.
func (c *Conn) SetInputFocus(w xproto.Window, t xproto.Timestamp) error {
	c.NoteEventTime(t)
	err := xproto.SetInputFocusChecked(c.X, xproto.InputFocusPointerRoot, w, t).Check()
	if err != nil {
		return fmt.Errorf("x11: set input focus: %w", err)
	}
	return nil
}

func le32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
