package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Keymap maps a keycode to its keysyms-per-column list (column 0 is
// the unshifted symbol), the same shape the teacher's wm package keyed
// directly on for handleKeyPressEvent (keymap[e.Detail][0]).
type Keymap map[xproto.Keycode][]uint32

// LoadKeymap reads the X server's keyboard mapping for every keycode
// the connection setup reports, built directly on
// xproto.GetKeyboardMapping -- the same request xgbutil/keybind's own
// symbol-translation helpers issue, reproduced here without that
// package's callback-registration machinery since pekwm looks up a
// binding once per KeyPress rather than dispatching through per-window
// callbacks.
func (c *Conn) LoadKeymap() (Keymap, error) {
	setup := xproto.Setup(c.X)
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(c.X, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: get keyboard mapping: %w", err)
	}
	perKeycode := int(reply.KeysymsPerKeycode)
	km := make(Keymap, int(count))
	for i := 0; i < int(count); i++ {
		start := i * perKeycode
		end := start + perKeycode
		if perKeycode == 0 || end > len(reply.Keysyms) {
			break
		}
		syms := make([]uint32, perKeycode)
		for j, s := range reply.Keysyms[start:end] {
			syms[j] = uint32(s)
		}
		km[xproto.Keycode(int(first)+i)] = syms
	}
	return km, nil
}
