package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// wellKnown is interned eagerly on connect so hot paths (event dispatch,
// AutoProperties window-type lookup) never block on a round trip.
var wellKnown = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"WM_TAKE_FOCUS",
	"WM_STATE",
	"WM_CLASS",
	"WM_NAME",
	"WM_WINDOW_ROLE",
	"WM_TRANSIENT_FOR",
	"WM_NORMAL_HINTS",
	"WM_CLIENT_MACHINE",
	"UTF8_STRING",
	"_NET_SUPPORTED",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_LAYOUT",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_SHADED",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_BELOW",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_MENU",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_NORMAL",
	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_ALLOWED_ACTIONS",
	"_NET_WM_NAME",
	"_NET_WM_ICON",
	"_NET_WM_PID",
	"_NET_FRAME_EXTENTS",
	"_PEKWM_BG_PID",
	"_PEKWM_CMD",
	"MANAGER",
}

// InternAll primes the atom cache with every well-known atom this
// package manages. No startup path calls it; Atom otherwise interns
// each name on first use.
func (c *Conn) InternAll() error {
	for _, name := range wellKnown {
		if _, err := c.Atom(name); err != nil {
			return fmt.Errorf("x11: intern %q: %w", name, err)
		}
	}
	return nil
}

// Atom returns the interned atom for name, performing (and caching) an
// InternAtom round trip on first use.
func (c *Conn) Atom(name string) (xproto.Atom, error) {
	c.mu.Lock()
	if a, ok := c.atomByName[name]; ok {
		c.mu.Unlock()
		return a, nil
	}
	c.mu.Unlock()

	reply, err := xproto.InternAtom(c.X, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.atomByName[name] = reply.Atom
	c.nameByAtom[reply.Atom] = name
	c.mu.Unlock()
	return reply.Atom, nil
}

// MustAtom is Atom without an error return: on failure it logs the
// error and returns atom 0.
func (c *Conn) MustAtom(name string) xproto.Atom {
	a, err := c.Atom(name)
	if err != nil {
		c.log.WithError(err).WithField("atom", name).Error("failed to intern atom")
		return 0
	}
	return a
}

// AtomName reverse-looks-up a previously interned atom, used for
// logging and for matching _NET_WM_WINDOW_TYPE_* entries by name.
func (c *Conn) AtomName(a xproto.Atom) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.nameByAtom[a]
	return name, ok
}
