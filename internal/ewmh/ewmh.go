// Package ewmh maintains every EWMH/ICCCM atom spec.md 6 lists
// (_NET_SUPPORTED, _NET_CLIENT_LIST, _NET_WM_STATE, ...) plus the
// hidden manager windows used for hint exchange and the WM-replacement
// selection. It is built on xgbutil's ewmh/icccm helpers
// (BurntSushi-xgbutil, proven to coexist with BurntSushi/xgb by
// noisetorch-NoiseTorch's go.mod) layered on top of the same live
// connection internal/x11 already owns.
package ewmh

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	log "github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-go/internal/layer"
	"github.com/pekwm/pekwm-go/internal/x11"
)

// stateAtomNames mirrors spec.md 6's _NET_WM_STATE list.
var stateAtomNames = []string{
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
}

var supportedAtomNames = append([]string{
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
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_ALLOWED_ACTIONS",
	"_NET_WM_NAME",
	"_NET_WM_ICON",
	"_NET_WM_PID",
	"_NET_FRAME_EXTENTS",
}, stateAtomNames...)

// Manager owns the hidden supporting-WM-check window and mirrors model
// state onto the EWMH atoms other tools (pagers, taskbars, pekwm_panel)
// read.
type Manager struct {
	x11 *x11.Conn
	xu  *xgbutil.XUtil

	checkWin xproto.Window
	log      *log.Entry
}

// New wraps conn's live connection in an xgbutil.XUtil (xgbutil.NewConnXgb
// re-uses the existing xgb.Conn rather than dialing a second connection)
// and creates the supporting-WM-check window EWMH requires.
func New(conn *x11.Conn, wmName string) (*Manager, error) {
	xu, err := xgbutil.NewConnXgb(conn.X)
	if err != nil {
		return nil, fmt.Errorf("ewmh: wrap connection: %w", err)
	}

	check, err := xproto.NewWindowId(conn.X)
	if err != nil {
		return nil, fmt.Errorf("ewmh: alloc check window id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		conn.X, conn.Screen.RootDepth, check, conn.Root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, conn.Screen.RootVisual,
		0, nil,
	).Check()
	if err != nil {
		return nil, fmt.Errorf("ewmh: create check window: %w", err)
	}

	m := &Manager{x11: conn, xu: xu, checkWin: check, log: log.WithField("component", "ewmh")}

	if err := icccm.WmNameSet(xu, check, wmName); err != nil {
		m.log.WithError(err).Warn("failed to set check window WM_NAME")
	}
	if err := ewmh.WmNameSet(xu, check, wmName); err != nil {
		m.log.WithError(err).Warn("failed to set check window _NET_WM_NAME")
	}
	if err := ewmh.SupportingWmCheckSet(xu, conn.Root, check); err != nil {
		m.log.WithError(err).Warn("failed to set root _NET_SUPPORTING_WM_CHECK")
	}
	if err := ewmh.SupportingWmCheckSet(xu, check, check); err != nil {
		m.log.WithError(err).Warn("failed to set check window _NET_SUPPORTING_WM_CHECK")
	}
	if err := ewmh.SupportedSet(xu, supportedAtomNames); err != nil {
		m.log.WithError(err).Warn("failed to set _NET_SUPPORTED")
	}

	return m, nil
}

// Close destroys the hidden check window.
func (m *Manager) Close() {
	_ = m.x11.DestroyWindow(m.checkWin)
}

// SetClientList publishes _NET_CLIENT_LIST in mapping order.
func (m *Manager) SetClientList(wins []xproto.Window) error {
	return wrap(ewmh.ClientListSet(m.xu, toIDs(wins)))
}

// SetClientListStacking publishes _NET_CLIENT_LIST_STACKING, the
// bottom-to-top order of the global stacking list (spec.md 3 "Stacking
// list... drives... EWMH _NET_CLIENT_LIST_STACKING").
func (m *Manager) SetClientListStacking(wins []xproto.Window) error {
	return wrap(ewmh.ClientListStackingSet(m.xu, toIDs(wins)))
}

// SetNumberOfDesktops / SetDesktopNames / SetCurrentDesktop mirror the
// workspace set onto its EWMH equivalents (spec.md 3 "Workspace").
func (m *Manager) SetNumberOfDesktops(n int) error {
	return wrap(ewmh.NumberOfDesktopsSet(m.xu, uint(n)))
}

func (m *Manager) SetDesktopNames(names []string) error {
	return wrap(ewmh.DesktopNamesSet(m.xu, names))
}

func (m *Manager) SetCurrentDesktop(idx int) error {
	return wrap(ewmh.CurrentDesktopSet(m.xu, uint(idx)))
}

// SetActiveWindow mirrors the focused Frame's representative window.
func (m *Manager) SetActiveWindow(w xproto.Window) error {
	return wrap(ewmh.ActiveWindowSet(m.xu, xproto.Id(w)))
}

// SetWmDesktop / SetWmState / SetWmAllowedActions / SetWmStrutPartial /
// SetFrameExtents mirror a single client's per-window hints.
func (m *Manager) SetWmDesktop(w xproto.Window, idx int) error {
	return wrap(ewmh.WmDesktopSet(m.xu, xproto.Id(w), uint(idx)))
}

func (m *Manager) SetWmState(w xproto.Window, states []string) error {
	return wrap(ewmh.WmStateSet(m.xu, xproto.Id(w), states))
}

func (m *Manager) SetWmAllowedActions(w xproto.Window, actions []string) error {
	return wrap(ewmh.WmAllowedActionsSet(m.xu, xproto.Id(w), actions))
}

func (m *Manager) SetWmStrutPartial(w xproto.Window, left, right, top, bottom uint) error {
	return wrap(ewmh.WmStrutPartialSet(m.xu, xproto.Id(w), ewmh.WmStrutPartial{
		Left: left, Right: right, Top: top, Bottom: bottom,
	}))
}

func (m *Manager) SetFrameExtents(w xproto.Window, left, right, top, bottom uint) error {
	return wrap(ewmh.FrameExtentsSet(m.xu, xproto.Id(w), ewmh.FrameExtents{
		Left: left, Right: right, Top: top, Bottom: bottom,
	}))
}

func (m *Manager) SetWmPid(w xproto.Window, pid uint) error {
	return wrap(ewmh.WmPidSet(m.xu, xproto.Id(w), pid))
}

// WmWindowType reads the client-declared _NET_WM_WINDOW_TYPE atoms, used
// by AutoProperties window-type default lookup (spec.md 4.4).
func (m *Manager) WmWindowType(w xproto.Window) ([]string, error) {
	types, err := ewmh.WmWindowTypeGet(m.xu, xproto.Id(w))
	if err != nil {
		return nil, wrap(err)
	}
	return types, nil
}

// LayerStateAtoms returns the subset of stateAtomNames relevant to l,
// used so DESKTOP/DOCK/... default layers round-trip through
// _NET_WM_STATE consistently with spec.md 4.4's window-type defaults.
func LayerStateAtoms(l layer.Layer) []string {
	switch l {
	case layer.Above, layer.OnTop:
		return []string{"_NET_WM_STATE_ABOVE"}
	case layer.Below, layer.Desktop:
		return []string{"_NET_WM_STATE_BELOW"}
	default:
		return nil
	}
}

func toIDs(wins []xproto.Window) []xproto.Id {
	ids := make([]xproto.Id, len(wins))
	for i, w := range wins {
		ids[i] = xproto.Id(w)
	}
	return ids
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("ewmh: %w", err)
}
