// Package client implements the managed-application-window side of the
// Client/Frame/Decor graph (spec.md 3 "Client", spec.md 4.1). A Client
// never outlives its owning Frame: it is created just before being
// reparented into a Frame and destroyed when its X window is destroyed
// or explicitly unmanaged.
package client

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/layer"
	"github.com/pekwm/pekwm-go/internal/registry"
)

// StateMask is the set of boolean WM-managed states a Client carries
// (spec.md 3: "sticky, shaded, iconified, maximized H/V, fullscreen,
// skip mask, cfg-deny mask").
type StateMask uint32

const (
	StateSticky StateMask = 1 << iota
	StateShaded
	StateIconified
	StateMaximizedHorz
	StateMaximizedVert
	StateFullscreen
	SkipMenus
	SkipFocusToggle
	SkipSnap
	SkipPager
	SkipTaskbar
	CfgDenyPosition
	CfgDenySize
	CfgDenyStacking
	CfgDenyIconify
	CfgDenyShade
	CfgDenyFullscreen
)

// Has reports whether every bit in mask is set in s.
func (s StateMask) Has(mask StateMask) bool { return s&mask == mask }

// Set and Clear return s with the given bits set/cleared.
func (s StateMask) Set(mask StateMask) StateMask   { return s | mask }
func (s StateMask) Clear(mask StateMask) StateMask { return s &^ mask }

// ActionMask enumerates the _NET_WM_ALLOWED_ACTIONS-equivalent
// permission bits (spec.md 3: "allowed/disallowed action masks").
type ActionMask uint32

const (
	ActionMove ActionMask = 1 << iota
	ActionResize
	ActionMinimize
	ActionShade
	ActionStick
	ActionMaximizeHorz
	ActionMaximizeVert
	ActionFullscreen
	ActionChangeDesktop
	ActionClose
)

// AllActions is the default fully-permissive allowed-actions mask.
const AllActions = ActionMove | ActionResize | ActionMinimize | ActionShade |
	ActionStick | ActionMaximizeHorz | ActionMaximizeVert | ActionFullscreen |
	ActionChangeDesktop | ActionClose

// Opacity holds the focused/unfocused opacity pair (spec.md 3).
type Opacity struct {
	Focused, Unfocused uint8
}

// Client is one managed X window (spec.md 3 "Client").
type Client struct {
	Window xproto.Window

	Name, Class, Role, Title string
	DisplayTitle             string // after AutoProperties title rewrite

	InitialState StateMask
	State        StateMask
	SavedState   StateMask

	Layer           layer.Layer
	Workspace       int
	TransientWindow xproto.Window // transient-for window id, 0 if none
	GroupName       string        // AutoProperties group identity, "" if ungrouped

	Allowed    ActionMask
	Disallowed ActionMask

	Opacity Opacity

	IconPixmap xproto.Pixmap

	Geometry geom.Rect

	Protocols struct {
		DeleteWindow bool
		TakeFocus    bool
	}

	Frame registry.Ref // weak back-reference to the owning Frame
}

// New constructs a Client for win with no Frame assigned yet;
// internal/frame's Frame.AddClient or Frame.AddClientBehind sets
// c.Frame once a Frame has accepted it.
func New(win xproto.Window) *Client {
	return &Client{
		Window:  win,
		Layer:   layer.Normal,
		Allowed: AllActions,
	}
}

// IsTransientFor reports whether c declares itself transient for
// parent (spec.md 4.1 "Transients").
func (c *Client) IsTransientFor(parent xproto.Window) bool {
	return c.TransientWindow != 0 && c.TransientWindow == parent
}

// EffectiveTitle returns the AutoProperties-rewritten title if one was
// computed, else the raw window title (spec.md 4.4 "Title rewriting":
// "the computed title replaces the displayed title but not the
// underlying window title property").
func (c *Client) EffectiveTitle() string {
	if c.DisplayTitle != "" {
		return c.DisplayTitle
	}
	return c.Title
}
