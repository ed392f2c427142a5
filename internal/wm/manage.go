package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-go/internal/autoprop"
	"github.com/pekwm/pekwm-go/internal/client"
	"github.com/pekwm/pekwm-go/internal/frame"
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/harbour"
	"github.com/pekwm/pekwm-go/internal/workspace"
)

// focusCandidate adapts a *frame.Frame to focus.Candidate. Frame
// already carries a Mapped bool field with the same name the interface
// needs as a method, so the adapter lives here instead of renaming a
// field the already-tested frame package exports.
type focusCandidate struct {
	f *frame.Frame
}

func (c focusCandidate) Mapped() bool    { return c.f.Mapped }
func (c focusCandidate) Focusable() bool { return !c.f.IsStale() && len(c.f.Children) > 0 }

// stackOrderCandidates converts the stacking list's bottom-to-top
// frame order into the []any shape focus.MRU.FindNext expects.
func (w *WM) stackOrderCandidates() []any {
	items := w.stackList.Items()
	out := make([]any, 0, len(items))
	for _, it := range items {
		if f, ok := it.(*frame.Frame); ok {
			out = append(out, focusCandidate{f})
		}
	}
	return out
}

// insertIntoStack places f at the correct layer-major position: just
// above the topmost existing member whose layer is no higher than f's,
// or at the very bottom if every existing member outranks it. The
// stack package only exposes absolute-top insertion and
// relative-to-an-existing-member repositioning, so the bottom case is
// handled by inserting at the top and then relocating below the
// current bottom member (spec.md 3 "the stacking list is layer-major:
// within a layer, windows keep their relative raise/lower order").
func (w *WM) insertIntoStack(f *frame.Frame) {
	items := w.stackList.Items()
	var ref *frame.Frame
	for _, it := range items {
		of, ok := it.(*frame.Frame)
		if !ok {
			continue
		}
		if of.Layer <= f.Layer {
			ref = of
		}
	}
	if ref != nil {
		w.stackList.InsertAbove(f, ref)
		return
	}
	w.stackList.Insert(f)
	if len(items) > 0 {
		if bottom, ok := items[0].(*frame.Frame); ok {
			w.stackList.StackBelow(f, bottom)
		}
	}
}

// restackAll pushes the in-memory stacking list's order onto the X
// server bottom-to-top, the generalization of the teacher's render.go
// single-output restack into a whole-screen, layer-aware pass.
func (w *WM) restackAll() {
	items := w.stackList.Items()
	var below xproto.Window
	for _, it := range items {
		f, ok := it.(*frame.Frame)
		if !ok || f.Parent == 0 || f.IsStale() {
			continue
		}
		if below != 0 {
			if err := w.conn.RestackAbove(f.Parent, below); err != nil {
				w.log.WithError(err).WithField("frame", f.ID).Debug("wm: restack failed")
			}
		}
		below = f.Parent
	}
}

// publishClientLists mirrors the managed set and the stacking order
// onto _NET_CLIENT_LIST / _NET_CLIENT_LIST_STACKING (spec.md 3).
func (w *WM) publishClientLists() {
	items := w.stackList.Items()
	stacking := make([]xproto.Window, 0, len(items))
	for _, it := range items {
		if f, ok := it.(*frame.Frame); ok {
			for _, c := range f.Children {
				stacking = append(stacking, c.Window)
			}
		}
	}
	mapped := make([]xproto.Window, 0, len(w.framesByClient))
	for win := range w.framesByClient {
		mapped = append(mapped, win)
	}
	_ = w.ewmh.SetClientList(mapped)
	_ = w.ewmh.SetClientListStacking(stacking)
}

// manageWindow begins managing win: a new Frame is created, win is
// reparented into it, its hints are read and run through
// AutoProperties, and it is inserted into the stacking list and MRU.
// Mirrors the teacher's implicit "MapRequest creates a frame" flow
// (funkycode-marwind wm/wm.go's MapRequestEvent case + wm/frame.go
// createFrame/reparent) generalized to the tabbed Client/Frame model
// and enriched with the hint reads and AutoProperties lookup spec.md
// 4.1/4.4 require, which marwind has no equivalent of at all.
func (w *WM) manageWindow(win xproto.Window) error {
	if _, managed := w.framesByClient[win]; managed {
		return nil
	}
	if or, err := w.conn.OverrideRedirect(win); err == nil && or {
		return nil
	}

	instance, class, _ := w.conn.GetClassHint(win)
	role, _ := w.conn.GetWindowRole(win)
	title, _ := w.conn.GetWindowTitle(win)
	transient, hasTransient, _ := w.conn.GetTransientFor(win)
	protocols, _ := w.conn.GetProtocols(win)

	wtypes, _ := w.ewmh.WmWindowType(win)
	windowType := ""
	if len(wtypes) > 0 {
		windowType = wtypes[0]
	}

	// Dockapp detection is simplified to the EWMH window-type hint
	// rather than the ICCCM WM_HINTS withdrawn-state convention pekwm
	// itself uses, since internal/x11/properties.go has no WM_HINTS
	// reader; see DESIGN.md.
	if windowType == "_NET_WM_WINDOW_TYPE_DOCK" {
		return w.manageDockapp(win)
	}

	hint := autoprop.ClassHint{Name: instance, Class: class, Role: role, Title: title}
	phase := autoprop.ApplyOnStart
	if hasTransient {
		phase = autoprop.ApplyOnTransient
	}
	prop, hasProp := w.autoprops.FindAutoProperty(hint, w.ws.Active(), phase, windowType)

	c := client.New(win)
	c.Name, c.Class, c.Role, c.Title = instance, class, role, title
	c.DisplayTitle = w.rewriteTitle(hint, title)
	if hasTransient {
		c.TransientWindow = transient
	}
	c.Protocols.DeleteWindow = protocols[w.conn.MustAtom("WM_DELETE_WINDOW")]
	c.Protocols.TakeFocus = protocols[w.conn.MustAtom("WM_TAKE_FOCUS")]
	c.Workspace = w.ws.Active()
	if hasProp && prop.Mask&autoprop.FieldGroup != 0 {
		c.GroupName = prop.GroupName
	}

	group := w.groupCandidate(c, prop, hasProp)
	grouped := group != nil

	f := group
	if f == nil {
		f = frame.New(w.reg, w.decor)
	}
	if hasProp && !grouped {
		applyAutoProperty(f, c, prop)
	}

	parent := f.Parent
	if parent == 0 {
		var err error
		parent, err = frame.CreateParent(w.conn, defaultBorderPixel)
		if err != nil {
			return fmt.Errorf("wm: create parent for %d: %w", win, err)
		}
	}
	if err := f.Reparent(w.conn, parent, win); err != nil {
		return err
	}
	if grouped && prop.GroupBehind {
		f.AddClientBehind(c)
	} else {
		f.AddClient(c)
	}

	if !grouped {
		f.Geometry = w.placeNewFrame(f, prop, hasProp)
		if err := f.Reconfigure(w.conn); err != nil {
			w.log.WithError(err).WithField("frame", f.ID).Debug("wm: initial reconfigure failed")
		}
		w.insertIntoStack(f)
	} else if err := f.Reconfigure(w.conn); err != nil {
		w.log.WithError(err).WithField("frame", f.ID).Debug("wm: group reconfigure failed")
	}

	w.framesByClient[win] = f
	w.framesByParent[parent] = f
	w.mru.Touch(focusCandidate{f})

	_ = w.ewmh.SetWmDesktop(win, c.Workspace)
	_ = w.ewmh.SetWmAllowedActions(win, actionMaskToAtoms(c.Allowed))
	w.publishClientLists()

	if err := f.DoMap(w.conn); err != nil {
		return err
	}
	if grouped && prop.GroupRaise {
		_ = w.raiseFrame(f)
	}
	w.restackAll()
	w.bus.Publish(ClientManaged{Client: c})
	return nil
}

// groupCandidate searches for an existing Frame that c should join as a
// new tab instead of getting a Frame of its own, implementing
// AutoProperties grouping (spec.md 4.1 "Grouping": "a matched
// GroupName joins a new client to an existing frame sharing that name
// as a tab instead of opening a new frame"). Returns nil when c has no
// group or no eligible Frame exists yet.
//
// Grounded on original_source/src/WindowManager.cc's
// findGroup/findGroupMatch/findGroupMatchProperty: group_focused_first
// checks the currently active frame before scanning the rest, group_global
// widens the search past the active workspace, and group_size caps how
// many tabs a Frame may accumulate before it stops matching.
func (w *WM) groupCandidate(c *client.Client, prop autoprop.AutoProperty, hasProp bool) *frame.Frame {
	if !hasProp || prop.Mask&autoprop.FieldGroup == 0 || prop.GroupName == "" {
		return nil
	}
	active := w.ws.Active()
	matches := func(f *frame.Frame) bool {
		if f == nil || f.IsStale() || len(f.Children) == 0 {
			return false
		}
		if prop.GroupSize > 0 && len(f.Children) >= prop.GroupSize {
			return false
		}
		if !prop.GroupGlobal {
			onWorkspace := false
			for _, ch := range f.Children {
				if ch.Workspace == active {
					onWorkspace = true
					break
				}
			}
			if !onWorkspace {
				return false
			}
		}
		for _, ch := range f.Children {
			if ch.GroupName == prop.GroupName {
				return true
			}
		}
		return false
	}
	if prop.GroupFocusedFirst && matches(w.activeFrame) {
		return w.activeFrame
	}
	for _, it := range w.stackList.Items() {
		if f, ok := it.(*frame.Frame); ok && matches(f) {
			return f
		}
	}
	return nil
}

// defaultBorderPixel is the background pixel of every new frame parent
// window (parents are created with a zero-width border); pekwm themes
// would normally drive this from the loaded Decor, but this module has
// no pixmap/color loader (spec.md Non-goals exclude theme rendering),
// so parents are plain black.
const defaultBorderPixel = 0x000000

// manageDockapp hands win to the harbour instead of creating a Frame
// for it: it adds an empty DockApp to the harbour's layout on the
// configured harbour head and maps win where it is. win is not
// reparented into a harbour window, and the DockApp holds no reference
// to win, so the harbour's placement is not applied to it.
func (w *WM) manageDockapp(win xproto.Window) error {
	head := w.heads.At(w.opts.HarbourHead)
	da := &harbour.DockApp{}
	w.harbour.Add(da, head.Rect)
	return w.conn.MapWindow(win)
}

// unmanageWindow removes win's Frame entirely, used when its last
// client tab is destroyed.
func (w *WM) unmanageWindow(f *frame.Frame) {
	for _, c := range f.Children {
		delete(w.framesByClient, c.Window)
		w.bus.Publish(ClientUnmanaged{Client: c})
	}
	if f.Parent != 0 {
		delete(w.framesByParent, f.Parent)
	}
	w.stackList.Remove(f)
	w.mru.Forget(focusCandidate{f})
	w.publishClientLists()
}

func applyAutoProperty(f *frame.Frame, c *client.Client, p autoprop.AutoProperty) {
	if p.Mask&autoprop.FieldLayer != 0 {
		f.Layer = p.Layer
	}
	if p.Mask&autoprop.FieldWorkspace != 0 {
		c.Workspace = p.Workspace
	}
	if p.Mask&autoprop.FieldSticky != 0 && p.Sticky {
		c.State = c.State.Set(client.StateSticky)
	}
	if p.Mask&autoprop.FieldShaded != 0 && p.Shaded {
		c.State = c.State.Set(client.StateShaded)
	}
	if p.Mask&autoprop.FieldIconified != 0 && p.Iconified {
		c.State = c.State.Set(client.StateIconified)
	}
	if p.Mask&autoprop.FieldMaximizedVert != 0 && p.MaximizedVert {
		c.State = c.State.Set(client.StateMaximizedVert)
	}
	if p.Mask&autoprop.FieldMaximizedHorz != 0 && p.MaximizedHorz {
		c.State = c.State.Set(client.StateMaximizedHorz)
	}
	if p.Mask&autoprop.FieldFullscreen != 0 && p.Fullscreen {
		c.State = c.State.Set(client.StateFullscreen)
	}
	if p.Mask&autoprop.FieldAllowedActions != 0 {
		c.Allowed = client.ActionMask(p.AllowedActions)
	}
	if p.Mask&autoprop.FieldDisallowedActions != 0 {
		c.Disallowed = client.ActionMask(p.DisallowedActions)
	}
}

// rewriteTitle applies the first matching title rule from AutoProperties
// to hint, falling back to the unmodified title when none match
// (spec.md 4.4 supplemented "Title rewriting").
func (w *WM) rewriteTitle(hint autoprop.ClassHint, title string) string {
	hint.Title = title
	return w.autoprops.RewriteTitle(hint)
}

// placeNewFrame picks an initial geometry for a freshly managed frame
// on the first head's (index 0) usable area, or a 640x480 area at the
// origin when no head is known, consulting the matched
// AutoProperty's Placement field when one applies and falling back to
// the configured default strategy otherwise (spec.md 4.2 "Layout on
// heads", spec.md 4.4 "Placement"). The default window size mirrors
// pekwm's own 640x480 fallback for clients that never set
// WM_NORMAL_HINTS.
func (w *WM) placeNewFrame(f *frame.Frame, prop autoprop.AutoProperty, hasProp bool) geom.Rect {
	idx := 0
	usable := geom.Rect{W: 640, H: 480}
	if w.heads.Len() > idx {
		usable = w.heads.At(idx).UsableArea()
	}
	const defaultW, defaultH = 640, 480
	width, height := int32(defaultW), int32(defaultH)
	if usable.W < width {
		width = usable.W
	}
	if usable.H < height {
		height = usable.H
	}
	winSize := geom.Rect{W: width, H: height}

	strategyName := w.opts.Placement
	if hasProp && prop.Mask&autoprop.FieldPlacement != 0 && prop.Placement != "" {
		strategyName = prop.Placement
	}
	strategy := parseWorkspacePlacement(strategyName)

	var mouse geom.Point
	if strategy == workspace.PlacementMouseTopLeft || strategy == workspace.PlacementMouseCentered {
		mouse, _ = w.conn.QueryPointer()
	}

	var existing []geom.Rect
	if strategy == workspace.PlacementSmart {
		for _, it := range w.stackList.Items() {
			if of, ok := it.(*frame.Frame); ok && of != f && of.Mapped {
				existing = append(existing, of.Geometry)
			}
		}
	}

	return w.ws.Place(strategy, existing, usable, mouse, winSize)
}

// parseWorkspacePlacement maps a pekwm-style placement strategy name
// onto workspace.Placement, defaulting to PlacementSmart for an unknown
// or empty name (original_source's own PLACENEW default).
func parseWorkspacePlacement(s string) workspace.Placement {
	switch s {
	case "CENTERED":
		return workspace.PlacementCentered
	case "MOUSETOPLEFT", "MOUSE_TOP_LEFT":
		return workspace.PlacementMouseTopLeft
	case "MOUSECENTERED", "MOUSE_CENTERED":
		return workspace.PlacementMouseCentered
	case "CASCADE":
		return workspace.PlacementCascade
	case "SMART":
		return workspace.PlacementSmart
	default:
		return workspace.PlacementSmart
	}
}

func actionMaskToAtoms(mask client.ActionMask) []string {
	var out []string
	add := func(bit client.ActionMask, name string) {
		if mask&bit != 0 {
			out = append(out, name)
		}
	}
	add(client.ActionMove, "_NET_WM_ACTION_MOVE")
	add(client.ActionResize, "_NET_WM_ACTION_RESIZE")
	add(client.ActionMinimize, "_NET_WM_ACTION_MINIMIZE")
	add(client.ActionShade, "_NET_WM_ACTION_SHADE")
	add(client.ActionStick, "_NET_WM_ACTION_STICK")
	add(client.ActionMaximizeHorz, "_NET_WM_ACTION_MAXIMIZE_HORZ")
	add(client.ActionMaximizeVert, "_NET_WM_ACTION_MAXIMIZE_VERT")
	add(client.ActionFullscreen, "_NET_WM_ACTION_FULLSCREEN")
	add(client.ActionChangeDesktop, "_NET_WM_ACTION_CHANGE_DESKTOP")
	add(client.ActionClose, "_NET_WM_ACTION_CLOSE")
	return out
}
