package wm

import (
	"strconv"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-go/internal/client"
	"github.com/pekwm/pekwm-go/internal/frame"
)

// closeActiveTab asks the active client to close via WM_DELETE_WINDOW
// when it supports the protocol, falling back to a forced
// DestroyWindow otherwise (spec.md 4.1 "Close": "a polite
// WM_DELETE_WINDOW request if the client declared support for it,
// otherwise the window is destroyed outright").
func (w *WM) closeActiveTab(f *frame.Frame) error {
	if f == nil {
		return nil
	}
	c := f.Active()
	if c == nil {
		return nil
	}
	if c.Protocols.DeleteWindow {
		return w.conn.SendProtocolMessage(c.Window, w.conn.MustAtom("WM_DELETE_WINDOW"), w.conn.LastEventTime())
	}
	return w.conn.DestroyWindow(c.Window)
}

// setClientState sets or clears mask on the active client's state and
// republishes _NET_WM_STATE.
func (w *WM) setClientState(f *frame.Frame, mask client.StateMask, on bool) error {
	if f == nil {
		return nil
	}
	c := f.Active()
	if c == nil {
		return nil
	}
	if on {
		c.State = c.State.Set(mask)
	} else {
		c.State = c.State.Clear(mask)
	}
	return w.publishWmState(c)
}

// toggleClientState flips mask on the active client's state.
func (w *WM) toggleClientState(f *frame.Frame, mask client.StateMask) error {
	if f == nil {
		return nil
	}
	c := f.Active()
	if c == nil {
		return nil
	}
	return w.setClientState(f, mask, !c.State.Has(mask))
}

func (w *WM) publishWmState(c *client.Client) error {
	var states []string
	add := func(mask client.StateMask, name string) {
		if c.State.Has(mask) {
			states = append(states, name)
		}
	}
	add(client.StateSticky, "_NET_WM_STATE_STICKY")
	add(client.StateShaded, "_NET_WM_STATE_SHADED")
	add(client.StateMaximizedVert, "_NET_WM_STATE_MAXIMIZED_VERT")
	add(client.StateMaximizedHorz, "_NET_WM_STATE_MAXIMIZED_HORZ")
	add(client.StateFullscreen, "_NET_WM_STATE_FULLSCREEN")
	add(client.StateIconified, "_NET_WM_STATE_HIDDEN")
	return w.ewmh.SetWmState(c.Window, states)
}

// transientFamily returns f together with every other Frame on the
// stack owning a child that declares itself transient for one of f's
// own children, in no particular order (spec.md 4.1 "Transients":
// "when a group with a transient parent is raised or lowered, the
// whole family (parent and all transients pointing at it) moves as
// one"). f itself is always first in the returned slice.
func (w *WM) transientFamily(f *frame.Frame) []*frame.Frame {
	family := []*frame.Frame{f}
	owned := make(map[xproto.Window]bool, len(f.Children))
	for _, c := range f.Children {
		owned[c.Window] = true
	}
	for _, it := range w.stackList.Items() {
		of, ok := it.(*frame.Frame)
		if !ok || of == f {
			continue
		}
		for _, c := range of.Children {
			transient := false
			for win := range owned {
				if c.IsTransientFor(win) {
					transient = true
					break
				}
			}
			if transient {
				family = append(family, of)
				break
			}
		}
	}
	return family
}

// raiseFrame moves f and its transient family to the top of f's layer
// in the stacking list -- f first, then each transient stacked above
// the previous member so the family keeps arriving in order above f
// (spec.md 4.1 "Transients": "parent first for raise") -- and pushes
// the new order onto the X server.
func (w *WM) raiseFrame(f *frame.Frame) error {
	if f == nil {
		return nil
	}
	family := w.transientFamily(f)
	w.stackList.Remove(f)
	w.insertIntoStack(f)
	ref := f
	for _, of := range family {
		if of == f {
			continue
		}
		w.stackList.Remove(of)
		w.stackList.StackAbove(of, ref)
		ref = of
	}
	w.restackAll()
	w.publishClientLists()
	return nil
}

// lowerFrame moves f and its transient family to the bottom of f's
// layer -- every transient first, f last, so f ends up beneath the
// whole family (spec.md 4.1 "Transients": "parent last for lower").
func (w *WM) lowerFrame(f *frame.Frame) error {
	if f == nil {
		return nil
	}
	family := w.transientFamily(f)
	for _, of := range family {
		if of != f {
			w.lowerSingle(of)
		}
	}
	w.lowerSingle(f)
	w.restackAll()
	w.publishClientLists()
	return nil
}

// lowerSingle moves f alone to the bottom of its layer, the mechanics
// shared by lowerFrame's per-family-member pass.
func (w *WM) lowerSingle(f *frame.Frame) {
	items := w.stackList.Items()
	w.stackList.Remove(f)
	var ref *frame.Frame
	for _, it := range items {
		if of, ok := it.(*frame.Frame); ok && of != f && of.Layer == f.Layer {
			ref = of
			break
		}
	}
	if ref != nil {
		w.stackList.StackBelow(f, ref)
	} else {
		w.insertIntoStack(f)
	}
}

// activateOrRaise focuses f if it isn't already active, or raises it
// if it is (spec.md 4.3 "ActivateOrRaise").
func (w *WM) activateOrRaise(f *frame.Frame) error {
	if f == nil {
		return nil
	}
	if active := w.activeFrame; active == f {
		return w.raiseFrame(f)
	}
	return w.focusFrame(f)
}

// focusFrame sets input focus to f's active client and records it as
// the most-recently-used frame.
func (w *WM) focusFrame(f *frame.Frame) error {
	if f == nil || f.IsStale() {
		return nil
	}
	c := f.Active()
	if c == nil {
		return nil
	}
	w.mru.Touch(focusCandidate{f})
	w.activeFrame = f
	_ = w.ewmh.SetActiveWindow(c.Window)
	if c.Protocols.TakeFocus {
		_ = w.conn.SendProtocolMessage(c.Window, w.conn.MustAtom("WM_TAKE_FOCUS"), w.conn.LastEventTime())
	}
	err := w.conn.SetInputFocus(c.Window, w.conn.LastEventTime())
	w.bus.Publish(FrameFocused{Frame: f})
	return err
}

// gotoWorkspace parses arg as a workspace index and switches to it,
// recording the previous workspace for back-and-forth toggling
// (spec.md 3 "Workspace": "back-and-forth toggle semantics").
func (w *WM) gotoWorkspace(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil
	}
	w.ws.Goto(n)
	return w.afterWorkspaceSwitch()
}

// sendToWorkspace moves every client tab of f to the workspace named by
// arg without switching the active workspace.
func (w *WM) sendToWorkspace(f *frame.Frame, arg string) error {
	if f == nil {
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil
	}
	for _, c := range f.Children {
		c.Workspace = n
		_ = w.ewmh.SetWmDesktop(c.Window, n)
	}
	w.applyWorkspaceVisibility()
	return nil
}

// afterWorkspaceSwitch republishes _NET_CURRENT_DESKTOP and remaps the
// frames now visible on the active workspace while unmapping the rest
// (spec.md 3 "Workspace": "only clients on the active workspace, plus
// sticky clients, are mapped").
func (w *WM) afterWorkspaceSwitch() error {
	_ = w.ewmh.SetCurrentDesktop(w.ws.Active())
	w.applyWorkspaceVisibility()
	w.bus.Publish(WorkspaceChanged{Index: w.ws.Active()})
	return nil
}

func (w *WM) applyWorkspaceVisibility() {
	active := w.ws.Active()
	for _, it := range w.stackList.Items() {
		f, ok := it.(*frame.Frame)
		if !ok || f.IsStale() {
			continue
		}
		visible := false
		for _, c := range f.Children {
			if c.Workspace == active || c.State.Has(client.StateSticky) {
				visible = true
				break
			}
		}
		if visible && !f.Mapped {
			_ = f.DoMap(w.conn)
		} else if !visible && f.Mapped {
			_ = f.DoUnmap(w.conn)
		}
	}
}
