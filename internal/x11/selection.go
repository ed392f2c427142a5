package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// AcquireManagerSelection implements the WM_Sn manager-selection
// protocol (spec.md 6 "the replacement protocol via WM_Sn manager
// selection"): create a hidden owner window, set it as the selection
// owner, and announce the change via a MANAGER ClientMessage on root so
// a --replace successor can detect takeover.
func (c *Conn) AcquireManagerSelection(screenNum int) (owner xproto.Window, selAtom xproto.Atom, err error) {
	name := fmt.Sprintf("WM_S%d", screenNum)
	selAtom, err = c.Atom(name)
	if err != nil {
		return 0, 0, err
	}

	owner, err = xproto.NewWindowId(c.X)
	if err != nil {
		return 0, 0, fmt.Errorf("x11: alloc selection owner id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c.X, c.Screen.RootDepth, owner, c.Root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, c.Screen.RootVisual,
		0, nil,
	).Check()
	if err != nil {
		return 0, 0, fmt.Errorf("x11: create selection owner window: %w", err)
	}

	t := c.LastEventTime()
	if err := xproto.SetSelectionOwnerChecked(c.X, owner, selAtom, t).Check(); err != nil {
		return 0, 0, fmt.Errorf("x11: set selection owner: %w", err)
	}

	reply, err := xproto.GetSelectionOwner(c.X, selAtom).Reply()
	if err != nil || reply.Owner != owner {
		return 0, 0, fmt.Errorf("x11: %w: could not become WM_Sn owner", errSelectionLost)
	}

	manager, err := c.Atom("MANAGER")
	if err != nil {
		return 0, 0, err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.Root,
		Type:   manager,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(t), uint32(selAtom), uint32(owner), 0, 0,
		}),
	}
	mask := uint32(xproto.EventMaskStructureNotify)
	if err := xproto.SendEventChecked(c.X, false, c.Root, mask, string(ev.Bytes())).Check(); err != nil {
		return 0, 0, fmt.Errorf("x11: announce manager selection: %w", err)
	}
	return owner, selAtom, nil
}

// CurrentSelectionOwner returns the window currently owning selAtom, or
// 0 if unowned -- used to detect a pre-existing WM before --replace.
func (c *Conn) CurrentSelectionOwner(selAtom xproto.Atom) (xproto.Window, error) {
	reply, err := xproto.GetSelectionOwner(c.X, selAtom).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: get selection owner: %w", err)
	}
	return reply.Owner, nil
}
