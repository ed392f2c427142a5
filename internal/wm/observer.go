package wm

import (
	"github.com/pekwm/pekwm-go/internal/client"
	"github.com/pekwm/pekwm-go/internal/frame"
	"github.com/pekwm/pekwm-go/internal/observer"
)

// Event types published on w.bus, spec.md 9's observer pattern: every
// state transition a panel variable or a future external consumer might
// care about goes out as one of these rather than being poked at
// directly, the same decoupling original_source uses its
// ActionPerformed/hint observers for (see internal/observer's doc
// comment for the ordering guarantees this buys).
type (
	// FrameFocused is published whenever input focus moves to a new frame.
	FrameFocused struct{ Frame *frame.Frame }
	// WorkspaceChanged is published after the active workspace switches.
	WorkspaceChanged struct{ Index int }
	// ClientManaged is published once a newly managed client is mapped.
	ClientManaged struct{ Client *client.Client }
	// ClientUnmanaged is published once a client's frame is torn down.
	ClientUnmanaged struct{ Client *client.Client }
)

// wirePanelVars subscribes a low-priority handler that mirrors focus and
// workspace state into panel.VarData, so a configured panel script can
// read "wm.focused_title"/"wm.workspace" the same way it reads any other
// sampled variable (spec.md 4.6 "Panel variables").
func (w *WM) wirePanelVars() {
	w.bus.Subscribe(100, func(ev observer.Event) {
		switch e := ev.(type) {
		case FrameFocused:
			title := ""
			if e.Frame != nil {
				if c := e.Frame.Active(); c != nil {
					title = c.DisplayTitle
				}
			}
			w.vars.Set("wm.focused_title", title)
		case WorkspaceChanged:
			w.vars.Set("wm.workspace", w.ws.Name(e.Index))
		}
	})
}
