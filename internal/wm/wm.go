// Package wm wires every subsystem package into the running window
// manager: it owns the X connection, performs the startup handshake,
// and runs the single-threaded cooperative event loop that dispatches
// X events and due timers into the Client/Frame/Decor model (spec.md
// 3, spec.md 5).
//
// Grounded directly on the teacher's wm/wm.go (New/Init/Run/becomeWM,
// grabKeys, handleKeyPressEvent, findFrame, deleteFrame), generalized
// from marwind's single flat struct with inline tiling logic into a
// dispatcher over the internal/* subsystem packages; the WM-replacement
// handshake is supplemented from original_source/src/WindowManager.cc,
// which marwind's own becomeWM has no equivalent of at all (marwind
// simply fails with BadAccess if another WM is already running).
package wm

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-go/internal/action"
	"github.com/pekwm/pekwm-go/internal/autoprop"
	"github.com/pekwm/pekwm-go/internal/config"
	"github.com/pekwm/pekwm-go/internal/ctrl"
	"github.com/pekwm/pekwm-go/internal/decor"
	"github.com/pekwm/pekwm-go/internal/ewmh"
	"github.com/pekwm/pekwm-go/internal/focus"
	"github.com/pekwm/pekwm-go/internal/frame"
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/harbour"
	"github.com/pekwm/pekwm-go/internal/head"
	"github.com/pekwm/pekwm-go/internal/input"
	"github.com/pekwm/pekwm-go/internal/observer"
	"github.com/pekwm/pekwm-go/internal/panel"
	"github.com/pekwm/pekwm-go/internal/registry"
	"github.com/pekwm/pekwm-go/internal/sched"
	"github.com/pekwm/pekwm-go/internal/stack"
	"github.com/pekwm/pekwm-go/internal/strut"
	"github.com/pekwm/pekwm-go/internal/workspace"
	"github.com/pekwm/pekwm-go/internal/x11"
	"github.com/pekwm/pekwm-go/internal/xerrors"
)

// WM is the assembled window manager: one X connection and every
// subsystem that cooperates to manage it.
type WM struct {
	conn *x11.Conn
	ewmh *ewmh.Manager
	opts config.Options
	log  *logrus.Entry

	reg       *registry.Registry
	stackList *stack.List
	mru       *focus.MRU
	ws        *workspace.Set
	autoprops *autoprop.Store
	timers    *sched.Timeouts
	heads     *head.Set
	struts    *strut.Set
	harbour   *harbour.Harbour
	vars      *panel.VarData
	sampler   *panel.Sampler
	actions   *action.Table
	keymap    x11.Keymap
	dblClick  *input.DoubleClickDetector
	decor     *decor.Decor
	bus       *observer.Bus

	drag        *input.Drag
	dragFrame   *frame.Frame
	activeFrame *frame.Frame
	assembler   *ctrl.Assembler

	framesByClient map[xproto.Window]*frame.Frame
	framesByParent map[xproto.Window]*frame.Frame

	eventsCh <-chan pumped
	quit     bool
	quitErr  error
}

type pumped struct {
	ev   xgb.Event
	xerr xgb.Error
	err  error
}

// pumpEvents runs conn.WaitForEvent in its own goroutine, feeding a
// channel the main loop selects on alongside its scheduler timer --
// WaitForEvent itself has no timeout parameter, so the pump is the only
// way to multiplex it with sched.Timeouts/panel.Sampler firing
// (spec.md 5: "the event loop and the timer queue are the two sources
// of work; nothing else may block the loop").
func pumpEvents(conn *x11.Conn) <-chan pumped {
	ch := make(chan pumped, 32)
	go func() {
		for {
			ev, xerr, err := conn.WaitForEvent()
			ch <- pumped{ev, xerr, err}
			if err != nil {
				close(ch)
				return
			}
		}
	}()
	return ch
}

// New dials the display, performs the --replace WM-selection handshake
// (spec.md 6 "the replacement protocol via WM_Sn manager selection"),
// and wires up every subsystem. It does not start the event loop --
// call Run for that.
func New(opts config.Options) (*WM, error) {
	conn, err := x11.Dial(opts.Display)
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("component", "wm")

	events, err := becomeWM(conn, opts, log)
	if err != nil {
		conn.Close()
		return nil, err
	}

	mgr, err := ewmh.New(conn, "pekwm")
	if err != nil {
		conn.Close()
		return nil, err
	}

	keymap, err := conn.LoadKeymap()
	if err != nil {
		log.WithError(err).Warn("wm: failed to load keyboard mapping")
		keymap = x11.Keymap{}
	}

	struts := strut.New()
	heads := loadHeads(conn, struts)

	w := &WM{
		conn:           conn,
		ewmh:           mgr,
		opts:           opts,
		log:            log,
		reg:            registry.New(),
		stackList:      stack.New(),
		mru:            focus.New(),
		ws:             workspace.New(false),
		autoprops:      autoprop.NewStore(),
		timers:         sched.New(),
		heads:          heads,
		struts:         struts,
		vars:           panel.NewVarData(),
		actions:        action.NewTable(),
		keymap:         keymap,
		dblClick:       input.NewDoubleClickDetector(opts.DoubleClickMS),
		decor:          decor.Default(),
		bus:            observer.New(),
		assembler:      &ctrl.Assembler{},
		framesByClient: make(map[xproto.Window]*frame.Frame),
		framesByParent: make(map[xproto.Window]*frame.Frame),
		eventsCh:       events,
	}
	w.sampler = panel.NewSampler(w.vars, log.WithField("component", "panel"))
	w.harbour = harbour.New(struts, opts.HarbourHead, parsePlacement(opts.HarbourPlacement), opts.HarbourOntop, opts.HarbourSort)
	w.autoprops.SetHarbourSort(opts.HarbourSort)
	w.wirePanelVars()

	bindDefaultActions(w.actions)
	if err := w.grabBindings(); err != nil {
		w.log.WithError(err).Warn("wm: failed to grab one or more bindings")
	}

	return w, nil
}

// becomeWM implements spec.md 6's replacement handshake: if WM_Sn is
// already owned and --replace wasn't requested, fail with
// ErrWMPresent; otherwise acquire the selection, wait (with timeout)
// for the previous owner's window to go away, then select
// SubstructureRedirect on root. Supplemented from
// original_source/src/WindowManager.cc, which marwind's becomeWM has
// no equivalent of at all.
func becomeWM(conn *x11.Conn, opts config.Options, log *logrus.Entry) (<-chan pumped, error) {
	screenNum := 0
	selAtom, err := conn.Atom(fmt.Sprintf("WM_S%d", screenNum))
	if err != nil {
		return nil, err
	}
	existing, err := conn.CurrentSelectionOwner(selAtom)
	if err != nil {
		return nil, err
	}
	if existing != 0 && !opts.Replace {
		return nil, fmt.Errorf("wm: %w", xerrors.ErrWMPresent)
	}

	ch := pumpEvents(conn)

	if existing != 0 {
		_ = conn.ChangeWindowAttributesEventMask(existing, uint32(xproto.EventMaskStructureNotify))
	}

	if _, _, err := conn.AcquireManagerSelection(screenNum); err != nil {
		return ch, err
	}

	if existing != 0 {
		deadline := time.Now().Add(opts.ReplaceTimeout)
	waitLoop:
		for {
			select {
			case p, ok := <-ch:
				if !ok || p.err != nil {
					return ch, fmt.Errorf("wm: %w", xerrors.ErrReplaceTimeout)
				}
				switch e := p.ev.(type) {
				case xproto.DestroyNotifyEvent:
					if e.Window == existing {
						break waitLoop
					}
				case xproto.UnmapNotifyEvent:
					if e.Window == existing {
						break waitLoop
					}
				}
			case <-time.After(time.Until(deadline)):
				return ch, fmt.Errorf("wm: %w", xerrors.ErrReplaceTimeout)
			}
		}
	}

	if err := conn.BecomeWM(); err != nil {
		log.WithError(err).Error("wm: could not acquire substructure redirect")
		return ch, fmt.Errorf("wm: %w", xerrors.ErrWMPresent)
	}
	return ch, nil
}

func loadHeads(conn *x11.Conn, struts *strut.Set) *head.Set {
	rects, err := conn.QueryHeads()
	root := geom.Rect{W: int32(conn.Screen.WidthInPixels), H: int32(conn.Screen.HeightInPixels)}
	if err != nil || len(rects) == 0 {
		return head.NewSynthetic(root, struts)
	}
	return head.NewFromRects(rects, struts)
}

func parsePlacement(s string) harbour.Placement {
	switch s {
	case "TOP":
		return harbour.Top
	case "LEFT":
		return harbour.Left
	case "RIGHT":
		return harbour.Right
	default:
		return harbour.Bottom
	}
}

// Close tears down the WM's X-side resources. It does not reap child
// processes spawned via Exec actions -- they keep running, matching
// Unix daemon semantics.
func (w *WM) Close() {
	w.sampler.Shutdown()
	w.ewmh.Close()
	w.conn.Close()
}

// Scan manages every already-mapped top-level window found on root,
// supplementing a gap the teacher has no equivalent of at all (marwind
// never scans pre-existing windows); grounded on spec.md 4.1
// "Creation": "a window already mapped when the WM starts is managed
// during the initial scan".
func (w *WM) Scan() {
	children, err := w.conn.QueryTree(w.conn.Root)
	if err != nil {
		w.log.WithError(err).Warn("wm: initial scan failed")
		return
	}
	for _, win := range children {
		if err := w.manageWindow(win); err != nil {
			w.log.WithError(err).WithField("window", win).Debug("wm: skipped window during scan")
		}
	}
	w.restackAll()
	w.publishClientLists()
}

// Run is the main loop: it blocks on the event pump and the scheduler's
// next due time, dispatching each as it arrives, until Quit is
// requested (spec.md 5 "single-threaded cooperative": exactly one
// event or timer is handled at a time).
func (w *WM) Run() error {
	for !w.quit {
		var timerC <-chan time.Time
		if due, ok := w.timers.NextDue(); ok {
			d := time.Until(due)
			if d < 0 {
				d = 0
			}
			timerC = time.After(d)
		} else {
			timerC = time.After(time.Duration(w.opts.PanelTickSeconds) * time.Second)
		}

		select {
		case p, ok := <-w.eventsCh:
			if !ok {
				return fmt.Errorf("wm: %w", xerrors.ErrAssertion)
			}
			if p.err != nil {
				return p.err
			}
			if p.xerr != nil {
				w.log.WithField("xerror", p.xerr).Debug("wm: protocol error")
				continue
			}
			w.dispatch(p.ev)
		case now := <-timerC:
			w.timers.FireDue(now)
			w.sampler.Tick(now)
		}
	}
	return w.quitErr
}

// Quit requests the main loop stop after the current dispatch.
func (w *WM) Quit(err error) {
	w.quit = true
	w.quitErr = err
}

func (w *WM) dispatch(xev xgb.Event) {
	switch e := xev.(type) {
	case xproto.KeyPressEvent:
		w.conn.NoteEventTime(e.Time)
		w.handleKeyPress(e)
	case xproto.ButtonPressEvent:
		w.conn.NoteEventTime(e.Time)
		w.handleButtonPress(e)
	case xproto.ButtonReleaseEvent:
		w.conn.NoteEventTime(e.Time)
		w.handleButtonRelease(e)
	case xproto.MotionNotifyEvent:
		w.handleMotionNotify(e)
	case xproto.EnterNotifyEvent:
		w.conn.NoteEventTime(e.Time)
		w.handleEnterNotify(e)
	case xproto.ConfigureRequestEvent:
		w.handleConfigureRequest(e)
	case xproto.MapRequestEvent:
		if err := w.manageWindow(e.Window); err != nil {
			w.log.WithError(err).WithField("window", e.Window).Debug("wm: failed to manage window")
		}
	case xproto.UnmapNotifyEvent:
		w.handleUnmapNotify(e)
	case xproto.DestroyNotifyEvent:
		w.handleDestroyNotify(e)
	case xproto.ClientMessageEvent:
		w.handleClientMessage(e)
	case xproto.PropertyNotifyEvent:
		w.handlePropertyNotify(e)
	}
}
