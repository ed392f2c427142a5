// Package action names the bindable operations a key or button press
// can trigger and the table that maps (modifiers, keycode/button) pairs
// to them (spec.md 4.3 "Action lookup"). Grounded on the teacher's
// wm/wm.go grabKeys/handleKeyPressEvent, which already has the shape of
// "a list of {modifiers, codes, action func} tuples, GrabKey every code
// up front, look one up per KeyPress" -- generalized here from a single
// flat slice searched linearly into a table keyed for O(1) lookup and
// from hardcoded `action.act()` closures into a named Kind so the
// keybinding file (out of scope) can refer to actions by name.
package action

// Kind names one bindable operation.
type Kind int

const (
	Close Kind = iota
	Iconify
	MaximizeVert
	MaximizeHorz
	MaximizeFull
	Shade
	Stick
	Fullscreen
	Raise
	Lower
	ActivateOrRaise
	MoveResize
	Resize
	NextTab
	PrevTab
	CloseTab
	GotoWorkspace
	GotoWorkspaceBackAndForth
	SendToWorkspace
	MoveInWorkspace // left/right/up/down, pager-style
	Exec
	Restart
	Quit
)

// Modifiers is a platform-independent modifier bitmask mirrored onto
// the X11 modifier bits by internal/input when grabbing.
type Modifiers uint16

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModMod1
	ModMod4
)

// Binding associates a trigger (a keysym or button number, disambiguated
// by the caller) plus modifiers with an action and its argument string
// (e.g. the workspace number for GotoWorkspace, the command line for
// Exec).
type Binding struct {
	Kind      Kind
	Modifiers Modifiers
	Arg       string
}

// KeyTrigger and ButtonTrigger are the two kinds of input events that
// can carry a Binding.
type KeyTrigger struct {
	Keysym    uint32
	Modifiers Modifiers
}

type ButtonTrigger struct {
	Button    uint8
	Modifiers Modifiers
}

// Table is a loaded set of key and button bindings (spec.md 4.3
// "Action lookup": keybindings themselves are out of scope to parse,
// but the lookup structure they populate is not).
type Table struct {
	byKey    map[KeyTrigger]Binding
	byButton map[ButtonTrigger]Binding
}

// NewTable creates an empty binding table.
func NewTable() *Table {
	return &Table{
		byKey:    make(map[KeyTrigger]Binding),
		byButton: make(map[ButtonTrigger]Binding),
	}
}

// BindKey registers a key binding, replacing any existing binding for
// the same trigger.
func (t *Table) BindKey(trig KeyTrigger, b Binding) { t.byKey[trig] = b }

// BindButton registers a button binding.
func (t *Table) BindButton(trig ButtonTrigger, b Binding) { t.byButton[trig] = b }

// LookupKey returns the binding for trig, if any.
func (t *Table) LookupKey(trig KeyTrigger) (Binding, bool) {
	b, ok := t.byKey[trig]
	return b, ok
}

// LookupButton returns the binding for trig, if any.
func (t *Table) LookupButton(trig ButtonTrigger) (Binding, bool) {
	b, ok := t.byButton[trig]
	return b, ok
}

// KeyTriggers returns every key trigger currently bound, used by the
// input dispatcher to grab each one up front the way the teacher's
// grabKeys grabs every action's codes before the event loop starts.
func (t *Table) KeyTriggers() []KeyTrigger {
	out := make([]KeyTrigger, 0, len(t.byKey))
	for trig := range t.byKey {
		out = append(out, trig)
	}
	return out
}

// ButtonTriggers returns every button trigger currently bound.
func (t *Table) ButtonTriggers() []ButtonTrigger {
	out := make([]ButtonTrigger, 0, len(t.byButton))
	for trig := range t.byButton {
		out = append(out, trig)
	}
	return out
}
