package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-go/internal/action"
	"github.com/pekwm/pekwm-go/internal/autoprop"
	"github.com/pekwm/pekwm-go/internal/client"
	"github.com/pekwm/pekwm-go/internal/decor"
	"github.com/pekwm/pekwm-go/internal/frame"
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/head"
	"github.com/pekwm/pekwm-go/internal/layer"
	"github.com/pekwm/pekwm-go/internal/registry"
	"github.com/pekwm/pekwm-go/internal/stack"
	"github.com/pekwm/pekwm-go/internal/strut"
	"github.com/pekwm/pekwm-go/internal/workspace"
)

func newTestWM() *WM {
	return &WM{
		reg:            registry.New(),
		stackList:      stack.New(),
		decor:          decor.Default(),
		autoprops:      autoprop.NewStore(),
		actions:        action.NewTable(),
		ws:             workspace.New(false),
		heads:          head.NewSynthetic(geom.Rect{W: 1024, H: 768}, strut.New()),
		framesByClient: make(map[xproto.Window]*frame.Frame),
	}
}

func newTestFrame(w *WM, l layer.Layer) *frame.Frame {
	f := frame.New(w.reg, w.decor)
	f.Layer = l
	return f
}

func TestInsertIntoStackIsLayerMajor(t *testing.T) {
	w := newTestWM()
	normal1 := newTestFrame(w, layer.Normal)
	dock := newTestFrame(w, layer.Dock)
	normal2 := newTestFrame(w, layer.Normal)
	below := newTestFrame(w, layer.Below)

	w.insertIntoStack(normal1)
	w.insertIntoStack(dock)
	w.insertIntoStack(normal2)
	w.insertIntoStack(below)

	items := w.stackList.Items()
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].(*frame.Frame) != below {
		t.Fatalf("expected Below layer frame at the bottom of the stack")
	}
	if items[len(items)-1].(*frame.Frame) != dock {
		t.Fatalf("expected Dock layer frame at the top of the stack")
	}
	normalIdx := map[*frame.Frame]int{}
	for i, it := range items {
		if f, ok := it.(*frame.Frame); ok {
			normalIdx[f] = i
		}
	}
	if normalIdx[normal1] >= normalIdx[normal2] {
		t.Fatalf("expected normal1 to stay below normal2 within the Normal layer")
	}
}

func TestLowerFrameMovesToLayerBottom(t *testing.T) {
	w := newTestWM()
	a := newTestFrame(w, layer.Normal)
	b := newTestFrame(w, layer.Normal)
	c := newTestFrame(w, layer.Normal)
	w.insertIntoStack(a)
	w.insertIntoStack(b)
	w.insertIntoStack(c)

	items := w.stackList.Items()
	if items[0].(*frame.Frame) == c {
		t.Fatalf("expected the frame to start above the bottom of its layer")
	}
	w.lowerSingle(c)

	items = w.stackList.Items()
	if items[0].(*frame.Frame) != c {
		t.Fatalf("expected lowered frame at the bottom, got stack %v", items)
	}
}

func TestFocusCandidateReflectsFrameState(t *testing.T) {
	reg := registry.New()
	f := frame.New(reg, decor.Default())
	cand := focusCandidate{f}
	if cand.Mapped() {
		t.Fatalf("expected a freshly created frame to be unmapped")
	}
	if cand.Focusable() {
		t.Fatalf("expected a childless frame to be unfocusable")
	}
	f.AddClient(client.New(1))
	if !cand.Focusable() {
		t.Fatalf("expected a frame with a child to be focusable")
	}
}

func TestParseCtrlCommand(t *testing.T) {
	cases := []struct {
		in       string
		wantKind action.Kind
		wantArg  string
		wantOk   bool
	}{
		{"Close", action.Close, "", true},
		{"GotoWorkspace 3", action.GotoWorkspace, "3", true},
		{"  SendToWorkspace   2  ", action.SendToWorkspace, "2", true},
		{"", 0, "", false},
		{"NotARealCommand", 0, "", false},
	}
	for _, tc := range cases {
		kind, arg, ok := parseCtrlCommand(tc.in)
		if ok != tc.wantOk || (ok && (kind != tc.wantKind || arg != tc.wantArg)) {
			t.Errorf("parseCtrlCommand(%q) = (%v, %q, %v), want (%v, %q, %v)",
				tc.in, kind, arg, ok, tc.wantKind, tc.wantArg, tc.wantOk)
		}
	}
}

func TestActionMaskToAtoms(t *testing.T) {
	atoms := actionMaskToAtoms(client.ActionClose | client.ActionShade)
	found := map[string]bool{}
	for _, a := range atoms {
		found[a] = true
	}
	if !found["_NET_WM_ACTION_CLOSE"] || !found["_NET_WM_ACTION_SHADE"] {
		t.Fatalf("expected close and shade atoms, got %v", atoms)
	}
	if len(atoms) != 2 {
		t.Fatalf("expected exactly 2 atoms for a 2-bit mask, got %v", atoms)
	}
}

func TestRewriteTitleAppliesMatchingRule(t *testing.T) {
	w := newTestWM()
	rule, err := autoprop.ParseTitleRule("s/foo/bar/")
	if err != nil {
		t.Fatalf("ParseTitleRule: %v", err)
	}
	w.autoprops.AddTitleRule(rule)

	got := w.rewriteTitle(autoprop.ClassHint{Class: "Xterm"}, "foo terminal")
	if got != "bar terminal" {
		t.Fatalf("rewriteTitle = %q, want %q", got, "bar terminal")
	}
}

// TestGroupCandidateJoinsSameGroup reproduces an AutoProperty grouping
// match: two clients whose matched rule shares a GroupName land in the
// same Frame as two tabs instead of each getting a Frame of its own
// (spec.md 4.1 "Grouping").
func TestGroupCandidateJoinsSameGroup(t *testing.T) {
	w := newTestWM()
	prop := autoprop.AutoProperty{
		Mask:      autoprop.FieldGroup,
		GroupName: "term-group",
	}

	first := client.New(1)
	first.GroupName = prop.GroupName
	f := frame.New(w.reg, w.decor)
	f.AddClient(first)
	w.insertIntoStack(f)

	second := client.New(2)
	second.GroupName = prop.GroupName
	got := w.groupCandidate(second, prop, true)
	if got != f {
		t.Fatalf("expected groupCandidate to find the existing frame, got %v", got)
	}
	got.AddClient(second)
	if len(f.Children) != 2 {
		t.Fatalf("expected both clients in the same frame, got %d children", len(f.Children))
	}
}

// TestGroupCandidateHonorsGroupSize ensures a Frame already at its
// group's size cap no longer matches (spec.md 4.1 supplemented
// "Grouping", original_source WindowManager::findGroupMatchProperty).
func TestGroupCandidateHonorsGroupSize(t *testing.T) {
	w := newTestWM()
	prop := autoprop.AutoProperty{
		Mask:      autoprop.FieldGroup,
		GroupName: "capped",
		GroupSize: 1,
	}
	first := client.New(1)
	first.GroupName = prop.GroupName
	f := frame.New(w.reg, w.decor)
	f.AddClient(first)
	w.insertIntoStack(f)

	second := client.New(2)
	second.GroupName = prop.GroupName
	if got := w.groupCandidate(second, prop, true); got != nil {
		t.Fatalf("expected no candidate once the group reached its size cap, got %v", got)
	}
}

// TestGroupCandidateFocusedFirst verifies group_focused_first checks
// the active frame before scanning the rest of the stack.
func TestGroupCandidateFocusedFirst(t *testing.T) {
	w := newTestWM()
	prop := autoprop.AutoProperty{
		Mask:              autoprop.FieldGroup,
		GroupName:         "g",
		GroupFocusedFirst: true,
	}
	older := client.New(1)
	older.GroupName = prop.GroupName
	olderFrame := frame.New(w.reg, w.decor)
	olderFrame.AddClient(older)
	w.insertIntoStack(olderFrame)

	focused := client.New(2)
	focused.GroupName = prop.GroupName
	focusedFrame := frame.New(w.reg, w.decor)
	focusedFrame.AddClient(focused)
	w.insertIntoStack(focusedFrame)
	w.activeFrame = focusedFrame

	candidate := client.New(3)
	candidate.GroupName = prop.GroupName
	if got := w.groupCandidate(candidate, prop, true); got != focusedFrame {
		t.Fatalf("expected group_focused_first to prefer the active frame, got %v want %v", got, focusedFrame)
	}
}

// TestPlaceNewFrameUsesAutoPropertyPlacement ensures a matched rule's
// Placement field overrides the configured default strategy.
func TestPlaceNewFrameUsesAutoPropertyPlacement(t *testing.T) {
	w := newTestWM()
	w.opts.Placement = "SMART"
	f := frame.New(w.reg, w.decor)
	prop := autoprop.AutoProperty{Mask: autoprop.FieldPlacement, Placement: "CENTERED"}

	r := w.placeNewFrame(f, prop, true)
	usable := w.heads.At(0).UsableArea()
	wantX := usable.X + (usable.W-r.W)/2
	wantY := usable.Y + (usable.H-r.H)/2
	if r.X != wantX || r.Y != wantY {
		t.Fatalf("expected centered placement at (%d,%d), got (%d,%d)", wantX, wantY, r.X, r.Y)
	}
}

// TestPlaceNewFrameFallsBackToDefaultStrategy exercises the no-AutoProperty
// path, which must still consult the configured default instead of a
// hardcoded rectangle.
func TestPlaceNewFrameFallsBackToDefaultStrategy(t *testing.T) {
	w := newTestWM()
	w.opts.Placement = "CENTERED"
	f := frame.New(w.reg, w.decor)

	r := w.placeNewFrame(f, autoprop.AutoProperty{}, false)
	usable := w.heads.At(0).UsableArea()
	if r.X != usable.X+(usable.W-r.W)/2 {
		t.Fatalf("expected the configured CENTERED default to apply, got %+v", r)
	}
}

// TestTransientFamilyIncludesDependents reproduces spec.md 4.1
// "Transients": a Frame whose client is transient for a member of f
// belongs to f's family.
func TestTransientFamilyIncludesDependents(t *testing.T) {
	w := newTestWM()
	parent := client.New(1)
	parentFrame := frame.New(w.reg, w.decor)
	parentFrame.AddClient(parent)
	w.insertIntoStack(parentFrame)

	dialog := client.New(2)
	dialog.TransientWindow = parent.Window
	dialogFrame := frame.New(w.reg, w.decor)
	dialogFrame.AddClient(dialog)
	w.insertIntoStack(dialogFrame)

	unrelated := client.New(3)
	unrelatedFrame := frame.New(w.reg, w.decor)
	unrelatedFrame.AddClient(unrelated)
	w.insertIntoStack(unrelatedFrame)

	family := w.transientFamily(parentFrame)
	if len(family) != 2 {
		t.Fatalf("expected parent + 1 transient in the family, got %d", len(family))
	}
	found := false
	for _, f := range family {
		if f == dialogFrame {
			found = true
		}
		if f == unrelatedFrame {
			t.Fatalf("unrelated frame should not be part of the transient family")
		}
	}
	if !found {
		t.Fatalf("expected the dialog's frame to be part of the family")
	}
}

func TestBindDefaultActionsRegistersWorkspaceKeys(t *testing.T) {
	tbl := action.NewTable()
	bindDefaultActions(tbl)
	trig := action.KeyTrigger{Keysym: 0x0031, Modifiers: action.ModMod4}
	binding, ok := tbl.LookupKey(trig)
	if !ok || binding.Kind != action.GotoWorkspace || binding.Arg != "0" {
		t.Fatalf("expected mod4+1 bound to GotoWorkspace 0, got %+v ok=%v", binding, ok)
	}
}
