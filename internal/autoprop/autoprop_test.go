package autoprop

import (
	"testing"

	"github.com/pekwm/pekwm-go/internal/layer"
)

func TestParseTitleRuleSingleReplace(t *testing.T) {
	r, err := ParseTitleRule(`s/ - Mozilla Firefox//`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Rewrite("GitHub - Mozilla Firefox")
	if got != "GitHub" {
		t.Fatalf("got %q, want %q", got, "GitHub")
	}
}

func TestParseTitleRuleGlobalFlag(t *testing.T) {
	r, err := ParseTitleRule(`s/a/X/g`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Rewrite("banana"); got != "bXnXnX" {
		t.Fatalf("got %q, want bXnXnX", got)
	}
}

func TestParseTitleRuleRejectsMalformed(t *testing.T) {
	if _, err := ParseTitleRule("not a rule"); err == nil {
		t.Fatalf("expected error for malformed rule")
	}
}

func TestFindAutoPropertyPrefersRuleOverTypeDefault(t *testing.T) {
	s := NewStore()
	r := &Rule{}
	r.applyOn = ApplyOnAlways
	r.Property = AutoProperty{Mask: FieldFocusable, Focusable: true}
	s.AddRule(r)

	prop, ok := s.FindAutoProperty(ClassHint{}, -1, ApplyOnNew, "_NET_WM_WINDOW_TYPE_DOCK")
	if !ok {
		t.Fatalf("expected a property match")
	}
	if !prop.Focusable {
		t.Fatalf("expected rule's explicit Focusable=true to win over type default")
	}
	if prop.Layer != layer.Dock {
		// Layer wasn't in the rule's mask, so the dock type default
		// (Layer=Dock) must survive the merge.
		t.Fatalf("expected type default Layer to survive merge, got %v", prop.Layer)
	}
}

func TestFindAutoPropertyFallsBackToTypeDefaultAlone(t *testing.T) {
	s := NewStore()
	prop, ok := s.FindAutoProperty(ClassHint{Class: "anything"}, -1, ApplyOnNew, "_NET_WM_WINDOW_TYPE_DESKTOP")
	if !ok {
		t.Fatalf("expected desktop window type default to match")
	}
	if prop.Titlebar {
		t.Fatalf("expected desktop windows to default to no titlebar")
	}
}

func TestFindAutoPropertyCarriesGroupFields(t *testing.T) {
	s := NewStore()
	r := &Rule{}
	r.applyOn = ApplyOnAlways
	r.Property = AutoProperty{
		Mask:        FieldGroup,
		GroupName:   "browsers",
		GroupSize:   3,
		GroupRaise:  true,
		GroupGlobal: true,
	}
	s.AddRule(r)

	prop, ok := s.FindAutoProperty(ClassHint{}, -1, ApplyOnNew, "_NET_WM_WINDOW_TYPE_DOCK")
	if !ok {
		t.Fatalf("expected a property match")
	}
	if prop.GroupName != "browsers" || prop.GroupSize != 3 || !prop.GroupRaise || !prop.GroupGlobal {
		t.Fatalf("expected group fields to survive the merge, got %+v", prop)
	}
}

func TestRuleWorkspaceFiltering(t *testing.T) {
	r := &Rule{}
	r.applyOn = ApplyOnAlways
	r.workspaces = []int{2}
	if r.appliesOnWorkspace(1) {
		t.Fatalf("expected rule scoped to workspace 2 not to apply to workspace 1")
	}
	if !r.appliesOnWorkspace(2) {
		t.Fatalf("expected rule to apply to workspace 2")
	}
}
