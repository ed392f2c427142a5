package client

import "testing"

func TestNewDefaults(t *testing.T) {
	c := New(42)
	if c.Window != 42 {
		t.Fatalf("expected window 42, got %d", c.Window)
	}
	if c.Allowed != AllActions {
		t.Fatalf("expected default allowed actions to be AllActions")
	}
}

func TestStateMaskSetClearHas(t *testing.T) {
	var s StateMask
	s = s.Set(StateSticky | StateShaded)
	if !s.Has(StateSticky) || !s.Has(StateShaded) {
		t.Fatalf("expected both bits set, got %b", s)
	}
	s = s.Clear(StateShaded)
	if s.Has(StateShaded) {
		t.Fatalf("expected StateShaded cleared")
	}
	if !s.Has(StateSticky) {
		t.Fatalf("expected StateSticky to survive clear")
	}
}

func TestIsTransientFor(t *testing.T) {
	c := New(1)
	if c.IsTransientFor(99) {
		t.Fatalf("expected no transient relation by default")
	}
	c.TransientWindow = 99
	if !c.IsTransientFor(99) {
		t.Fatalf("expected transient relation once set")
	}
}

func TestEffectiveTitlePrefersRewrite(t *testing.T) {
	c := New(1)
	c.Title = "raw"
	if c.EffectiveTitle() != "raw" {
		t.Fatalf("expected raw title before rewrite")
	}
	c.DisplayTitle = "rewritten"
	if c.EffectiveTitle() != "rewritten" {
		t.Fatalf("expected rewritten title to win")
	}
}
