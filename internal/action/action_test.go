package action

import "testing"

func TestBindAndLookupKey(t *testing.T) {
	table := NewTable()
	trig := KeyTrigger{Keysym: 0xff51, Modifiers: ModMod1}
	table.BindKey(trig, Binding{Kind: MoveInWorkspace, Arg: "left"})

	b, ok := table.LookupKey(trig)
	if !ok {
		t.Fatalf("expected binding to be found")
	}
	if b.Kind != MoveInWorkspace || b.Arg != "left" {
		t.Fatalf("got %+v", b)
	}
	if _, ok := table.LookupKey(KeyTrigger{Keysym: 0xff52, Modifiers: ModMod1}); ok {
		t.Fatalf("expected no binding for an unbound trigger")
	}
}

func TestRebindReplacesPrevious(t *testing.T) {
	table := NewTable()
	trig := KeyTrigger{Keysym: 1, Modifiers: 0}
	table.BindKey(trig, Binding{Kind: Close})
	table.BindKey(trig, Binding{Kind: Iconify})
	b, _ := table.LookupKey(trig)
	if b.Kind != Iconify {
		t.Fatalf("expected rebinding to replace the previous action")
	}
}

func TestKeyTriggersListsEveryBinding(t *testing.T) {
	table := NewTable()
	table.BindKey(KeyTrigger{Keysym: 1}, Binding{Kind: Close})
	table.BindKey(KeyTrigger{Keysym: 2}, Binding{Kind: Quit})
	if len(table.KeyTriggers()) != 2 {
		t.Fatalf("expected 2 key triggers, got %d", len(table.KeyTriggers()))
	}
}
