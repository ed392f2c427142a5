package focus

import "testing"

type testWO struct {
	name      string
	focusable bool
	mapped    bool
}

func (w *testWO) Focusable() bool { return w.focusable }
func (w *testWO) Mapped() bool    { return w.mapped }

func TestFindNextEmptyStackYieldsNil(t *testing.T) {
	m := New()
	if got := m.FindNext(nil, true); got != nil {
		t.Fatalf("expected nil on empty stack, got %v", got)
	}
	if got := m.FindNext(nil, false); got != nil {
		t.Fatalf("expected nil on empty stack, got %v", got)
	}
}

func TestFindNextNoFocusableYieldsNil(t *testing.T) {
	m := New()
	woNF := &testWO{name: "nf", focusable: false, mapped: true}
	m.Touch(woNF)
	stack := []any{woNF}
	if got := m.FindNext(stack, true); got != nil {
		t.Fatalf("expected nil when nothing is focusable, got %v", got)
	}
	if got := m.FindNext(stack, false); got != nil {
		t.Fatalf("expected nil when nothing is focusable, got %v", got)
	}
}

func TestFindNextFallsBackToStackingWithoutMRU(t *testing.T) {
	m := New()
	wo1 := &testWO{name: "wo1", focusable: true, mapped: true}
	stack := []any{wo1}
	if got := m.FindNext(stack, true); got != wo1 {
		t.Fatalf("expected wo1 fallback, got %v", got)
	}
	if got := m.FindNext(stack, false); got != wo1 {
		t.Fatalf("expected wo1 fallback, got %v", got)
	}
}

func TestFindNextPrefersMRUEndpoints(t *testing.T) {
	m := New()
	wo1 := &testWO{name: "wo1", focusable: true, mapped: true}
	wo2 := &testWO{name: "wo2", focusable: true, mapped: true}
	stack := []any{wo1, wo2}
	m.Touch(wo1)
	m.Touch(wo2)

	if got := m.FindNext(stack, true); got != wo2 {
		t.Fatalf("expected most-recently-used wo2, got %v", got)
	}
	if got := m.FindNext(stack, false); got != wo1 {
		t.Fatalf("expected least-recently-used wo1, got %v", got)
	}
}
