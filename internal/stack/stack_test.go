package stack

import "testing"

func items5(s *List) [5]int {
	var out [5]int
	for i, v := range s.Items() {
		out[i] = v.(int)
	}
	return out
}

func TestSwapInStackExchangesPositions(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Insert(i)
	}
	if !s.SwapInStack(2, 4) {
		t.Fatalf("expected swap to succeed")
	}
	if got, want := items5(s), [5]int{0, 1, 4, 3, 2}; got != want {
		t.Fatalf("after first swap: got %v, want %v", got, want)
	}

	if !s.SwapInStack(2, 0) {
		t.Fatalf("expected swap to succeed")
	}
	if got, want := items5(s), [5]int{2, 1, 4, 3, 0}; got != want {
		t.Fatalf("after second swap: got %v, want %v", got, want)
	}
}

func TestStackAboveRepositions(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Insert(i)
	}
	if !s.StackAbove(1, 3) {
		t.Fatalf("expected stackAbove to succeed")
	}
	if got, want := items5(s), [5]int{0, 2, 3, 1, 4}; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSwapAndStackAboveReportMissingMembers(t *testing.T) {
	s := New()
	s.Insert(1)
	if s.SwapInStack(1, 99) {
		t.Fatalf("expected swap with missing member to fail")
	}
	if s.StackAbove(1, 99) {
		t.Fatalf("expected stackAbove with missing member to fail")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.Insert("a")
	s.Insert("b")
	s.Remove("a")
	if s.Len() != 1 {
		t.Fatalf("expected length 1 after remove, got %d", s.Len())
	}
	if s.Items()[0] != "b" {
		t.Fatalf("expected remaining item to be b")
	}
}
