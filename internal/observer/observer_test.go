package observer

import "testing"

func TestPriorityOrdering(t *testing.T) {
	b := New()
	var order []string
	b.Subscribe(10, func(Event) { order = append(order, "low-priority-second") })
	b.Subscribe(0, func(Event) { order = append(order, "high-priority-first") })
	b.Subscribe(0, func(Event) { order = append(order, "tie-registration-order") })

	b.Publish("go")

	want := []string{"high-priority-first", "tie-registration-order", "low-priority-second"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestDetachDuringNotifyIsDeferred(t *testing.T) {
	b := New()
	calls := 0
	var selfID uint64
	selfID = b.Subscribe(0, func(Event) {
		calls++
		b.Unsubscribe(selfID)
	})
	b.Subscribe(1, func(Event) {})

	b.Publish("first")
	if calls != 1 {
		t.Fatalf("expected handler to fire during its own removal, got %d calls", calls)
	}

	b.Publish("second")
	if calls != 1 {
		t.Fatalf("expected detached handler to be gone by the next publish, got %d calls", calls)
	}
}
