package sched

import (
	"testing"
	"time"
)

func TestFireDueInOrder(t *testing.T) {
	q := New()
	base := time.Now()
	var order []string
	q.Schedule("c", base.Add(3*time.Millisecond), func() { order = append(order, "c") })
	q.Schedule("a", base.Add(1*time.Millisecond), func() { order = append(order, "a") })
	q.Schedule("b", base.Add(2*time.Millisecond), func() { order = append(order, "b") })

	fired := q.FireDue(base.Add(10 * time.Millisecond))
	if fired != 3 {
		t.Fatalf("expected 3 fired, got %d", fired)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

func TestCancelRemovesAction(t *testing.T) {
	q := New()
	fired := false
	q.Schedule("x", time.Now(), func() { fired = true })
	q.Cancel("x")
	q.FireDue(time.Now().Add(time.Second))
	if fired {
		t.Fatalf("expected cancelled action not to fire")
	}
}

func TestRescheduleReplacesPrevious(t *testing.T) {
	q := New()
	calls := 0
	q.Schedule("k", time.Now(), func() { calls++ })
	q.Schedule("k", time.Now().Add(time.Hour), func() { calls++ })
	q.FireDue(time.Now())
	if calls != 0 {
		t.Fatalf("expected rescheduled (future) action not to fire yet, calls=%d", calls)
	}
	if q.Len() != 1 {
		t.Fatalf("expected exactly one pending action, got %d", q.Len())
	}
}
