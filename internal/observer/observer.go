// Package observer implements the priority-ordered in-process
// publish/subscribe bus spec.md 9 calls for in place of pekwm's virtual
// observer pattern: ascending numeric priority fires first, ties break
// in registration order, and detaches requested during a notify are
// deferred until the outermost notify returns (spec.md 5 "Ordering
// guarantees").
package observer

import "sync"

// Event is an opaque notification payload; subsystems define their own
// concrete event types and type-switch on them in their handler.
type Event any

// Handler receives a published Event.
type Handler func(Event)

type subscription struct {
	id       uint64
	priority int
	seq      uint64
	handler  Handler
}

// Bus is a single topic's subscriber list. The WM keeps one Bus per
// observable concern (workspace changes, focus changes, theme reload).
type Bus struct {
	mu       sync.Mutex
	subs     []*subscription
	nextID   uint64
	nextSeq  uint64
	notifying int
	pendingDel map[uint64]bool
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{pendingDel: make(map[uint64]bool)}
}

// Subscribe registers handler at priority (lower fires first), and
// returns an id usable with Unsubscribe.
func (b *Bus) Subscribe(priority int, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.nextSeq++
	id := b.nextID
	b.subs = append(b.subs, &subscription{id: id, priority: priority, seq: b.nextSeq, handler: handler})
	sortSubs(b.subs)
	return id
}

// Unsubscribe removes a previously subscribed handler. If called while a
// Publish is in progress (e.g. from inside a handler), the removal is
// deferred until the outermost Publish call returns, so the subscriber
// slice being ranged over is never mutated mid-notify.
func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.notifying > 0 {
		b.pendingDel[id] = true
		return
	}
	b.removeLocked(id)
}

func (b *Bus) removeLocked(id uint64) {
	out := b.subs[:0]
	for _, s := range b.subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	b.subs = out
}

// Publish invokes every live subscriber in priority order with event.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	snapshot := make([]*subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.notifying++
	b.mu.Unlock()

	for _, s := range snapshot {
		s.handler(event)
	}

	b.mu.Lock()
	b.notifying--
	if b.notifying == 0 && len(b.pendingDel) > 0 {
		for id := range b.pendingDel {
			b.removeLocked(id)
		}
		b.pendingDel = make(map[uint64]bool)
	}
	b.mu.Unlock()
}

func sortSubs(subs []*subscription) {
	// Small N (single-digit subscriber counts per bus in practice):
	// insertion sort keeps registration order stable on priority ties.
	for i := 1; i < len(subs); i++ {
		j := i
		for j > 0 && less(subs[j], subs[j-1]) {
			subs[j], subs[j-1] = subs[j-1], subs[j]
			j--
		}
	}
}

func less(a, b *subscription) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}
