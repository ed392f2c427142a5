// Package registry is the window-id-keyed arena that backs every weak
// back-reference in the object graph (Client->Frame, transient-for,
// MRU entries). spec.md 9 re-expresses pekwm's raw C++ back-pointers as
// indices into an arena keyed by X window id, validated by a generation
// counter on every dereference, removing dangling-pointer classes
// without reference counting.
package registry

import "sync"

// Ref is a weak reference to an object stored in a Registry. The zero
// Ref never resolves.
type Ref struct {
	id  uint32
	gen uint64
}

// Valid reports whether the ref was ever assigned (not whether it still
// resolves -- use Registry.Resolve for that).
func (r Ref) Valid() bool { return r.gen != 0 }

type entry struct {
	gen uint64
	obj any
}

// Registry maps X window ids to arbitrary objects (Client, Frame, Decor,
// DockApp, ...) and hands out generation-stamped Refs so that holders of
// a Ref can detect the pointee having been destroyed and replaced.
type Registry struct {
	mu      sync.Mutex
	byID    map[uint32]*entry
	nextGen uint64
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byID: make(map[uint32]*entry)}
}

// Put registers obj under window id, returning a Ref that resolves to
// it until the id is next Removed or Put again.
func (r *Registry) Put(id uint32, obj any) Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextGen++
	e := &entry{gen: r.nextGen, obj: obj}
	r.byID[id] = e
	return Ref{id: id, gen: e.gen}
}

// Remove deletes the mapping for id. Any Ref previously handed out for
// id stops resolving.
func (r *Registry) Remove(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Lookup resolves a live object purely by window id, used by the X
// event dispatcher which only has the raw window id from the wire, not
// a previously minted Ref.
func (r *Registry) Lookup(id uint32) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return e.obj, true
}

// Resolve dereferences ref, returning ok=false if the underlying id was
// removed or reassigned since ref was minted (stale weak pointer).
func (r *Registry) Resolve(ref Ref) (any, bool) {
	if !ref.Valid() {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[ref.id]
	if !ok || e.gen != ref.gen {
		return nil, false
	}
	return e.obj, true
}

// Len returns the number of currently registered objects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
