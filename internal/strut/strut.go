// Package strut tracks the root-owned ordered set of struts contributed
// by panels, docks and the harbour, and reduces them to one effective
// strut per head by taking the per-direction maximum (spec.md 3
// "Strut").
package strut

import (
	"sync"

	"github.com/pekwm/pekwm-go/internal/geom"
)

// Set is the global registry of contributed struts.
type Set struct {
	mu     sync.Mutex
	byHead map[int][]geom.Strut
}

// New creates an empty strut Set.
func New() *Set {
	return &Set{byHead: make(map[int][]geom.Strut)}
}

// Add registers a strut contribution. Order is insertion order but does
// not affect the reduction, which is commutative (per-direction max).
func (s *Set) Add(st geom.Strut) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byHead[st.Head] = append(s.byHead[st.Head], st)
}

// Remove deletes the first strut contribution matching st exactly. It
// is the caller's responsibility to pass back the same value given to
// Add (harbour/dock withdrawal always does, since struts are recomputed
// wholesale rather than mutated in place).
func (s *Set) Remove(st geom.Strut) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.byHead[st.Head]
	for i, o := range list {
		if o == st {
			s.byHead[st.Head] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Effective returns the reduced strut for head: the per-direction
// maximum over every strut contributed on that head. A head with no
// contributions has a zero-value effective strut.
func (s *Set) Effective(head int) geom.Strut {
	s.mu.Lock()
	defer s.mu.Unlock()
	eff := geom.Strut{Head: head}
	for _, st := range s.byHead[head] {
		eff = eff.Max(st)
	}
	return eff
}
