// Package stack implements the single global layer-major stacking list
// (spec.md 3 "Stacking list", spec.md 4.2). It is deliberately a flat
// ordered list rather than one list per layer: layer order is enforced
// by callers inserting new windows at the correct position within the
// list (spec.md 4.2 "Layer-major, insertion-minor ordering").
//
// Grounded directly on original_source/test/test_Workspaces.hh's
// swapInStack/stackAbove behavior, which this package reproduces
// element-for-element; the teacher has no stacking-order abstraction of
// its own (marwind orders windows implicitly via X11 stacking requests
// in wm/render.go), so the list shape itself is adapted from
// container/list the way geom/strut already lean on stdlib containers.
package stack

import "container/list"

// List is an ordered, layer-major stacking order over arbitrary
// identities (Frame pointers in production, anything comparable in
// tests). It is not safe for concurrent use.
type List struct {
	l   *list.List
	pos map[any]*list.Element
}

// New creates an empty stacking list.
func New() *List {
	return &List{l: list.New(), pos: make(map[any]*list.Element)}
}

// Insert appends item at the top of the whole list, above every
// current member regardless of layer; callers needing a specific layer
// position use InsertAbove/StackBelow relative to an existing member.
func (s *List) Insert(item any) {
	if _, ok := s.pos[item]; ok {
		return
	}
	s.pos[item] = s.l.PushBack(item)
}

// InsertAbove inserts item immediately above ref in stacking order
// (i.e. directly after it in the front-to-back list), used when a new
// window must join an existing layer's range (spec.md 4.2 "a window
// entering a non-empty layer is placed directly above that layer's
// current topmost member").
func (s *List) InsertAbove(item, ref any) bool {
	refElem, ok := s.pos[ref]
	if !ok {
		return false
	}
	s.pos[item] = s.l.InsertAfter(item, refElem)
	return true
}

// Remove drops item from the list; a no-op if not present.
func (s *List) Remove(item any) {
	elem, ok := s.pos[item]
	if !ok {
		return
	}
	s.l.Remove(elem)
	delete(s.pos, item)
}

// Items returns the current stacking order, bottom to top.
func (s *List) Items() []any {
	out := make([]any, 0, s.l.Len())
	for e := s.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

// Len returns the number of items currently stacked.
func (s *List) Len() int { return s.l.Len() }

// SwapInStack exchanges the stacking positions of a and b, leaving
// every other member untouched. Returns false if either is absent.
func (s *List) SwapInStack(a, b any) bool {
	ea, ok := s.pos[a]
	if !ok {
		return false
	}
	eb, ok := s.pos[b]
	if !ok {
		return false
	}
	ea.Value, eb.Value = eb.Value, ea.Value
	s.pos[a], s.pos[b] = eb, ea
	return true
}

// StackAbove removes wo from its current position and reinserts it
// immediately above (after, in front-to-back order) the current
// position of above. Returns false if either is absent.
func (s *List) StackAbove(wo, above any) bool {
	woElem, ok := s.pos[wo]
	if !ok {
		return false
	}
	aboveElem, ok := s.pos[above]
	if !ok || aboveElem == woElem {
		return false
	}
	s.l.Remove(woElem)
	delete(s.pos, wo)
	s.pos[wo] = s.l.InsertAfter(wo, aboveElem)
	return true
}

// StackBelow removes wo and reinserts it immediately below (before)
// below's current position.
func (s *List) StackBelow(wo, below any) bool {
	woElem, ok := s.pos[wo]
	if !ok {
		return false
	}
	belowElem, ok := s.pos[below]
	if !ok || belowElem == woElem {
		return false
	}
	s.l.Remove(woElem)
	delete(s.pos, wo)
	s.pos[wo] = s.l.InsertBefore(wo, belowElem)
	return true
}
