// Package focus implements the MRU (most-recently-used) focus history
// and the next-focus-candidate search that runs whenever the currently
// focused window disappears (spec.md 4.2 "Focus selection on loss").
//
// Grounded on original_source/test/test_Workspaces.hh's
// testFindWOAndFocusFind, whose four cases (empty, no focusable
// objects, no MRU entries so fall back to stacking order, and MRU vs
// stacking disagreeing) this package's FindNext reproduces directly.
// The MRU history itself is backed by github.com/hashicorp/golang-lru/v2
// the way an ordinary LRU cache is: touching an entry promotes it to
// most-recent, and Keys() yields oldest-to-newest order, which is
// exactly the "recency list" pekwm's Workspaces::_mru needs even though
// nothing here is ever evicted by capacity.
package focus

import lru "github.com/hashicorp/golang-lru/v2"

// capacity is large enough that no realistic window count ever forces
// an eviction; the cache is used purely for its recency ordering, not
// for bounding memory.
const capacity = 4096

// Candidate is anything that can be offered up as a focus target.
type Candidate interface {
	Focusable() bool
	Mapped() bool
}

// MRU tracks focus history across an unbounded set of Candidates keyed
// by their own identity.
type MRU struct {
	cache *lru.Cache[any, any]
}

// New creates an empty MRU history.
func New() *MRU {
	c, err := lru.New[any, any](capacity)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// capacity never is.
		panic(err)
	}
	return &MRU{cache: c}
}

// Touch records item as the most-recently-focused, inserting it if
// new or promoting it if already tracked (spec.md 4.2:
// "SKIP_FOCUS_TOGGLE objects are tracked for stacking purposes but
// never promoted into the focus MRU" -- callers must filter those out
// before calling Touch).
func (m *MRU) Touch(item any) { m.cache.Add(item, struct{}{}) }

// Forget removes item from the MRU history (e.g. on unmanage).
func (m *MRU) Forget(item any) { m.cache.Remove(item) }

// Order returns MRU history from least- to most-recently-focused.
func (m *MRU) Order() []any { return m.cache.Keys() }

// FindNext picks the next focus candidate out of stackOrder (bottom to
// top, e.g. from internal/stack.List.Items) restricted to those that
// are Focusable and Mapped.
//
// If the MRU history contains none of those candidates, the first
// focusable-and-mapped item in stacking order wins regardless of
// mostRecent (original's fallback path). Otherwise mostRecent selects
// between the most- and least-recently-focused surviving candidate.
func (m *MRU) FindNext(stackOrder []any, mostRecent bool) any {
	candidates := make(map[any]bool, len(stackOrder))
	var stackFiltered []any
	for _, item := range stackOrder {
		c, ok := item.(Candidate)
		if !ok || !c.Focusable() || !c.Mapped() {
			continue
		}
		candidates[item] = true
		stackFiltered = append(stackFiltered, item)
	}
	if len(stackFiltered) == 0 {
		return nil
	}

	var mruFiltered []any
	for _, item := range m.Order() {
		if candidates[item] {
			mruFiltered = append(mruFiltered, item)
		}
	}
	if len(mruFiltered) == 0 {
		return stackFiltered[0]
	}
	if mostRecent {
		return mruFiltered[len(mruFiltered)-1]
	}
	return mruFiltered[0]
}
