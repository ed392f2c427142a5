// Package decor implements the Frame decoration box model: border
// widths, titlebar height and width policy, titlebar buttons, and a
// refcounted texture cache (spec.md 3 "Decor", spec.md 4.1 supplemented
// "Texture refcounting"). Grounded on the teacher's wm/render.go box
// math (renderFrame's border/title arithmetic) generalized into its own
// package and its own per-state texture handles.
package decor

import "sync"

// Border widths in pixels, one per edge.
type Border struct {
	Left, Right, Top, Bottom int32
}

// TitleWidthPolicy controls how a Frame's tab strip divides its width
// among the titles of its child Clients (spec.md 4.1 "tab width
// policy").
type TitleWidthPolicy int

const (
	TitleWidthEqual TitleWidthPolicy = iota
	TitleWidthProportional
	TitleWidthSymmetric
)

// TitleConfig is the titlebar box model for one decor state.
type TitleConfig struct {
	Height  int32
	MinW    int32
	MaxW    int32 // 0 means unbounded
	Policy  TitleWidthPolicy
	Buttons []ButtonConfig
}

// ButtonSide is which end of the titlebar a button sits on.
type ButtonSide int

const (
	ButtonLeft ButtonSide = iota
	ButtonRight
)

// ButtonConfig describes one titlebar button (close, (un)iconify, etc).
type ButtonConfig struct {
	Name string
	Side ButtonSide
	Size int32
}

// State names the decor state a texture or config belongs to, mirroring
// pekwm's Focused/Unfocused/Selected title states.
type State int

const (
	StateFocused State = iota
	StateUnfocused
	StateFocusedSelected
	StateUnfocusedSelected
	numStates
)

// Decor is the full decoration description for one Frame, keyed by
// decor state.
type Decor struct {
	Name    string
	Border  [numStates]Border
	Title   [numStates]TitleConfig
}

// TitleHeight returns the titlebar height used for geometry math; the
// Frame adds this to its client-area height unless shaded or the
// titlebar is hidden.
func (d *Decor) TitleHeight(s State) int32 {
	return d.Title[s].Height
}

// TabWidths divides available pixels of titlebar width among len(requests)
// tabs, following the TitleConfig's width policy (spec.md 4.1 "Tab width
// policy"). requests holds each tab's desired width (only consulted by
// TitleWidthProportional); the returned slice is parallel to requests.
func (t TitleConfig) TabWidths(available int32, requests []int32) []int32 {
	n := len(requests)
	if n == 0 {
		return nil
	}
	switch t.Policy {
	case TitleWidthProportional:
		return proportionalTabWidths(available, requests)
	default: // TitleWidthEqual, TitleWidthSymmetric: both divide evenly.
		return equalTabWidths(available, n)
	}
}

// equalTabWidths gives every tab available/n, handing the remainder
// out one pixel at a time to the leading tabs (spec.md 4.1 "Tab width
// policy": "Symmetric mode: all tabs equal, width = available / N,
// remainder distributed one pixel per leading tab").
func equalTabWidths(available int32, n int) []int32 {
	base := available / int32(n)
	remainder := available % int32(n)
	out := make([]int32, n)
	for i := range out {
		w := base
		if int32(i) < remainder {
			w++
		}
		out[i] = w
	}
	return out
}

// proportionalTabWidths keeps every tab's requested width when the sum
// fits, otherwise keeps the request of every tab below the per-tab
// average and splits the leftover space evenly among the oversized
// tabs (spec.md 4.1 "Tab width policy": "Asymmetric mode... if it
// exceeds, tabs whose request is below average keep their request, the
// remainder is divided equally among the oversized tabs").
func proportionalTabWidths(available int32, requests []int32) []int32 {
	n := len(requests)
	var sum int32
	for _, r := range requests {
		sum += r
	}
	if sum <= available {
		out := make([]int32, n)
		copy(out, requests)
		return out
	}
	avg := available / int32(n)
	out := make([]int32, n)
	var belowSum int32
	var oversized int
	for i, r := range requests {
		if r <= avg {
			out[i] = r
			belowSum += r
		} else {
			oversized++
		}
	}
	if oversized == 0 {
		return out
	}
	remaining := available - belowSum
	share := remaining / int32(oversized)
	extra := remaining % int32(oversized)
	idx := 0
	for i, r := range requests {
		if r > avg {
			w := share
			if int32(idx) < extra {
				w++
			}
			idx++
			out[i] = w
		}
	}
	return out
}

// TextureHandle is an opaque id minted by TextureHandler, valid until
// Release brings its refcount to zero.
type TextureHandle uint32

// TextureHandler caches rendered/loaded decoration textures (gradients,
// pixmaps) by a caller-supplied key and refcounts them so that many
// Frames sharing one theme state share one underlying resource
// (spec.md 4.1 supplemented "Texture refcounting": "a texture is freed
// only once its last referencing Decor releases it").
type TextureHandler struct {
	mu      sync.Mutex
	byKey   map[string]TextureHandle
	byHand  map[TextureHandle]*textureEntry
	nextID  TextureHandle
}

type textureEntry struct {
	key      string
	refcount int
	data      any // opaque renderer-owned payload (e.g. a pixmap id)
}

// NewTextureHandler creates an empty handler.
func NewTextureHandler() *TextureHandler {
	return &TextureHandler{
		byKey:  make(map[string]TextureHandle),
		byHand: make(map[TextureHandle]*textureEntry),
	}
}

// Acquire returns the handle for key, creating it via load on first
// use. Every Acquire must be matched by a Release.
func (h *TextureHandler) Acquire(key string, load func() any) TextureHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	if handle, ok := h.byKey[key]; ok {
		h.byHand[handle].refcount++
		return handle
	}
	h.nextID++
	handle := h.nextID
	h.byKey[key] = handle
	h.byHand[handle] = &textureEntry{key: key, refcount: 1, data: load()}
	return handle
}

// Release drops one reference to handle, freeing it via free once the
// refcount reaches zero. free is nil-safe to call with no cleanup.
func (h *TextureHandler) Release(handle TextureHandle, free func(any)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.byHand[handle]
	if !ok {
		return
	}
	entry.refcount--
	if entry.refcount > 0 {
		return
	}
	delete(h.byHand, handle)
	delete(h.byKey, entry.key)
	if free != nil {
		free(entry.data)
	}
}

// Data returns the opaque payload associated with handle.
func (h *TextureHandler) Data(handle TextureHandle) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.byHand[handle]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

// RefCount reports the current refcount of handle, 0 if unknown.
func (h *TextureHandler) RefCount(handle TextureHandle) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry, ok := h.byHand[handle]
	if !ok {
		return 0
	}
	return entry.refcount
}

// Default returns a minimal plausible decor, used until a theme file
// is loaded (theme parsing itself is out of scope, spec.md 1 Non-goals).
func Default() *Decor {
	d := &Decor{Name: "default"}
	for s := State(0); s < numStates; s++ {
		d.Border[s] = Border{Left: 1, Right: 1, Top: 1, Bottom: 1}
		d.Title[s] = TitleConfig{Height: 18, MinW: 15, MaxW: 0, Policy: TitleWidthProportional}
	}
	return d
}
