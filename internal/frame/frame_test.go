package frame

import (
	"errors"
	"testing"

	"github.com/pekwm/pekwm-go/internal/client"
	"github.com/pekwm/pekwm-go/internal/decor"
	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/registry"
	"github.com/pekwm/pekwm-go/internal/xerrors"
)

func TestAddClientActivatesIt(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	c1 := client.New(1)
	f.AddClient(c1)
	if f.Active() != c1 {
		t.Fatalf("expected first added client to be active")
	}
	c2 := client.New(2)
	f.AddClient(c2)
	if f.Active() != c2 {
		t.Fatalf("expected second added client to become active")
	}
}

func TestRemoveClientRepairsActiveTabInvariant(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	c1, c2, c3 := client.New(1), client.New(2), client.New(3)
	f.AddClient(c1)
	f.AddClient(c2)
	f.AddClient(c3)
	f.ActivateTab(c2)

	empty := f.RemoveClient(c2)
	if empty {
		t.Fatalf("expected frame to still have children")
	}
	if f.Active() == nil {
		t.Fatalf("expected active-tab invariant to hold after removing active tab")
	}

	f.RemoveClient(c1)
	empty = f.RemoveClient(c3)
	if !empty {
		t.Fatalf("expected frame to report empty once all children removed")
	}
	if f.Active() != nil {
		t.Fatalf("expected no active client in an empty frame")
	}
}

func TestCycleTabWraps(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	c1, c2 := client.New(1), client.New(2)
	f.AddClient(c1)
	f.AddClient(c2)
	f.ActivateTab(c1)
	f.CycleTab(-1)
	if f.Active() != c2 {
		t.Fatalf("expected backward cycle from first tab to wrap to last")
	}
}

func TestClientAreaShrinksByBorderAndTitle(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	f.Geometry.W, f.Geometry.H = 200, 100
	f.AddClient(client.New(1))
	area := f.ClientArea()
	if area.W >= f.Geometry.W || area.H >= f.Geometry.H {
		t.Fatalf("expected client area smaller than frame geometry, got %+v", area)
	}
}

func TestDoMapRejectsStaleParent(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	f.MarkStale()
	err := f.DoMap(nil)
	if !errors.Is(err, xerrors.ErrStaleParent) {
		t.Fatalf("expected ErrStaleParent, got %v", err)
	}
}

func TestReconfigureNoopsWithoutParent(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	f.AddClient(client.New(1))
	if err := f.Reconfigure(nil); err != nil {
		t.Fatalf("expected no error with no parent window yet, got %v", err)
	}
}

func TestTabRectsTileTheTitleStrip(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	f.Geometry = geom.Rect{W: 300, H: 50}
	f.AddClient(client.New(1))
	f.AddClient(client.New(2))
	f.AddClient(client.New(3))

	rects := f.TabRects()
	if len(rects) != 3 {
		t.Fatalf("expected 3 tab rects, got %d", len(rects))
	}
	b := f.Decor.Border[decor.StateUnfocused]
	var sum int32
	for _, r := range rects {
		if r.H != f.TitleHeight {
			t.Fatalf("expected every tab rect to use the frame's title height, got %d", r.H)
		}
		sum += r.W
	}
	if want := f.Geometry.W - b.Left - b.Right; sum != want {
		t.Fatalf("expected tab widths to tile the titlebar width %d, got %d", want, sum)
	}
}

func TestTabRectsNilWithoutChildren(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	if rects := f.TabRects(); rects != nil {
		t.Fatalf("expected no tab rects for a childless frame, got %v", rects)
	}
}

func TestShapeRectsTileFrameBounds(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	f.Geometry = geom.Rect{W: 200, H: 100}
	f.AddClient(client.New(1))

	rects := f.shapeRects()
	var area int64
	for _, r := range rects {
		area += r.Area()
	}
	bounds := geom.Rect{W: f.Geometry.W, H: f.Geometry.H}
	if area != bounds.Area() {
		t.Fatalf("expected shape rects to tile the frame bounds (%d), got total area %d", bounds.Area(), area)
	}
}

func TestRegistryRefResolvesBack(t *testing.T) {
	reg := registry.New()
	f := New(reg, decor.Default())
	obj, ok := reg.Resolve(f.RegistryRef())
	if !ok {
		t.Fatalf("expected registry ref to resolve")
	}
	if obj.(*Frame) != f {
		t.Fatalf("expected resolved object to be the same frame")
	}
}
