package head

import (
	"testing"

	"github.com/pekwm/pekwm-go/internal/geom"
	"github.com/pekwm/pekwm-go/internal/strut"
)

func TestForRectNearestCenter(t *testing.T) {
	s := NewFromRects([]geom.Rect{
		{X: 0, Y: 0, W: 1920, H: 1080},
		{X: 1920, Y: 0, W: 1920, H: 1080},
	}, strut.New())

	idx := s.ForRect(geom.Rect{X: 2500, Y: 100, W: 100, H: 100})
	if idx != 1 {
		t.Fatalf("expected head 1, got %d", idx)
	}
}

func TestUsableAreaShrinksByStrut(t *testing.T) {
	struts := strut.New()
	struts.Add(geom.Strut{Head: 0, Top: 20})
	s := NewFromRects([]geom.Rect{{X: 0, Y: 0, W: 800, H: 600}}, struts)

	usable := s.At(0).UsableArea()
	if usable.Y != 20 || usable.H != 580 {
		t.Fatalf("expected strut-adjusted usable area, got %+v", usable)
	}
}

func TestUpdateRereadsStruts(t *testing.T) {
	struts := strut.New()
	s := NewSynthetic(geom.Rect{W: 1024, H: 768}, struts)
	struts.Add(geom.Strut{Head: 0, Bottom: 30})
	s.Update([]geom.Rect{{W: 1024, H: 768}})

	if s.At(0).Strut.Bottom != 30 {
		t.Fatalf("expected updated head to pick up new strut contribution")
	}
}
