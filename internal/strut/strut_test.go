package strut

import (
	"testing"

	"github.com/pekwm/pekwm-go/internal/geom"
)

func TestEffectiveIsPerDirectionMax(t *testing.T) {
	s := New()
	s.Add(geom.Strut{Head: 0, Top: 20, Left: 0})
	s.Add(geom.Strut{Head: 0, Top: 5, Left: 40})

	eff := s.Effective(0)
	if eff.Top != 20 || eff.Left != 40 {
		t.Fatalf("expected max per direction, got %+v", eff)
	}
}

func TestEffectiveGreaterOrEqualEveryContribution(t *testing.T) {
	s := New()
	contribs := []geom.Strut{
		{Head: 1, Left: 10, Right: 0, Top: 3, Bottom: 7},
		{Head: 1, Left: 2, Right: 15, Top: 9, Bottom: 1},
	}
	for _, c := range contribs {
		s.Add(c)
	}
	eff := s.Effective(1)
	for _, c := range contribs {
		if eff.Left < c.Left || eff.Right < c.Right || eff.Top < c.Top || eff.Bottom < c.Bottom {
			t.Fatalf("effective strut %+v does not dominate contribution %+v", eff, c)
		}
	}
}

func TestRemoveUnregisters(t *testing.T) {
	s := New()
	st := geom.Strut{Head: 2, Top: 30}
	s.Add(st)
	s.Remove(st)
	if eff := s.Effective(2); !eff.IsZero() {
		t.Fatalf("expected zero strut after remove, got %+v", eff)
	}
}
