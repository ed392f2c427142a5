package registry

import "testing"

func TestPutResolveRemove(t *testing.T) {
	r := New()
	ref := r.Put(42, "client-a")

	obj, ok := r.Resolve(ref)
	if !ok || obj != "client-a" {
		t.Fatalf("expected resolve to find client-a, got %v %v", obj, ok)
	}

	r.Remove(42)
	if _, ok := r.Resolve(ref); ok {
		t.Fatalf("expected stale ref after remove")
	}
}

func TestGenerationGuardsReuse(t *testing.T) {
	r := New()
	old := r.Put(7, "first")
	r.Remove(7)
	r.Put(7, "second")

	if _, ok := r.Resolve(old); ok {
		t.Fatalf("old ref must not resolve to the new occupant of id 7")
	}
	obj, ok := r.Lookup(7)
	if !ok || obj != "second" {
		t.Fatalf("expected lookup by id to find the new occupant")
	}
}

func TestZeroRefNeverResolves(t *testing.T) {
	r := New()
	var zero Ref
	if _, ok := r.Resolve(zero); ok {
		t.Fatalf("zero Ref must never resolve")
	}
}
