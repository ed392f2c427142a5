package decor

import "testing"

func TestAcquireSharesHandleForSameKey(t *testing.T) {
	h := NewTextureHandler()
	loads := 0
	load := func() any { loads++; return "pixmap" }

	a := h.Acquire("focused/gradient", load)
	b := h.Acquire("focused/gradient", load)
	if a != b {
		t.Fatalf("expected same handle for same key, got %v and %v", a, b)
	}
	if loads != 1 {
		t.Fatalf("expected load to run once, ran %d times", loads)
	}
	if h.RefCount(a) != 2 {
		t.Fatalf("expected refcount 2, got %d", h.RefCount(a))
	}
}

func TestReleaseFreesOnlyAtZero(t *testing.T) {
	h := NewTextureHandler()
	handle := h.Acquire("k", func() any { return 1 })
	h.Acquire("k", func() any { return 1 })

	freed := false
	h.Release(handle, func(any) { freed = true })
	if freed {
		t.Fatalf("expected no free while refcount > 0")
	}
	if _, ok := h.Data(handle); !ok {
		t.Fatalf("expected handle still valid")
	}

	h.Release(handle, func(any) { freed = true })
	if !freed {
		t.Fatalf("expected free once refcount reaches 0")
	}
	if _, ok := h.Data(handle); ok {
		t.Fatalf("expected handle gone after last release")
	}
}

func TestDefaultDecorHasAllStates(t *testing.T) {
	d := Default()
	if d.TitleHeight(StateFocused) == 0 {
		t.Fatalf("expected nonzero title height")
	}
	if d.Border[StateUnfocusedSelected].Left == 0 {
		t.Fatalf("expected nonzero border width")
	}
}

func TestTabWidthsSymmetricDistributesRemainder(t *testing.T) {
	cfg := TitleConfig{Policy: TitleWidthSymmetric}
	widths := cfg.TabWidths(100, []int32{0, 0, 0})
	if len(widths) != 3 {
		t.Fatalf("expected 3 widths, got %d", len(widths))
	}
	var sum int32
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("expected widths to sum to the available space, got %d", sum)
	}
	if widths[0] != 34 || widths[1] != 33 || widths[2] != 33 {
		t.Fatalf("expected the remainder on the leading tab, got %v", widths)
	}
}

func TestTabWidthsProportionalKeepsRequestsThatFit(t *testing.T) {
	cfg := TitleConfig{Policy: TitleWidthProportional}
	requests := []int32{20, 30, 40}
	widths := cfg.TabWidths(100, requests)
	for i, w := range widths {
		if w != requests[i] {
			t.Fatalf("expected request %d kept verbatim when it fits, got %d", requests[i], w)
		}
	}
}

func TestTabWidthsProportionalRedistributesOversized(t *testing.T) {
	cfg := TitleConfig{Policy: TitleWidthProportional}
	// average is 100/2 = 50: the 20px tab is below average and keeps its
	// request, the 130px tab is oversized and absorbs the rest.
	widths := cfg.TabWidths(100, []int32{20, 130})
	if widths[0] != 20 {
		t.Fatalf("expected the below-average tab to keep its request, got %d", widths[0])
	}
	if widths[1] != 80 {
		t.Fatalf("expected the oversized tab to take the remaining space, got %d", widths[1])
	}
}
