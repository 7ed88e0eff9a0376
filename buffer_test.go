package flywheel

import "testing"

func TestNewBufferCellCount(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{80, 24}, {1, 1}, {0, 0}, {5, 3},
	}
	for _, tc := range tests {
		b := NewBuffer(tc.width, tc.height)
		if got := len(b.cells); got != tc.width*tc.height {
			t.Errorf("NewBuffer(%d,%d): cells len = %d, want %d", tc.width, tc.height, got, tc.width*tc.height)
		}
	}
}

func TestBufferResizeCellCount(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Resize(20, 5)
	if got := len(b.cells); got != 100 {
		t.Fatalf("after resize: cells len = %d, want 100", got)
	}
	if b.Width() != 20 || b.Height() != 5 {
		t.Fatalf("after resize: size = %dx%d, want 20x5", b.Width(), b.Height())
	}
}

func TestBufferGetSetRoundTrip(t *testing.T) {
	b := NewBuffer(10, 5)
	b.SetGrapheme(3, 2, "A", RGB(255, 0, 0), RGB(0, 0, 0), 0)
	c := b.Get(3, 2)
	if c.Grapheme(b.overflow) != "A" {
		t.Fatalf("got grapheme %q, want A", c.Grapheme(b.overflow))
	}
	if c.FG() != (RGB(255, 0, 0)) {
		t.Fatalf("fg mismatch")
	}
}

func TestBufferOutOfBoundsNeverPanics(t *testing.T) {
	b := NewBuffer(4, 4)
	b.Set(-1, -1, EmptyCell())
	b.Set(100, 100, EmptyCell())
	if got := b.Get(-1, 0); got != EmptyCell() {
		t.Fatalf("out-of-bounds Get should return EmptyCell")
	}
	if got := b.Get(100, 0); got != EmptyCell() {
		t.Fatalf("out-of-bounds Get should return EmptyCell")
	}
}

func TestOverflowReleaseOnOverwrite(t *testing.T) {
	b := NewBuffer(4, 1)
	b.SetGrapheme(0, 0, "abcdef", DefaultFG, DefaultBG, 0)
	if len(b.overflow.strings) != 1 {
		t.Fatalf("expected one overflow entry, got %d", len(b.overflow.strings))
	}
	b.Set(0, 0, EmptyCell())
	if b.overflow.refs[0] != 0 {
		t.Fatalf("expected overflow entry released after overwrite, refs = %d", b.overflow.refs[0])
	}
}

func TestBufferDirtyRects(t *testing.T) {
	b := NewBuffer(10, 10)
	if b.HasDirty() {
		t.Fatalf("fresh buffer should have no dirty rects recorded via Set")
	}
	b.Set(1, 1, EmptyCell())
	b.Set(2, 2, EmptyCell())
	if !b.HasDirty() {
		t.Fatalf("expected dirty rects after Set")
	}
	rects := b.DirtyRects()
	if len(rects) == 0 {
		t.Fatalf("expected at least one merged dirty rect")
	}
	b.ClearDirty()
	if b.HasDirty() {
		t.Fatalf("ClearDirty should drop recorded rects")
	}
}

func TestBufferBlit(t *testing.T) {
	src := NewBuffer(4, 4)
	src.SetGrapheme(0, 0, "X", RGB(1, 2, 3), DefaultBG, 0)

	dst := NewBuffer(4, 4)
	dst.Blit(src, 0, 0, 1, 1, 1, 1)

	got := dst.Get(1, 1)
	if got.Grapheme(dst.overflow) != "X" {
		t.Fatalf("blit did not copy cell content")
	}
}
