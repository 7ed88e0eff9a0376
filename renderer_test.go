package flywheel

import (
	"bytes"
	"strings"
	"testing"
)

func TestDiffZeroBytesWhenUnchanged(t *testing.T) {
	// invariant 4: diff(B, B) emits zero bytes.
	var sink bytes.Buffer
	r := NewRenderer(&sink, 10, 10)
	pending := NewBuffer(10, 10)

	if err := r.ApplyFullRedraw(pending); err != nil {
		t.Fatalf("initial full redraw: %v", err)
	}
	sink.Reset()

	pending2 := NewBuffer(10, 10)
	pending2.MarkAllDirty()
	if err := r.ApplyUpdate(pending2); err != nil {
		t.Fatalf("apply update: %v", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("diff against identical buffer emitted %d bytes, want 0: %q", sink.Len(), sink.String())
	}
}

func TestSingleCharacterDiff(t *testing.T) {
	// Scenario S1.
	var sink bytes.Buffer
	r := NewRenderer(&sink, 80, 24)
	pending := NewBuffer(80, 24)
	if err := r.ApplyFullRedraw(pending); err != nil {
		t.Fatalf("initial full redraw: %v", err)
	}
	sink.Reset()

	pending.SetGrapheme(10, 5, "A", RGB(255, 0, 0), DefaultBG, 0)
	if err := r.ApplyUpdate(pending); err != nil {
		t.Fatalf("apply update: %v", err)
	}

	out := sink.String()
	if !strings.Contains(out, "\x1b[6;11H") {
		t.Errorf("expected cursor move to row6;col11, got %q", out)
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Errorf("expected red foreground escape, got %q", out)
	}
	if !strings.Contains(out, "A") {
		t.Errorf("expected emitted rune A, got %q", out)
	}
	if strings.Count(out, "H") != 1 {
		t.Errorf("expected exactly one cursor-move sequence, got %d in %q", strings.Count(out, "H"), out)
	}
}

func TestAdjacentWritesSkipCursorMove(t *testing.T) {
	// Scenario S2.
	var sink bytes.Buffer
	r := NewRenderer(&sink, 80, 24)
	pending := NewBuffer(80, 24)
	if err := r.ApplyFullRedraw(pending); err != nil {
		t.Fatalf("initial full redraw: %v", err)
	}
	sink.Reset()

	pending.SetGrapheme(10, 5, "A", RGB(1, 2, 3), DefaultBG, 0)
	pending.SetGrapheme(11, 5, "B", RGB(1, 2, 3), DefaultBG, 0)
	pending.SetGrapheme(12, 5, "C", RGB(1, 2, 3), DefaultBG, 0)
	if err := r.ApplyUpdate(pending); err != nil {
		t.Fatalf("apply update: %v", err)
	}

	out := sink.String()
	if strings.Count(out, "H") != 1 {
		t.Errorf("expected exactly one cursor-move, got %d in %q", strings.Count(out, "H"), out)
	}
	if !strings.Contains(out, "ABC") {
		t.Errorf("expected contiguous ABC, got %q", out)
	}
}

func TestDesyncForcesFullRedraw(t *testing.T) {
	// invariant 6 / Scenario S5.
	var sink bytes.Buffer
	r := NewRenderer(&sink, 10, 10)
	pending := NewBuffer(10, 10)
	if err := r.ApplyFullRedraw(pending); err != nil {
		t.Fatalf("initial full redraw: %v", err)
	}

	if err := r.ApplyRaw([]byte("hi")); err != nil {
		t.Fatalf("apply raw: %v", err)
	}
	if !r.Desynced() {
		t.Fatalf("expected renderer desynced after ApplyRaw")
	}

	sink.Reset()
	pending.SetGrapheme(0, 0, "Z", DefaultFG, DefaultBG, 0)
	if err := r.ApplyUpdate(pending); err != nil {
		t.Fatalf("apply update: %v", err)
	}
	out := sink.String()
	if !strings.Contains(out, "\x1b[2J") {
		t.Errorf("expected full-redraw clear-screen sequence after desync, got %q", out)
	}
	if r.Desynced() {
		t.Errorf("resync should have cleared the desync flag")
	}
}

func TestWideCellFollowedByContinuation(t *testing.T) {
	// invariant 5.
	b := NewBuffer(10, 1)
	b.SetGrapheme(3, 0, "中", DefaultFG, DefaultBG, 0)
	next := b.Get(4, 0)
	if next.Width() != 0 {
		t.Fatalf("cell after a wide cell must have width 0, got %d", next.Width())
	}
	wide := b.Get(3, 0)
	if next.fg != wide.fg || next.bg != wide.bg {
		t.Fatalf("continuation cell style must match the preceding wide cell")
	}
}

func TestFatalWriteErrorStopsRenderer(t *testing.T) {
	r := NewRenderer(failingWriter{}, 4, 4)
	pending := NewBuffer(4, 4)
	pending.SetGrapheme(0, 0, "x", DefaultFG, DefaultBG, 0)
	if err := r.ApplyFullRedraw(pending); err == nil {
		t.Fatalf("expected write error to propagate")
	}
	if !r.Fatal() {
		t.Fatalf("expected renderer marked fatal after write error")
	}
	if err := r.ApplyUpdate(pending); err != ErrNotRunning {
		t.Fatalf("expected ErrNotRunning after fatal, got %v", err)
	}
}

func TestModifierDiffPreservesSharedResetSurvivor(t *testing.T) {
	// SGR 22 ("normal intensity") resets both bold and dim. Dropping
	// bold while dim stays set must re-emit dim's set code, or the
	// terminal silently loses the surviving attribute.
	var buf bytes.Buffer
	writeModifierDiff(&buf, ModBold|ModDim, ModDim)
	out := buf.String()
	if !strings.Contains(out, "\x1b[22m") {
		t.Fatalf("expected shared reset code, got %q", out)
	}
	if !strings.Contains(out, "\x1b[2m") {
		t.Fatalf("expected dim's set code re-emitted after the shared reset, got %q", out)
	}
	if strings.Contains(out, "\x1b[1m") {
		t.Fatalf("bold should not be re-set, got %q", out)
	}
}

func TestModifierDiffClearsBothSharingReset(t *testing.T) {
	var buf bytes.Buffer
	writeModifierDiff(&buf, ModBold|ModDim, 0)
	out := buf.String()
	if strings.Count(out, "\x1b[22m") != 1 {
		t.Fatalf("expected the shared reset code exactly once, got %q", out)
	}
	if strings.Contains(out, "\x1b[1m") || strings.Contains(out, "\x1b[2m") {
		t.Fatalf("neither attribute should be re-set when both clear, got %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, bytes.ErrTooLarge
}
