package flywheel

import (
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.FrameInterval != 16666667*time.Nanosecond {
		t.Errorf("FrameInterval = %v, want ~16.666ms", c.FrameInterval)
	}
	if c.MaxScrollback != 10000 {
		t.Errorf("MaxScrollback = %d, want 10000", c.MaxScrollback)
	}
	if c.InputQueueCap != 64 {
		t.Errorf("InputQueueCap = %d, want 64", c.InputQueueCap)
	}
	if c.RenderQueueCap != 16 {
		t.Errorf("RenderQueueCap = %d, want 16", c.RenderQueueCap)
	}
	if !c.AltScreen {
		t.Errorf("AltScreen = false, want true by default")
	}
	if c.MouseCapture {
		t.Errorf("MouseCapture = true, want false by default")
	}
}

func TestConfigFluentBuilder(t *testing.T) {
	c := DefaultConfig().
		WithFrameInterval(time.Millisecond).
		WithMaxScrollback(500).
		WithInputQueueCap(8).
		WithRenderQueueCap(4).
		WithAltScreen(false).
		WithMouseCapture(true)

	if c.FrameInterval != time.Millisecond {
		t.Errorf("FrameInterval not applied")
	}
	if c.MaxScrollback != 500 {
		t.Errorf("MaxScrollback not applied")
	}
	if c.InputQueueCap != 8 {
		t.Errorf("InputQueueCap not applied")
	}
	if c.RenderQueueCap != 4 {
		t.Errorf("RenderQueueCap not applied")
	}
	if c.AltScreen {
		t.Errorf("AltScreen not applied")
	}
	if !c.MouseCapture {
		t.Errorf("MouseCapture not applied")
	}
}

func TestConfigBuilderDoesNotMutateReceiver(t *testing.T) {
	base := DefaultConfig()
	_ = base.WithMaxScrollback(1)
	if base.MaxScrollback != 10000 {
		t.Errorf("value-receiver builder mutated the original Config")
	}
}
