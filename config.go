package flywheel

import "time"

// Config carries Flywheel's tunables and their defaults. Construction
// follows a fluent builder style: each With* method returns the
// receiver for chaining.
type Config struct {
	FrameInterval    time.Duration
	MaxScrollback    int
	InputQueueCap    int
	RenderQueueCap   int
	AltScreen        bool
	MouseCapture     bool
}

// DefaultConfig returns Flywheel's defaults: 60 Hz frame interval,
// 10,000-line scrollback cap, 64-deep input queue, 16-deep render queue,
// alternate screen on, mouse capture off.
func DefaultConfig() Config {
	return Config{
		FrameInterval:  time.Duration(16666667), // 16.666ms
		MaxScrollback:  10000,
		InputQueueCap:  64,
		RenderQueueCap: 16,
		AltScreen:      true,
		MouseCapture:   false,
	}
}

func (c Config) WithFrameInterval(d time.Duration) Config { c.FrameInterval = d; return c }
func (c Config) WithMaxScrollback(n int) Config           { c.MaxScrollback = n; return c }
func (c Config) WithInputQueueCap(n int) Config           { c.InputQueueCap = n; return c }
func (c Config) WithRenderQueueCap(n int) Config          { c.RenderQueueCap = n; return c }
func (c Config) WithAltScreen(enabled bool) Config        { c.AltScreen = enabled; return c }
func (c Config) WithMouseCapture(enabled bool) Config     { c.MouseCapture = enabled; return c }
