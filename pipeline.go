package flywheel

import (
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Engine wires the three-actor pipeline together: an input actor, the
// render actor, and the auxiliary ticker, all observing one shared
// atomic stop flag and each running on its own goroutine. Stop is a
// single idempotent flag flip that also closes the input source to
// unblock a pending read.
type Engine struct {
	cfg      Config
	renderer *Renderer
	input    *InputActor
	render   *RenderActor
	ticker   *Ticker
	stop     atomic.Bool
	stopOnce chan struct{}
	group    *errgroup.Group
}

// NewEngine creates an engine writing to sink, sized width×height, with
// events drawn from source, per cfg.
func NewEngine(cfg Config, sink io.Writer, width, height int, source EventSource) *Engine {
	e := &Engine{
		cfg:      cfg,
		renderer: NewRenderer(sink, width, height),
		stopOnce: make(chan struct{}),
	}
	e.input = NewInputActor(source, cfg.InputQueueCap, &e.stop)
	e.render = NewRenderActor(e.renderer, cfg.RenderQueueCap)
	e.ticker = NewTicker(cfg.FrameInterval, 1)
	return e
}

// Renderer returns the engine's renderer, for callers that submit
// commands to RenderQueue directly rather than through a widget's push.
func (e *Engine) Renderer() *Renderer { return e.renderer }

// InputEvents returns the channel to select on for input.
func (e *Engine) InputEvents() <-chan InputEvent { return e.input.Events() }

// Ticks returns the channel to select on for frame ticks.
func (e *Engine) Ticks() <-chan TickEvent { return e.ticker.Ticks() }

// RenderQueue returns the channel to send RenderCommand values on. Sends
// block when the queue is full.
func (e *Engine) RenderQueue() chan<- RenderCommand { return e.render.Queue() }

// DroppedInputEvents reports how many input events were dropped due to
// queue-full.
func (e *Engine) DroppedInputEvents() int64 { return e.input.DroppedCount() }

// IsRunning reports whether the engine is still accepting work.
func (e *Engine) IsRunning() bool { return !e.stop.Load() }

// Run starts the input actor, render actor, and ticker, each on its own
// goroutine supervised by an errgroup, and blocks until all three have
// exited. Run returns the first non-nil error, if any: a fatal renderer
// write error stops the engine and surfaces here as ErrNotRunning.
func (e *Engine) Run() error {
	var g errgroup.Group
	e.group = &g

	g.Go(func() error {
		e.input.Run()
		return nil
	})
	g.Go(func() error {
		e.ticker.Run()
		return nil
	})
	g.Go(func() error {
		e.render.Run()
		if e.renderer.Fatal() {
			e.Stop()
			return ErrNotRunning
		}
		return nil
	})

	return g.Wait()
}

// Stop sets the shared stop flag and wakes each actor from its blocking
// primitive: the ticker via its own done channel, the input actor via
// closing its event source, and the render actor via a queued stop
// command. Idempotent.
func (e *Engine) Stop() {
	if e.stop.Swap(true) {
		return // already stopped
	}
	e.ticker.Stop()
	e.input.Stop()
	select {
	case e.render.Queue() <- StopCommand():
	case <-e.render.Done():
		// render actor already exited (e.g. fatal write error); nothing
		// to wake.
	}
}
