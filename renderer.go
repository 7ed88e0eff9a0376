package flywheel

import (
	"bytes"
	"io"
)

// Renderer owns the displayed buffer and the exclusive handle to the
// output sink; the pending buffer is passed in on each Apply* call. It is not safe for concurrent use by
// more than one writer; the three-actor pipeline guarantees the render
// actor is that sole writer.
type Renderer struct {
	displayed *Buffer
	sink      io.Writer
	buf       bytes.Buffer
	state     emitState
	desynced  bool
	fatal     bool
}

// NewRenderer creates a renderer for a width×height grid, writing to sink.
func NewRenderer(sink io.Writer, width, height int) *Renderer {
	return &Renderer{
		displayed: NewBuffer(width, height),
		sink:      sink,
		state:     newEmitState(),
	}
}

// Fatal reports whether a prior write error has disabled the renderer.
func (r *Renderer) Fatal() bool { return r.fatal }

// Desynced reports whether the displayed state no longer reflects the
// terminal, pending a resyncing full redraw.
func (r *Renderer) Desynced() bool { return r.desynced }

// Resize recreates the displayed buffer at the new dimensions and forces
// a full redraw on the next apply.
func (r *Renderer) Resize(width, height int) {
	r.displayed = NewBuffer(width, height)
	r.state = newEmitState()
	r.desynced = true
}

// flush writes the accumulated buffer to the sink as a single write,
// marking the renderer fatal on error.
func (r *Renderer) flush() error {
	if r.buf.Len() == 0 {
		return nil
	}
	_, err := r.sink.Write(r.buf.Bytes())
	if err != nil {
		r.fatal = true
	}
	return err
}

// ApplyUpdate computes the minimal transform from displayed to pending
// and flushes it as one write, then sets displayed := pending. If the renderer is desynced, this call is promoted to a full
// redraw and the desync flag is cleared.
func (r *Renderer) ApplyUpdate(pending *Buffer) error {
	if r.fatal {
		return ErrNotRunning
	}
	if r.desynced {
		return r.ApplyFullRedraw(pending)
	}
	r.buf.Reset()

	dirty := pending.DirtyRects()
	if len(dirty) == 0 {
		dirty = []Rect{{X: 0, Y: 0, Width: pending.width, Height: pending.height}}
	}
	for _, rect := range dirty {
		clamped := rect.Intersect(Rect{X: 0, Y: 0, Width: pending.width, Height: pending.height})
		if clamped.Empty() {
			continue
		}
		r.diffRect(clamped, pending)
	}

	if err := r.flush(); err != nil {
		return err
	}
	r.displayed.CopyFrom(pending)
	pending.ClearDirty()
	return nil
}

// diffRect scans one rectangle, emitting cells that differ between
// displayed and pending.
func (r *Renderer) diffRect(rect Rect, pending *Buffer) {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			next := pending.Get(x, y)
			if next.Width() == 0 {
				continue // continuation cell: skip, never split a wide cell
			}
			cur := r.displayed.Get(x, y)
			if cur.Equal(next, r.displayed.overflow) {
				continue
			}
			writeCell(&r.buf, &r.state, x, y, next, pending.overflow)
		}
	}
}

// ApplyFullRedraw unconditionally emits the entirety of pending, preceded
// by a screen-clear and cursor-home, then sets displayed := pending. Used on first frame, after resize, and to resync after desync.
func (r *Renderer) ApplyFullRedraw(pending *Buffer) error {
	if r.fatal {
		return ErrNotRunning
	}
	r.buf.Reset()
	r.buf.WriteString("\x1b[2J\x1b[H")
	r.state = newEmitState()

	for y := 0; y < pending.height; y++ {
		for x := 0; x < pending.width; x++ {
			c := pending.Get(x, y)
			if c.Width() == 0 {
				continue
			}
			writeCell(&r.buf, &r.state, x, y, c, pending.overflow)
		}
	}

	if err := r.flush(); err != nil {
		return err
	}
	if r.displayed.width != pending.width || r.displayed.height != pending.height {
		r.displayed = NewBuffer(pending.width, pending.height)
	}
	r.displayed.CopyFrom(pending)
	pending.ClearDirty()
	r.desynced = false
	return nil
}

// ApplyRaw flushes bytes verbatim (the fast path) then marks the
// renderer desynchronized, so the next ApplyUpdate is promoted to a
// full redraw. The displayed/pending buffers are not touched; resync
// clears the emit-state cache so every cell is re-emitted on that next
// full redraw.
func (r *Renderer) ApplyRaw(data []byte) error {
	if r.fatal {
		return ErrNotRunning
	}
	if len(data) == 0 {
		return nil
	}
	_, err := r.sink.Write(data)
	if err != nil {
		r.fatal = true
		return err
	}
	r.desynced = true
	return nil
}
