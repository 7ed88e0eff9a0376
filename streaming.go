package flywheel

import "bytes"

// AppendOutcome tags whether StreamingWidget.Append took the fast or slow
// path.
type AppendOutcome uint8

const (
	AppendSlowPath AppendOutcome = iota
	AppendFastPath
)

// AppendResult is returned by StreamingWidget.Append.
type AppendResult struct {
	Outcome AppendOutcome

	// Populated when Outcome == AppendFastPath.
	Row, StartCol, EndCol int
	Emitted                []byte
}

// StreamingWidget is a scrollable text viewport with sticky auto-scroll
// and a dual-path append, bound to rect on the grid: a direct-emit fast
// path for the common "plain text at the tail" case, and a scrollback
// re-render slow path (wrapping, scrolled-away viewport, style changes,
// newlines) generalized from whole-buffer-resync-on-every-line to a
// cell-precise fast path with clamped min/max scroll.
type StreamingWidget struct {
	rect       Rect
	scrollback *Scrollback

	scrollOffset int // 0 == top; maxScrollOffset() == sticky bottom
	cursorCol    int // column of the next fast-path write, widget-relative
	cursorRow    int // scrollback line index of the next fast-path write

	pendingFG, pendingBG Color
	pendingMods          Modifier
	styleDirty           bool // a style change hasn't been emitted on the fast path yet

	lastEmittedFG, lastEmittedBG Color
	lastEmittedMods              Modifier
	haveEmitted                  bool
}

// NewStreamingWidget creates a widget bound to rect, with scrollback
// capped at maxLines.
func NewStreamingWidget(rect Rect, maxLines int) *StreamingWidget {
	w := &StreamingWidget{
		rect:       rect,
		scrollback: NewScrollback(maxLines),
		pendingFG:  DefaultFG,
		pendingBG:  DefaultBG,
	}
	w.scrollback.AppendLine()
	return w
}

// SetFG sets the pending foreground for subsequent appends.
func (w *StreamingWidget) SetFG(c Color) {
	if c != w.pendingFG {
		w.pendingFG = c
		w.styleDirty = true
	}
}

// SetBG sets the pending background for subsequent appends.
func (w *StreamingWidget) SetBG(c Color) {
	if c != w.pendingBG {
		w.pendingBG = c
		w.styleDirty = true
	}
}

// SetModifier sets the pending modifier mask for subsequent appends.
func (w *StreamingWidget) SetModifier(m Modifier) {
	if m != w.pendingMods {
		w.pendingMods = m
		w.styleDirty = true
	}
}

// maxScrollOffset is the scroll position that shows the tail of content.
func (w *StreamingWidget) maxScrollOffset() int {
	m := w.scrollback.Len() - w.rect.Height
	if m < 0 {
		m = 0
	}
	return m
}

// atTail reports whether the viewport is scrolled to the logical bottom.
func (w *StreamingWidget) atTail() bool {
	return w.scrollOffset >= w.maxScrollOffset()
}

// ScrollUp relocates the viewport up by n lines.
func (w *StreamingWidget) ScrollUp(n int) { w.setScroll(w.scrollOffset - n) }

// ScrollDown relocates the viewport down by n lines.
func (w *StreamingWidget) ScrollDown(n int) { w.setScroll(w.scrollOffset + n) }

func (w *StreamingWidget) setScroll(v int) {
	if v < 0 {
		v = 0
	}
	if m := w.maxScrollOffset(); v > m {
		v = m
	}
	w.scrollOffset = v
}

// ScrollOffset returns the current scroll position (lines from top).
func (w *StreamingWidget) ScrollOffset() int { return w.scrollOffset }

// canFastPath evaluates the four fast-path conditions against text: no
// newline or control rune, no wrap, viewport at tail, no pending style
// change.
func (w *StreamingWidget) canFastPath(text string) bool {
	for _, r := range text {
		if r == '\n' || isControlRune(r) {
			return false // condition 1
		}
	}
	width := stringDisplayWidth(text)
	if w.cursorCol+width > w.rect.Width {
		return false // condition 2: would wrap
	}
	if !w.atTail() {
		return false // condition 3
	}
	if w.styleDirty {
		return false // condition 4
	}
	return true
}

func isControlRune(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// Append appends text to the logical end of content, choosing the fast
// or slow path.
func (w *StreamingWidget) Append(text string) AppendResult {
	if w.canFastPath(text) {
		return w.appendFastPath(text)
	}
	w.appendSlowPath(text)
	return AppendResult{Outcome: AppendSlowPath}
}

// appendFastPath emits cursor-move, any changed style, then the text
// bytes directly, without mutating any buffer. It keeps the scrollback and cursor column in lockstep so a
// subsequent slow path produces a consistent picture.
func (w *StreamingWidget) appendFastPath(text string) AppendResult {
	var buf bytes.Buffer
	st := newEmitState()
	if w.haveEmitted {
		st.fg, st.bg, st.mods = w.lastEmittedFG, w.lastEmittedBG, w.lastEmittedMods
		st.haveFG, st.haveBG = true, true
	}

	// cursorRow is an absolute line index (it never moves when front lines
	// are evicted); visibleTop is logical, counted only over retained
	// lines. Subtract evictedLines to bring cursorRow into the same space
	// before computing the widget's row within the visible window.
	logicalCursorRow := w.cursorRow - w.scrollback.EvictedLines()
	visibleTop := w.scrollback.Len() - w.rect.Height
	if visibleTop < 0 {
		visibleTop = 0
	}
	screenRow := w.rect.Y + (logicalCursorRow - visibleTop)
	screenCol := w.rect.X + w.cursorCol

	writeMove(&buf, &st, screenCol, screenRow)
	writeStyleIfChanged(&buf, &st, w.pendingFG, w.pendingBG, w.pendingMods)

	startCol := w.cursorCol
	for _, cluster := range splitGraphemes(text) {
		w.scrollback.AppendToLast(cluster, w.pendingFG, w.pendingBG, w.pendingMods)
		buf.WriteString(cluster)
		w.cursorCol += clusterWidth(cluster)
	}

	w.lastEmittedFG, w.lastEmittedBG, w.lastEmittedMods = w.pendingFG, w.pendingBG, w.pendingMods
	w.haveEmitted = true
	w.applyStickyScroll(true)

	return AppendResult{
		Outcome:  AppendFastPath,
		Row:      screenRow,
		StartCol: startCol,
		EndCol:   w.cursorCol,
		Emitted:  buf.Bytes(),
	}
}

// appendSlowPath appends text to the scrollback with wrapping and newline
// processing, then marks the widget dirty for an update render.
func (w *StreamingWidget) appendSlowPath(text string) {
	wasAtTail := w.atTail()
	col := w.cursorCol

	for _, cluster := range splitGraphemes(text) {
		if cluster == "\n" {
			w.scrollback.AppendLine()
			w.cursorRow++
			col = 0
			continue
		}
		cw := clusterWidth(cluster)
		if col+cw > w.rect.Width {
			w.scrollback.AppendLine()
			w.cursorRow++
			col = 0
		}
		w.scrollback.AppendToLast(cluster, w.pendingFG, w.pendingBG, w.pendingMods)
		col += cw
	}
	w.cursorCol = col
	w.styleDirty = false
	w.lastEmittedFG, w.lastEmittedBG, w.lastEmittedMods = w.pendingFG, w.pendingBG, w.pendingMods
	w.haveEmitted = true

	w.applyStickyScroll(wasAtTail)
}

// Newline appends an explicit line break.
func (w *StreamingWidget) Newline() {
	wasAtTail := w.atTail()
	w.scrollback.AppendLine()
	w.cursorRow++
	w.cursorCol = 0
	w.applyStickyScroll(wasAtTail)
}

// applyStickyScroll advances the viewport to the new tail if it was
// previously at the tail before this mutation.
func (w *StreamingWidget) applyStickyScroll(wasAtTail bool) {
	if wasAtTail {
		w.scrollOffset = w.maxScrollOffset()
	} else if w.scrollOffset > w.maxScrollOffset() {
		w.scrollOffset = w.maxScrollOffset()
	}
}

// Push submits the result of Append to the engine: a fast-path result is
// sent as a raw command, a slow-path result renders the viewport onto buf
// (Push calls Render itself) and then requests an update render of buf.
func (w *StreamingWidget) Push(engine *Engine, result AppendResult, buf *Buffer) {
	switch result.Outcome {
	case AppendFastPath:
		engine.RenderQueue() <- RawCommand(result.Emitted)
	case AppendSlowPath:
		w.Render(buf)
		engine.RenderQueue() <- UpdateCommand(buf)
	}
}

// Render projects the viewport's visible lines onto buf, restricted to
// the widget's bound rect.
func (w *StreamingWidget) Render(buf *Buffer) {
	top := w.scrollOffset
	for row := 0; row < w.rect.Height; row++ {
		y := w.rect.Y + row
		line, ok := w.scrollback.Line(top + row)
		if !ok {
			buf.FillRect(Rect{X: w.rect.X, Y: y, Width: w.rect.Width, Height: 1}, EmptyCell())
			continue
		}
		col := 0
		for i, cluster := range line.clusters {
			cw := clusterWidth(cluster)
			if col+cw > w.rect.Width {
				break
			}
			buf.SetGrapheme(w.rect.X+col, y, cluster, line.fg[i], line.bg[i], line.mods[i])
			col += cw
		}
		for ; col < w.rect.Width; col++ {
			buf.SetFast(w.rect.X+col, y, EmptyCell())
		}
		buf.MarkDirty(Rect{X: w.rect.X, Y: y, Width: w.rect.Width, Height: 1})
	}
}
