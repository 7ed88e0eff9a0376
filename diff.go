package flywheel

import "bytes"

// emitState tracks the last cursor position and style written to the
// output buffer so the diff can omit redundant escapes.
type emitState struct {
	cursorX, cursorY int // -1, -1 means "unknown" (forces a move)
	haveFG, haveBG   bool
	fg, bg           Color
	mods             Modifier
}

func newEmitState() emitState {
	return emitState{cursorX: -1, cursorY: -1}
}

// appendInt appends the decimal representation of n to b without
// allocation.
func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}

// writeMove emits a cursor-position escape (1-indexed) unless the cursor
// is already at (x, y).
func writeMove(buf *bytes.Buffer, st *emitState, x, y int) {
	if st.cursorX == x && st.cursorY == y {
		return
	}
	buf.WriteString("\x1b[")
	var scratch [32]byte
	b := appendInt(scratch[:0], y+1)
	buf.Write(b)
	buf.WriteByte(';')
	b = appendInt(scratch[:0], x+1)
	buf.Write(b)
	buf.WriteByte('H')
	st.cursorX, st.cursorY = x, y
}

// writeColor writes a true-color SGR sequence; Flywheel carries no other
// color mode.
func writeColor(buf *bytes.Buffer, c Color, fg bool) {
	if fg {
		buf.WriteString("\x1b[38;2;")
	} else {
		buf.WriteString("\x1b[48;2;")
	}
	var scratch [16]byte
	buf.Write(appendInt(scratch[:0], int(c.R)))
	buf.WriteByte(';')
	buf.Write(appendInt(scratch[:0], int(c.G)))
	buf.WriteByte(';')
	buf.Write(appendInt(scratch[:0], int(c.B)))
	buf.WriteString("m")
}

// modifierCodes maps each Modifier bit to its SGR "set" code.
var modifierCodes = []struct {
	bit  Modifier
	set  string
	rst  string
}{
	{ModBold, "\x1b[1m", "\x1b[22m"},
	{ModDim, "\x1b[2m", "\x1b[22m"},
	{ModItalic, "\x1b[3m", "\x1b[23m"},
	{ModUnderline, "\x1b[4m", "\x1b[24m"},
	{ModBlink, "\x1b[5m", "\x1b[25m"},
	{ModReverse, "\x1b[7m", "\x1b[27m"},
	{ModStrikethrough, "\x1b[9m", "\x1b[29m"},
}

// writeStyleIfChanged emits foreground, background, and modifier escapes
// only for the fields that differ from the last-emitted cache, then
// updates the cache.
func writeStyleIfChanged(buf *bytes.Buffer, st *emitState, fg, bg Color, mods Modifier) {
	if !st.haveFG || st.fg != fg {
		writeColor(buf, fg, true)
		st.fg = fg
		st.haveFG = true
	}
	if !st.haveBG || st.bg != bg {
		writeColor(buf, bg, false)
		st.bg = bg
		st.haveBG = true
	}
	if st.mods != mods {
		writeModifierDiff(buf, st.mods, mods)
		st.mods = mods
	}
}

// writeModifierDiff emits the SGR escapes needed to move from had to want.
// Some modifiers share a reset code (bold and dim both clear via SGR 22),
// so clearing one of them resets the whole group; any sibling bit that is
// still meant to be set must be re-emitted right after the reset rather
// than silently dropped.
func writeModifierDiff(buf *bytes.Buffer, had, want Modifier) {
	// Modifier is a uint8 bitmask, so at most 8 distinct reset codes can
	// ever need tracking; a linear scan over that fixed array avoids a
	// map allocation on this hot path.
	var resetSent [8]string
	sent := 0
	for _, m := range modifierCodes {
		if !had.Has(m.bit) || want.Has(m.bit) {
			continue // not being cleared
		}
		already := false
		for _, r := range resetSent[:sent] {
			if r == m.rst {
				already = true
				break
			}
		}
		if already {
			continue
		}
		resetSent[sent] = m.rst
		sent++
		buf.WriteString(m.rst)
		for _, sibling := range modifierCodes {
			if sibling.rst == m.rst && sibling.bit != m.bit && want.Has(sibling.bit) {
				buf.WriteString(sibling.set)
			}
		}
	}
	for _, m := range modifierCodes {
		if !had.Has(m.bit) && want.Has(m.bit) {
			buf.WriteString(m.set)
		}
	}
}

// writeCell emits one cell's grapheme bytes at the current cursor
// position, having already emitted any style change, then advances the
// emit-state cursor by the cell's display width. Continuation cells
// (width 0) must never reach here directly; Renderer.diffRect and
// Renderer.ApplyFullRedraw skip them.
func writeCell(buf *bytes.Buffer, st *emitState, x, y int, c Cell, overflow *overflowTable) {
	writeMove(buf, st, x, y)
	writeStyleIfChanged(buf, st, c.fg, c.bg, c.mods)
	g := c.Grapheme(overflow)
	if g == "" {
		g = " "
	}
	buf.WriteString(g)
	w := c.Width()
	if w == 0 {
		w = 1
	}
	st.cursorX += w
	st.cursorY = y
}
