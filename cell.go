package flywheel

// Modifier is a bitmask of terminal text attributes.
type Modifier uint8

const (
	ModBold Modifier = 1 << iota
	ModItalic
	ModUnderline
	ModReverse
	ModDim
	ModStrikethrough
	ModBlink
)

// Has reports whether m contains all bits in other.
func (m Modifier) Has(other Modifier) bool { return m&other == other }

// Set returns m with other's bits set.
func (m Modifier) Set(other Modifier) Modifier { return m | other }

// Clear returns m with other's bits cleared.
func (m Modifier) Clear(other Modifier) Modifier { return m &^ other }

// Color is a 24-bit RGB color. There is no palette indirection; true
// color is required and legacy terminals are not supported.
type Color struct {
	R, G, B uint8
}

// RGB constructs a Color from component bytes.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// DefaultFG and DefaultBG are the colors a fresh Cell carries: a blank
// cell is a space with a black background and default foreground.
var (
	DefaultFG = Color{R: 255, G: 255, B: 255}
	DefaultBG = Color{R: 0, G: 0, B: 0}
)

const (
	cellFlagOverflow uint8 = 1 << iota
	cellFlagDirty
)

// Cell is a single terminal grid position. It is fixed at 16 bytes so two
// fit per cache line:
//
//	payload [4]byte  grapheme bytes, or an overflow table index
//	length  uint8    bytes used in payload (ignored when overflowing)
//	width   uint8    display width: 0 (continuation), 1, or 2
//	fg      Color    3 bytes
//	bg      Color    3 bytes
//	mods    Modifier 1 byte
//	flags   uint8    1 byte
//	_       [2]byte  reserved, keeps the cell at exactly 16 bytes
type Cell struct {
	payload [4]byte
	length  uint8
	width   uint8
	fg      Color
	bg      Color
	mods    Modifier
	flags   uint8
	_       [2]byte
}

// EmptyCell returns the default cell: a space, default foreground, black
// background, no modifiers.
func EmptyCell() Cell {
	c := Cell{width: 1, fg: DefaultFG, bg: DefaultBG}
	c.payload[0] = ' '
	c.length = 1
	return c
}

// continuationCell is the mandatory display-width-0 cell following any
// display-width-2 cell.
func continuationCell(style Cell) Cell {
	c := style
	c.width = 0
	c.payload = [4]byte{}
	c.length = 0
	c.flags &^= cellFlagOverflow
	return c
}

func (c Cell) isOverflow() bool { return c.flags&cellFlagOverflow != 0 }

func (c Cell) overflowKey() uint32 {
	return uint32(c.payload[0]) | uint32(c.payload[1])<<8 | uint32(c.payload[2])<<16 | uint32(c.payload[3])<<24
}

// Grapheme returns the cell's text, resolving through table when the cell
// is an overflow indirection. Pass the owning buffer's overflow table (may
// be nil for non-overflow cells).
func (c Cell) Grapheme(t *overflowTable) string {
	if !c.isOverflow() {
		return string(c.payload[:c.length])
	}
	if t == nil {
		return ""
	}
	return t.resolve(c.overflowKey())
}

// Width returns the cell's display width (0, 1, or 2).
func (c Cell) Width() int { return int(c.width) }

// FG returns the cell's foreground color.
func (c Cell) FG() Color { return c.fg }

// BG returns the cell's background color.
func (c Cell) BG() Color { return c.bg }

// Modifiers returns the cell's modifier bitmask.
func (c Cell) Modifiers() Modifier { return c.mods }

// WithFG returns a copy of c with the foreground color replaced.
func (c Cell) WithFG(fg Color) Cell { c.fg = fg; return c }

// WithBG returns a copy of c with the background color replaced.
func (c Cell) WithBG(bg Color) Cell { c.bg = bg; return c }

// WithModifiers returns a copy of c with the modifier mask replaced.
func (c Cell) WithModifiers(m Modifier) Cell { c.mods = m; return c }

// equalInline reports whether two non-overflow cells are identical. Kept
// branch-minimal: the struct compares in one shot for the common case of
// cells that differ in a single inline byte.
func (c Cell) equalInline(other Cell) bool {
	return c == other
}

// Equal reports whether two cells are equal, resolving overflow graphemes
// through t when either cell is an overflow indirection.
func (c Cell) Equal(other Cell, t *overflowTable) bool {
	if !c.isOverflow() && !other.isOverflow() {
		return c.equalInline(other)
	}
	if c.width != other.width || c.fg != other.fg || c.bg != other.bg ||
		c.mods != other.mods {
		return false
	}
	return c.Grapheme(t) == other.Grapheme(t)
}
