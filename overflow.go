package flywheel

import "github.com/clipperhouse/uax29/v2/graphemes"

// overflowTable maps an index (the key a Cell's 4-byte payload is
// reinterpreted as) to the full grapheme string for clusters that don't fit
// inline. Entries are reference-counted; the last cell referencing a key
// releases it.
type overflowTable struct {
	strings []string
	refs    []int
	free    []uint32 // released indices available for reuse
}

func newOverflowTable() *overflowTable {
	return &overflowTable{}
}

// insert stores s and returns its key, incrementing its reference count.
func (t *overflowTable) insert(s string) uint32 {
	if n := len(t.free); n > 0 {
		key := t.free[n-1]
		t.free = t.free[:n-1]
		t.strings[key] = s
		t.refs[key] = 1
		return key
	}
	key := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.refs = append(t.refs, 1)
	return key
}

// retain increments the reference count for an existing key (used when
// copying a cell that already carries an overflow indirection, e.g. Blit).
func (t *overflowTable) retain(key uint32) {
	if int(key) < len(t.refs) {
		t.refs[key]++
	}
}

// release decrements the reference count for key, freeing the slot once it
// reaches zero.
func (t *overflowTable) release(key uint32) {
	if int(key) >= len(t.refs) || t.refs[key] <= 0 {
		return
	}
	t.refs[key]--
	if t.refs[key] == 0 {
		t.strings[key] = ""
		t.free = append(t.free, key)
	}
}

func (t *overflowTable) resolve(key uint32) string {
	if int(key) >= len(t.strings) {
		return ""
	}
	return t.strings[key]
}

// reset clears every entry. Used on resize, where overflow must be
// cleared along with the backing storage.
func (t *overflowTable) reset() {
	t.strings = t.strings[:0]
	t.refs = t.refs[:0]
	t.free = t.free[:0]
}

// clusterWidth estimates the display width of one grapheme cluster using
// East Asian Width doubling heuristics over the cluster's rune span. This
// mirrors the approach the corpus takes for per-rune width (go-runewidth)
// but operates over a cluster rather than a single rune, since a wide
// emoji ZWJ sequence should still occupy two columns.
func clusterWidth(cluster string) int {
	width := 0
	for _, r := range cluster {
		width += runeDisplayWidth(r)
	}
	if width > 2 {
		width = 2
	}
	if width == 0 && cluster != "" {
		width = 1
	}
	return width
}

// splitGraphemes segments s into user-perceived characters, used by the
// streaming widget and buffer writers to decide per-cluster placement
// rather than per-rune (a naive per-rune write would split ZWJ sequences).
func splitGraphemes(s string) []string {
	var out []string
	segs := graphemes.FromString(s)
	for segs.Next() {
		out = append(out, segs.Value().String())
	}
	return out
}
