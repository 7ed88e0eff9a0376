package flywheel

import "github.com/mattn/go-runewidth"

// runeDisplayWidth returns the terminal column width of a single rune.
func runeDisplayWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// zero-width runes (combining marks, ZWJ) still advance the
		// cursor by one column in most terminals when emitted alone.
		return 1
	}
	return w
}

// stringDisplayWidth returns the total column width of s, treating each
// grapheme cluster as occupying at most 2 columns.
func stringDisplayWidth(s string) int {
	width := 0
	for _, cluster := range splitGraphemes(s) {
		width += clusterWidth(cluster)
	}
	return width
}
