package flywheel

// scrollbackLine is one logical line of styled text in the scrollback.
// Stored pre-segmented into grapheme clusters with per-cluster style so
// the streaming widget can project an arbitrary window onto a pending
// buffer without re-parsing.
type scrollbackLine struct {
	clusters []string
	fg       []Color
	bg       []Color
	mods     []Modifier
}

func (l *scrollbackLine) append(cluster string, fg, bg Color, mods Modifier) {
	l.clusters = append(l.clusters, cluster)
	l.fg = append(l.fg, fg)
	l.bg = append(l.bg, bg)
	l.mods = append(l.mods, mods)
}

// width returns the line's total display width in columns.
func (l *scrollbackLine) width() int {
	w := 0
	for _, c := range l.clusters {
		w += clusterWidth(c)
	}
	return w
}

// scrollbackChunkCap is the fixed line-capacity per chunk, generalizing
// a flat-slice ring buffer into chunk granularity so eviction is
// O(chunk) amortized rather than O(n) per trim.
const scrollbackChunkCap = 64

type scrollbackChunk struct {
	lines []scrollbackLine
}

// Scrollback is the chunked, segmented line store owned exclusively by
// the streaming widget. Append is amortized O(1); lines beyond the
// configured cap are trimmed from the front, whole chunks first and then
// line-by-line from the front chunk so the retained count is exactly the
// cap (see evictIfNeeded). Fixed-capacity chunks mean a trim never has to
// shift the tail.
type Scrollback struct {
	chunks       []*scrollbackChunk
	cap          int
	totalLines   int
	evictedLines int // count of lines ever discarded, for absolute indexing
}

// NewScrollback creates a scrollback capped at maxLines.
func NewScrollback(maxLines int) *Scrollback {
	return &Scrollback{cap: maxLines}
}

// Len returns the number of lines currently retained.
func (s *Scrollback) Len() int { return s.totalLines }

// EvictedLines returns the absolute count of lines ever discarded from the
// front. It is the offset between an absolute line index (as returned by
// AppendLine) and this scrollback's logical, retained-only index space (as
// consumed by Line).
func (s *Scrollback) EvictedLines() int { return s.evictedLines }

// lastChunk returns the tail chunk, allocating a fresh one if none exists
// or the tail is full.
func (s *Scrollback) lastChunk() *scrollbackChunk {
	if len(s.chunks) == 0 || len(s.chunks[len(s.chunks)-1].lines) >= scrollbackChunkCap {
		s.chunks = append(s.chunks, &scrollbackChunk{lines: make([]scrollbackLine, 0, scrollbackChunkCap)})
	}
	return s.chunks[len(s.chunks)-1]
}

// AppendLine appends a new empty line to the scrollback and returns its
// index.
func (s *Scrollback) AppendLine() int {
	c := s.lastChunk()
	c.lines = append(c.lines, scrollbackLine{})
	s.totalLines++
	s.evictIfNeeded()
	return s.evictedLines + s.totalLines - 1
}

// AppendToLast appends a styled grapheme cluster to the current last
// line, creating one first if the scrollback is empty.
func (s *Scrollback) AppendToLast(cluster string, fg, bg Color, mods Modifier) {
	if s.totalLines == 0 {
		s.AppendLine()
	}
	c := s.chunks[len(s.chunks)-1]
	c.lines[len(c.lines)-1].append(cluster, fg, bg, mods)
}

// Line returns the line at logical index i (0 is the oldest retained
// line), or false if out of range.
func (s *Scrollback) Line(i int) (scrollbackLine, bool) {
	if i < 0 || i >= s.totalLines {
		return scrollbackLine{}, false
	}
	for _, c := range s.chunks {
		if i < len(c.lines) {
			return c.lines[i], true
		}
		i -= len(c.lines)
	}
	return scrollbackLine{}, false
}

// evictIfNeeded discards front content while the retained line count
// exceeds cap.
// Whole chunks are dropped when doing so doesn't cut below cap (the cheap,
// common case); the front chunk is trimmed line-by-line only for the
// final adjustment down to exactly cap, so total line count always lands
// precisely on cap regardless of how it divides into chunks. If cap is 0,
// eviction is disabled.
func (s *Scrollback) evictIfNeeded() {
	if s.cap <= 0 {
		return
	}
	for s.totalLines > s.cap && len(s.chunks) > 0 {
		front := s.chunks[0]
		remaining := len(front.lines)
		if s.totalLines-remaining >= s.cap {
			s.chunks = s.chunks[1:]
			s.totalLines -= remaining
			s.evictedLines += remaining
			continue
		}
		over := s.totalLines - s.cap
		front.lines = front.lines[over:]
		s.totalLines -= over
		s.evictedLines += over
	}
}
