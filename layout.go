package flywheel

// Region binds a widget to a fixed rectangle of the grid. Layouts are
// flat: a collection of non-overlapping (or z-ordered) regions with
// pre-computed rectangles, recomputed only on resize; there is no tree
// traversal at render time.
type Region struct {
	Name string
	Rect Rect
}

// Layout is a flat, ordered collection of regions. Later regions in the
// list are considered "on top" for z-ordering purposes when regions
// overlap; Flywheel does not resolve overlap itself (painter's algorithm
// is left to the caller's render order).
type Layout struct {
	regions []Region
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Set adds or replaces the region named name.
func (l *Layout) Set(name string, r Rect) {
	for i := range l.regions {
		if l.regions[i].Name == name {
			l.regions[i].Rect = r
			return
		}
	}
	l.regions = append(l.regions, Region{Name: name, Rect: r})
}

// Get returns the rect bound to name, or false if unbound.
func (l *Layout) Get(name string) (Rect, bool) {
	for _, r := range l.regions {
		if r.Name == name {
			return r.Rect, true
		}
	}
	return Rect{}, false
}

// Regions returns the regions in z-order (back to front).
func (l *Layout) Regions() []Region { return l.regions }

// Recompute replaces every region's rect via fn(name, oldRect), called
// once per resize event. A region whose new rect is degenerate stays in
// the list; Rect.Empty() regions produce no output.
func (l *Layout) Recompute(fn func(name string, old Rect) Rect) {
	for i := range l.regions {
		l.regions[i].Rect = fn(l.regions[i].Name, l.regions[i].Rect)
	}
}
