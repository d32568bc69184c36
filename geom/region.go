package geom

// Region is a clip region decomposed into non-overlapping rectangles.
// Clipping always works on the rectangle decomposition, never on arbitrary
// polygon outlines, so region boundaries stay consistent between clipping
// and filling.
type Region struct {
	Rects []IRect
}

// RegionFromRect creates a single-rectangle region.
func RegionFromRect(r IRect) Region {
	if r.IsEmpty() {
		return Region{}
	}
	return Region{Rects: []IRect{r}}
}

// IsEmpty reports whether the region covers no area.
func (r Region) IsEmpty() bool {
	for _, rc := range r.Rects {
		if !rc.IsEmpty() {
			return false
		}
	}
	return true
}

// Bounds returns the bounding rectangle of the region.
func (r Region) Bounds() IRect {
	var b IRect
	for _, rc := range r.Rects {
		b = b.Union(rc)
	}
	return b
}

// Equal reports whether two regions have identical rectangle lists.
func (r Region) Equal(s Region) bool {
	if len(r.Rects) != len(s.Rects) {
		return false
	}
	for i := range r.Rects {
		if r.Rects[i] != s.Rects[i] {
			return false
		}
	}
	return true
}
