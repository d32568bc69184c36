package geom

import "sort"

// CtrlPair holds the cubic Bezier control points for one polygon edge.
// A zero-value pair (Set == false) marks a straight edge.
type CtrlPair struct {
	C1, C2 Point
	Set    bool
}

// Polygon is an ordered point sequence with optional per-edge Bezier
// control points. Ctrl, when non-empty, has the same length as Points;
// Ctrl[i] describes the edge leaving Points[i].
type Polygon struct {
	Points []Point
	Ctrl   []CtrlPair
	Closed bool
}

// PointCount returns the number of points.
func (p Polygon) PointCount() int {
	return len(p.Points)
}

// HasCurves reports whether any edge carries control points.
func (p Polygon) HasCurves() bool {
	for _, c := range p.Ctrl {
		if c.Set {
			return true
		}
	}
	return false
}

// EdgeCtrl returns the control points of the edge leaving point i.
func (p Polygon) EdgeCtrl(i int) CtrlPair {
	if i < len(p.Ctrl) {
		return p.Ctrl[i]
	}
	return CtrlPair{}
}

// ContainsLine reports whether the polygon has at least one straight edge.
// Pure-curve outlines (circles, ellipses) return false.
func (p Polygon) ContainsLine() bool {
	n := len(p.Points)
	if n < 2 {
		return false
	}
	edges := n - 1
	if p.Closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		if !p.EdgeCtrl(i).Set {
			return true
		}
	}
	return false
}

// IsAxisAligned reports whether every edge is horizontal or vertical.
// Curved edges count as unaligned.
func (p Polygon) IsAxisAligned() bool {
	n := len(p.Points)
	if n < 2 {
		return true
	}
	edges := n - 1
	if p.Closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		if p.EdgeCtrl(i).Set {
			return false
		}
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		if a.X != b.X && a.Y != b.Y {
			return false
		}
	}
	return true
}

// Transform returns a copy with all points mapped through m.
func (p Polygon) Transform(m Matrix) Polygon {
	out := Polygon{
		Points: make([]Point, len(p.Points)),
		Closed: p.Closed,
	}
	for i, pt := range p.Points {
		out.Points[i] = m.TransformPoint(pt)
	}
	if len(p.Ctrl) > 0 {
		out.Ctrl = make([]CtrlPair, len(p.Ctrl))
		for i, c := range p.Ctrl {
			if c.Set {
				out.Ctrl[i] = CtrlPair{
					C1:  m.TransformPoint(c.C1),
					C2:  m.TransformPoint(c.C2),
					Set: true,
				}
			}
		}
	}
	return out
}

// Bounds returns the bounding rectangle of the polygon's points and
// control points.
func (p Polygon) Bounds() Rect {
	var r Rect
	empty := true
	add := func(pt Point) {
		if empty {
			r = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
			empty = false
			return
		}
		r = r.Expand(pt)
	}
	for _, pt := range p.Points {
		add(pt)
	}
	for _, c := range p.Ctrl {
		if c.Set {
			add(c.C1)
			add(c.C2)
		}
	}
	if empty {
		return Rect{}
	}
	return r
}

// Round returns a copy of the polygon with all points (including control
// points) rounded to integer coordinates.
func (p Polygon) Round() Polygon {
	out := Polygon{
		Points: make([]Point, len(p.Points)),
		Closed: p.Closed,
	}
	for i, pt := range p.Points {
		out.Points[i] = pt.Round()
	}
	if len(p.Ctrl) > 0 {
		out.Ctrl = make([]CtrlPair, len(p.Ctrl))
		for i, c := range p.Ctrl {
			if c.Set {
				out.Ctrl[i] = CtrlPair{C1: c.C1.Round(), C2: c.C2.Round(), Set: true}
			}
		}
	}
	return out
}

// PolyPolygon is a set of polygons forming one filled shape under a fill
// rule (holes are inner contours).
type PolyPolygon struct {
	Polygons []Polygon
}

// Count returns the number of contours.
func (pp PolyPolygon) Count() int {
	return len(pp.Polygons)
}

// Bounds returns the union of all contour bounds.
func (pp PolyPolygon) Bounds() Rect {
	var r Rect
	for _, p := range pp.Polygons {
		r = r.Union(p.Bounds())
	}
	return r
}

// Append adds a contour.
func (pp *PolyPolygon) Append(p Polygon) {
	pp.Polygons = append(pp.Polygons, p)
}

// IsClosed reports whether every contour is closed.
func (pp PolyPolygon) IsClosed() bool {
	for _, p := range pp.Polygons {
		if !p.Closed {
			return false
		}
	}
	return len(pp.Polygons) > 0
}

// IsAxisAligned reports whether every contour is axis aligned.
func (pp PolyPolygon) IsAxisAligned() bool {
	for _, p := range pp.Polygons {
		if !p.IsAxisAligned() {
			return false
		}
	}
	return true
}

// Transform returns a copy with every contour mapped through m.
func (pp PolyPolygon) Transform(m Matrix) PolyPolygon {
	out := PolyPolygon{Polygons: make([]Polygon, len(pp.Polygons))}
	for i, p := range pp.Polygons {
		out.Polygons[i] = p.Transform(m)
	}
	return out
}

// MergePolyPolygons rounds every polygon to integer coordinates and
// combines them into one multi-contour poly-polygon. Rounding first keeps
// abutting edges exactly coincident so the combined shape fills without
// seams; drawing the result under the nonzero winding rule lets the shared
// opposite-direction edges cancel.
func MergePolyPolygons(polys []Polygon) PolyPolygon {
	var out PolyPolygon
	out.Polygons = make([]Polygon, 0, len(polys))
	for _, p := range polys {
		out.Polygons = append(out.Polygons, p.Round())
	}
	return out
}

// SortedPointSet is a sorted snapshot of a polygon's points supporting
// exact-membership tests in O(log n).
type SortedPointSet struct {
	points []Point
}

// NewSortedPointSet builds a point set from the polygon's points.
func NewSortedPointSet(p Polygon) SortedPointSet {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return SortedPointSet{points: pts}
}

// Contains reports whether the set holds a point exactly equal to pt.
func (s SortedPointSet) Contains(pt Point) bool {
	i := sort.Search(len(s.points), func(i int) bool {
		p := s.points[i]
		if p.X != pt.X {
			return p.X >= pt.X
		}
		return p.Y >= pt.Y
	})
	return i < len(s.points) && s.points[i] == pt
}

// SharesVertex reports whether any point of p is a member of the set.
func (s SortedPointSet) SharesVertex(p Polygon) bool {
	for _, pt := range p.Points {
		if s.Contains(pt) {
			return true
		}
	}
	return false
}
