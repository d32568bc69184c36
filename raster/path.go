// Package raster is the renderer-native layer of the drawing backend: a
// CPU surface with a canvas offering anti-aliased path fill and stroke,
// Porter-Duff blending, shaders and image draws. The backend orchestrates
// these primitives; this package knows nothing about drawing state,
// batching or caching.
package raster

import (
	"math"

	"github.com/gogpu/gdi/geom"
)

// FillRule selects how path self-intersections fill.
type FillRule uint8

const (
	// FillRuleNonZero fills where the winding number is non-zero.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills where the crossing count is odd.
	FillRuleEvenOdd
)

// PathVerb identifies a path segment type.
type PathVerb uint8

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// Path is a sequence of move/line/curve/close verbs with their points.
type Path struct {
	verbs []PathVerb
	pts   []geom.Point
	fill  FillRule

	start geom.Point
	last  geom.Point
}

// NewPath creates an empty path with the nonzero fill rule.
func NewPath() *Path {
	return &Path{}
}

// SetFillRule sets the fill rule used when the path is filled.
func (p *Path) SetFillRule(r FillRule) { p.fill = r }

// FillRule returns the path's fill rule.
func (p *Path) FillRule() FillRule { return p.fill }

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := geom.Pt(x, y)
	p.verbs = append(p.verbs, VerbMoveTo)
	p.pts = append(p.pts, pt)
	p.start = pt
	p.last = pt
}

// LineTo adds a line segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := geom.Pt(x, y)
	p.verbs = append(p.verbs, VerbLineTo)
	p.pts = append(p.pts, pt)
	p.last = pt
}

// QuadTo adds a quadratic Bezier segment.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.pts = append(p.pts, geom.Pt(cx, cy), geom.Pt(x, y))
	p.last = geom.Pt(x, y)
}

// CubicTo adds a cubic Bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.pts = append(p.pts, geom.Pt(c1x, c1y), geom.Pt(c2x, c2y), geom.Pt(x, y))
	p.last = geom.Pt(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.verbs = append(p.verbs, VerbClose)
	p.last = p.start
}

// AddRect adds a closed axis-aligned rectangle subpath.
func (p *Path) AddRect(r geom.Rect) {
	p.MoveTo(r.MinX, r.MinY)
	p.LineTo(r.MaxX, r.MinY)
	p.LineTo(r.MaxX, r.MaxY)
	p.LineTo(r.MinX, r.MaxY)
	p.Close()
}

// Last returns the current point of the path.
func (p *Path) Last() geom.Point { return p.last }

// Transform applies an affine matrix to every point in place.
func (p *Path) Transform(m geom.Matrix) {
	if m.IsIdentity() {
		return
	}
	for i := range p.pts {
		p.pts[i] = m.TransformPoint(p.pts[i])
	}
	p.start = m.TransformPoint(p.start)
	p.last = m.TransformPoint(p.last)
}

// Offset translates every point by (dx, dy) in place.
func (p *Path) Offset(dx, dy float64) {
	for i := range p.pts {
		p.pts[i].X += dx
		p.pts[i].Y += dy
	}
	p.start.X += dx
	p.start.Y += dy
	p.last.X += dx
	p.last.Y += dy
}

// Bounds returns the control-point bounding box of the path.
func (p *Path) Bounds() geom.Rect {
	if len(p.pts) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{MinX: p.pts[0].X, MinY: p.pts[0].Y, MaxX: p.pts[0].X, MaxY: p.pts[0].Y}
	for _, pt := range p.pts[1:] {
		r = r.Expand(pt)
	}
	return r
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		verbs: make([]PathVerb, len(p.verbs)),
		pts:   make([]geom.Point, len(p.pts)),
		fill:  p.fill,
		start: p.start,
		last:  p.last,
	}
	copy(out.verbs, p.verbs)
	copy(out.pts, p.pts)
	return out
}

// AddPath appends another path's subpaths to this one.
func (p *Path) AddPath(other *Path) {
	if other == nil || other.IsEmpty() {
		return
	}
	p.verbs = append(p.verbs, other.verbs...)
	p.pts = append(p.pts, other.pts...)
	p.start = other.start
	p.last = other.last
}

// Subpath is a flattened subpath: a polyline plus its closed flag.
type Subpath struct {
	Pts    []geom.Point
	Closed bool
}

// flattenTolerance is the maximum distance between a curve and its
// polyline approximation, in device pixels.
const flattenTolerance = 0.25

// Flatten converts the path to polylines, subdividing curves until they
// are within flattenTolerance of the true curve.
func (p *Path) Flatten() []Subpath {
	var out []Subpath
	var cur []geom.Point
	var closed bool
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, Subpath{Pts: cur, Closed: closed})
		}
		cur = nil
		closed = false
	}

	i := 0
	var last geom.Point
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			flush()
			last = p.pts[i]
			cur = append(cur, last)
			i++
		case VerbLineTo:
			pt := p.pts[i]
			if pt != last {
				cur = append(cur, pt)
				last = pt
			}
			i++
		case VerbQuadTo:
			c, e := p.pts[i], p.pts[i+1]
			cur = flattenQuad(cur, last, c, e)
			last = e
			i += 2
		case VerbCubicTo:
			c1, c2, e := p.pts[i], p.pts[i+1], p.pts[i+2]
			cur = flattenCubic(cur, last, c1, c2, e)
			last = e
			i += 3
		case VerbClose:
			closed = true
			flush()
			cur = append(cur, last)
		}
	}
	flush()
	return out
}

func flattenQuad(dst []geom.Point, p0, p1, p2 geom.Point) []geom.Point {
	if distanceToLine(p1, p0, p2) < flattenTolerance {
		return append(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	dst = flattenQuad(dst, p0, q0, q2)
	return flattenQuad(dst, q2, q1, p2)
}

func flattenCubic(dst []geom.Point, p0, p1, p2, p3 geom.Point) []geom.Point {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if d < flattenTolerance {
		return append(dst, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, s)
	return flattenCubic(dst, s, r1, q2, p3)
}

// distanceToLine is the perpendicular distance from p to segment (a, b).
func distanceToLine(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Scale(t)))
}
