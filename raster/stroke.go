package raster

import (
	"math"

	"github.com/gogpu/gdi/geom"
)

// ExpandStroke converts a stroked path into a fill outline: the outer
// offset runs forward, the inner offset is appended reversed, and caps and
// joins connect the two. The result is filled under the nonzero winding
// rule, which absorbs the self-overlap at concave joins.
func ExpandStroke(path *Path, width float64, lineCap LineCap, join LineJoin, miterLimit float64) *Path {
	out := NewPath()
	out.SetFillRule(FillRuleNonZero)
	if width <= 0 {
		width = 1
	}
	if miterLimit < 1 {
		miterLimit = 4
	}
	r := width / 2

	for _, sp := range path.Flatten() {
		pts := dedupPoints(sp.Pts, sp.Closed)
		switch {
		case len(pts) == 0:
			continue
		case len(pts) == 1:
			strokeDot(out, pts[0], r, lineCap)
		case sp.Closed:
			strokeClosed(out, pts, r, join, miterLimit)
		default:
			strokeOpen(out, pts, r, lineCap, join, miterLimit)
		}
	}
	return out
}

// dedupPoints removes consecutive duplicates; for closed subpaths it also
// drops a trailing point equal to the first.
func dedupPoints(pts []geom.Point, closed bool) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// strokeDot emits a cap-shaped mark for a degenerate single-point subpath.
// Butt caps draw nothing, matching the usual renderer convention.
func strokeDot(out *Path, p geom.Point, r float64, lineCap LineCap) {
	switch lineCap {
	case CapRound:
		out.MoveTo(p.X+r, p.Y)
		appendArc(out, p, r, 0, 2*math.Pi)
		out.Close()
	case CapSquare:
		out.AddRect(geom.Rect{MinX: p.X - r, MinY: p.Y - r, MaxX: p.X + r, MaxY: p.Y + r})
	}
}

// edgeNormal returns the left offset normal of the edge from a to b, scaled
// by r. Returns false for zero-length edges.
func edgeNormal(a, b geom.Point, r float64) (geom.Point, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l < 1e-12 {
		return geom.Point{}, false
	}
	return geom.Pt(-d.Y/l*r, d.X/l*r), true
}

// strokeOpen builds the outline for an open polyline.
func strokeOpen(out *Path, pts []geom.Point, r float64, lineCap LineCap, join LineJoin, miterLimit float64) {
	n := len(pts)

	// Forward (left) side.
	n0, _ := edgeNormal(pts[0], pts[1], r)
	out.MoveTo(pts[0].X+n0.X, pts[0].Y+n0.Y)
	prev := n0
	for i := 1; i < n-1; i++ {
		cur, ok := edgeNormal(pts[i], pts[i+1], r)
		if !ok {
			continue
		}
		out.LineTo(pts[i].X+prev.X, pts[i].Y+prev.Y)
		addJoin(out, pts[i], prev, cur, r, join, miterLimit)
		out.LineTo(pts[i].X+cur.X, pts[i].Y+cur.Y)
		prev = cur
	}
	out.LineTo(pts[n-1].X+prev.X, pts[n-1].Y+prev.Y)

	// End cap onto the right side.
	addCap(out, pts[n-1], prev, r, lineCap)
	out.LineTo(pts[n-1].X-prev.X, pts[n-1].Y-prev.Y)

	// Backward (right) side, walking back to the start.
	for i := n - 2; i >= 1; i-- {
		cur, ok := edgeNormal(pts[i], pts[i+1], r)
		if !ok {
			continue
		}
		nxt, ok := edgeNormal(pts[i-1], pts[i], r)
		if !ok {
			continue
		}
		out.LineTo(pts[i].X-cur.X, pts[i].Y-cur.Y)
		addJoin(out, pts[i], geom.Pt(-cur.X, -cur.Y), geom.Pt(-nxt.X, -nxt.Y), r, join, miterLimit)
		out.LineTo(pts[i].X-nxt.X, pts[i].Y-nxt.Y)
	}
	out.LineTo(pts[0].X-n0.X, pts[0].Y-n0.Y)

	// Start cap back to the first outline point.
	addCap(out, pts[0], geom.Pt(-n0.X, -n0.Y), r, lineCap)
	out.Close()
}

// strokeClosed builds the outline for a closed polyline: one outer contour
// and one reversed inner contour.
func strokeClosed(out *Path, pts []geom.Point, r float64, join LineJoin, miterLimit float64) {
	n := len(pts)
	normal := func(i int) (geom.Point, bool) {
		return edgeNormal(pts[i], pts[(i+1)%n], r)
	}

	// Outer contour (left offsets, forward).
	first, ok := normal(n - 1)
	if !ok {
		return
	}
	started := false
	prev := first
	for i := 0; i < n; i++ {
		cur, ok := normal(i)
		if !ok {
			continue
		}
		if !started {
			out.MoveTo(pts[i].X+prev.X, pts[i].Y+prev.Y)
			started = true
		} else {
			out.LineTo(pts[i].X+prev.X, pts[i].Y+prev.Y)
		}
		addJoin(out, pts[i], prev, cur, r, join, miterLimit)
		out.LineTo(pts[i].X+cur.X, pts[i].Y+cur.Y)
		prev = cur
	}
	out.Close()

	// Inner contour (right offsets, reversed direction).
	started = false
	for i := n - 1; i >= 0; i-- {
		cur, ok := normal(i)
		if !ok {
			continue
		}
		if !started {
			out.MoveTo(pts[(i+1)%n].X-cur.X, pts[(i+1)%n].Y-cur.Y)
			started = true
		}
		out.LineTo(pts[i].X-cur.X, pts[i].Y-cur.Y)
		prevEdge := i - 1
		if prevEdge < 0 {
			prevEdge = n - 1
		}
		nxt, ok := normal(prevEdge)
		if !ok {
			nxt = cur
		}
		addJoin(out, pts[i], geom.Pt(-cur.X, -cur.Y), geom.Pt(-nxt.X, -nxt.Y), r, join, miterLimit)
		out.LineTo(pts[i].X-nxt.X, pts[i].Y-nxt.Y)
	}
	out.Close()
}

// addJoin connects the offset point p+from to p+to around vertex p.
// Only convex corners (where the offset side opens up) get the join shape;
// concave corners connect directly and rely on nonzero fill.
func addJoin(out *Path, p, from, to geom.Point, r float64, join LineJoin, miterLimit float64) {
	cross := from.Cross(to)
	if cross >= -1e-12 {
		// Concave or straight on this side.
		return
	}
	switch join {
	case JoinRound:
		a0 := math.Atan2(from.Y, from.X)
		a1 := math.Atan2(to.Y, to.X)
		// Sweep the short way around the convex side.
		for a1-a0 > math.Pi {
			a1 -= 2 * math.Pi
		}
		for a0-a1 > math.Pi {
			a1 += 2 * math.Pi
		}
		appendArc(out, p, r, a0, a1)
	case JoinMiter:
		// Half-angle between the normals determines the miter length ratio.
		dot := from.Dot(to) / (r * r)
		if dot < -1 {
			dot = -1
		}
		cosHalf := math.Sqrt((1 + dot) / 2)
		if cosHalf > 1e-6 && 1/cosHalf <= miterLimit {
			m := from.Add(to)
			ml := m.Length()
			if ml > 1e-12 {
				m = m.Scale(r / ml / cosHalf)
				out.LineTo(p.X+m.X, p.Y+m.Y)
			}
		}
		// Over the limit: fall through to the bevel edge drawn by the
		// caller's LineTo.
	case JoinBevel:
		// The caller's LineTo to p+to forms the bevel.
	}
}

// addCap draws the cap at endpoint p. norm is the left offset normal of
// the final edge; the cap runs from p+norm around to p-norm.
func addCap(out *Path, p, norm geom.Point, r float64, lineCap LineCap) {
	switch lineCap {
	case CapRound:
		a0 := math.Atan2(norm.Y, norm.X)
		appendArc(out, p, r, a0, a0-math.Pi)
	case CapSquare:
		// Extend by r along the edge direction (normal rotated -90).
		dir := geom.Pt(norm.Y, -norm.X)
		out.LineTo(p.X+norm.X+dir.X, p.Y+norm.Y+dir.Y)
		out.LineTo(p.X-norm.X+dir.X, p.Y-norm.Y+dir.Y)
	case CapButt:
		// Straight connection drawn by the caller.
	}
}

// appendArc emits line segments approximating a circular arc around c.
func appendArc(out *Path, c geom.Point, r, a0, a1 float64) {
	sweep := a1 - a0
	steps := int(math.Ceil(math.Abs(sweep) / 0.25))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		a := a0 + sweep*float64(i)/float64(steps)
		out.LineTo(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
}
