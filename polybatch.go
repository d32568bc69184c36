package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// polyBatch collects consecutive fill polygons that may be parts of one
// needlessly subdivided shape. Upstream geometry generation sometimes
// splits a filled region into abutting polygons; anti-aliased rendering
// of the shared edges then shows seams, so compatible polygons are
// merged back and drawn as one shape.
type polyBatch struct {
	polygons     []geom.Polygon
	bounds       geom.Rect
	transparency float64
}

func (b *polyBatch) empty() bool { return len(b.polygons) == 0 }

func (b *polyBatch) reset() {
	b.polygons = b.polygons[:0]
	b.bounds = geom.Rect{}
}

// delayDrawPolyPolygon decides whether the polygon joins the pending
// batch instead of drawing immediately. Only anti-aliased, fill-only,
// single-contour, closed polygons with at least one straight edge are
// candidates; an incompatible candidate first flushes the batch it
// cannot extend.
func (g *Graphics) delayDrawPolyPolygon(pp geom.PolyPolygon, transparency float64) bool {
	// Only AA fills suffer seams on shared edges.
	if !g.state.antiAlias {
		return false
	}
	if !g.state.hasFill || g.state.hasLine {
		return false
	}
	// Multi-contour shapes most likely were not needlessly split.
	if pp.Count() != 1 {
		return false
	}
	if !pp.IsClosed() {
		return false
	}
	// All-curve outlines are unlikely to be fragments of a larger shape,
	// and merging them is expensive.
	if !pp.Polygons[0].ContainsLine() {
		return false
	}

	if !g.batch.empty() &&
		(g.batch.transparency != transparency || !g.batch.bounds.Overlaps(pp.Bounds())) {
		// Cannot be parts of the same larger polygon, draw and reset.
		g.checkPendingDrawing()
	}
	if !g.batch.empty() {
		// Adjacent fragments share at least one vertex exactly; without
		// one there is nothing to merge.
		set := geom.NewSortedPointSet(pp.Polygons[0])
		last := g.batch.polygons[len(g.batch.polygons)-1]
		if !set.SharesVertex(last) {
			g.checkPendingDrawing()
		}
	}
	g.batch.polygons = append(g.batch.polygons, pp.Polygons[0])
	g.batch.bounds = g.batch.bounds.Union(pp.Bounds())
	g.batch.transparency = transparency
	return true
}

// checkPendingDrawing flushes the pending polygon batch. A single
// polygon draws directly; multiple polygons are rounded to integer
// coordinates and combined into one multi-contour shape drawn under the
// nonzero winding rule, where the coincident opposite-direction edges
// cancel and leave no seam.
func (g *Graphics) checkPendingDrawing() {
	if g.batch.empty() {
		return
	}
	polygons := g.batch.polygons
	transparency := g.batch.transparency
	g.batch.polygons = nil
	g.batch.reset()
	if len(polygons) == 1 {
		g.performDrawPolyPolygon(geom.PolyPolygon{Polygons: polygons}, transparency, true, raster.FillRuleEvenOdd)
		return
	}
	Logger().Debug("gdi: merging polygon batch", "count", len(polygons))
	merged := geom.MergePolyPolygons(polygons)
	g.performDrawPolyPolygon(merged, transparency, true, raster.FillRuleNonZero)
}

// DrawPolygon fills/strokes a closed polygon built from the points.
func (g *Graphics) DrawPolygon(points []geom.Point) {
	poly := geom.Polygon{Points: points, Closed: true}
	g.DrawPolyPolygon(geom.Identity(), geom.PolyPolygon{Polygons: []geom.Polygon{poly}}, 0)
}

// DrawPolyPolygon draws a multi-contour shape with the current colors.
// transparency is 0 for opaque; values outside [0, 1) make the operation
// a no-op. Eligible fills may be deferred for batch merging.
func (g *Graphics) DrawPolyPolygon(objectToDevice geom.Matrix, pp geom.PolyPolygon, transparency float64) {
	if pp.Count() == 0 || (!g.state.hasFill && !g.state.hasLine) {
		return
	}
	if transparency < 0 || transparency >= 1 {
		return
	}
	if !objectToDevice.IsIdentity() {
		pp = pp.Transform(objectToDevice)
	}
	if g.delayDrawPolyPolygon(pp, transparency) {
		g.scheduleFlush()
		return
	}
	g.performDrawPolyPolygon(pp, transparency, g.state.antiAlias, raster.FillRuleEvenOdd)
}

// performDrawPolyPolygon issues the actual draw.
func (g *Graphics) performDrawPolyPolygon(pp geom.PolyPolygon, transparency float64, useAA bool, rule raster.FillRule) {
	g.preDraw()

	path := polyPolygonPath(pp)
	path.SetFillRule(rule)
	orthogonal := pp.IsAxisAligned()

	// Line geometry is drawn at pixel centers, so area geometry gets the
	// same half-pixel offset to line up with it. Axis-aligned shapes
	// already land exactly on pixels; offsetting those under AA only
	// fuzzes their edges, so they are left alone.
	if !useAA || !orthogonal {
		path.Offset(0.5, 0.5)
	}
	g.addUpdateRegion(path.Bounds())

	paint := raster.NewPaint()
	paint.AntiAlias = useAA
	if g.state.hasFill {
		paint.Color = colorWithTransparency(g.state.fillColor, transparency)
		paint.Style = raster.StyleFill
		// A degenerate polygon that is just a line still should be
		// visible, and fills of empty outlines draw nothing.
		if !g.state.hasLine && path.Bounds().IsEmpty() {
			paint.Style = raster.StyleStroke
		}
		g.drawCanvas().DrawPath(path, paint)
	}
	if g.state.hasLine {
		paint.Color = colorWithTransparency(g.state.lineColor, transparency)
		paint.Style = raster.StyleStroke
		g.drawCanvas().DrawPath(path, paint)
	}
	g.postDraw()
}
