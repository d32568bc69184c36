package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// addPolygonToPath appends one contour, emitting cubic segments for edges
// carrying control points.
func addPolygonToPath(p geom.Polygon, path *raster.Path) {
	n := len(p.Points)
	if n == 0 {
		return
	}
	path.MoveTo(p.Points[0].X, p.Points[0].Y)
	edges := n - 1
	if p.Closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		next := p.Points[(i+1)%n]
		if c := p.EdgeCtrl(i); c.Set {
			path.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, next.X, next.Y)
		} else {
			path.LineTo(next.X, next.Y)
		}
	}
	if p.Closed {
		path.Close()
	}
}

// polyPolygonPath builds an even-odd path from every contour.
func polyPolygonPath(pp geom.PolyPolygon) *raster.Path {
	path := raster.NewPath()
	path.SetFillRule(raster.FillRuleEvenOdd)
	for _, p := range pp.Polygons {
		addPolygonToPath(p, path)
	}
	return path
}

// colorWithTransparency scales the color's alpha by 1-transparency.
func colorWithTransparency(c Color, transparency float64) Color {
	if transparency <= 0 {
		return c
	}
	a := float64(c.A) * (1 - transparency)
	if a < 0 {
		a = 0
	}
	return c.WithAlpha(uint8(a + 0.5))
}

// rectPath returns a rectangle path in device coordinates.
func rectPath(r geom.Rect) *raster.Path {
	p := raster.NewPath()
	p.AddRect(r)
	return p
}
