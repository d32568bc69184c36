package gdi

import (
	"testing"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

func rectPolyPolygon(x, y, w, h float64) geom.PolyPolygon {
	return geom.PolyPolygon{Polygons: []geom.Polygon{{
		Points: []geom.Point{
			{X: x, Y: y}, {X: x + w, Y: y},
			{X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
		Closed: true,
	}}}
}

func TestDrawGradientRejectsUnsupported(t *testing.T) {
	g := newTestGraphics(t, 20, 20)
	pp := rectPolyPolygon(0, 0, 20, 20)

	for _, style := range []GradientStyle{GradientElliptical, GradientSquare, GradientRect} {
		gr := NewGradient(style, raster.RGB(0, 0, 0), raster.RGB(255, 255, 255))
		if g.DrawGradient(pp, gr) {
			t.Errorf("DrawGradient(style %d) = true, want false", style)
		}
	}

	gr := NewGradient(GradientLinear, raster.RGB(0, 0, 0), raster.RGB(255, 255, 255))
	gr.Steps = 16
	if g.DrawGradient(pp, gr) {
		t.Error("DrawGradient with explicit steps = true, want false")
	}
}

func TestLinearGradientRunsAcross(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	gr := NewGradient(GradientLinear, raster.RGB(0, 0, 0), raster.RGB(255, 255, 255))
	// Zero degrees runs bottom to top; 90 makes the axis horizontal.
	gr.Angle = 90

	if !g.DrawGradient(rectPolyPolygon(0, 0, 30, 30), gr) {
		t.Fatal("DrawGradient returned false")
	}
	left := g.GetPixel(2, 15)
	right := g.GetPixel(27, 15)
	if left.R >= right.R {
		t.Errorf("gradient not increasing left to right: left R=%d, right R=%d", left.R, right.R)
	}
	if left.A != 255 || right.A != 255 {
		t.Errorf("gradient pixels not opaque: left A=%d, right A=%d", left.A, right.A)
	}
}

func TestGradientSameColorsFillsSolid(t *testing.T) {
	g := newTestGraphics(t, 20, 20)
	c := raster.RGB(40, 80, 120)
	gr := NewGradient(GradientLinear, c, c)

	if !g.DrawGradient(rectPolyPolygon(0, 0, 20, 20), gr) {
		t.Fatal("DrawGradient returned false")
	}
	if got := g.GetPixel(10, 10); got != c {
		t.Errorf("pixel = %+v, want solid %+v", got, c)
	}
}

func TestRadialGradientEndColorAtCenter(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	gr := NewGradient(GradientRadial, raster.RGB(255, 255, 255), raster.RGB(0, 0, 0))

	if !g.DrawGradient(rectPolyPolygon(0, 0, 30, 30), gr) {
		t.Fatal("DrawGradient returned false")
	}
	center := g.GetPixel(14, 14)
	corner := g.GetPixel(1, 1)
	if center.R >= corner.R {
		t.Errorf("radial gradient not darkest at center: center R=%d, corner R=%d", center.R, corner.R)
	}
}

func TestGradientEmptyShapeIsHandled(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	gr := NewGradient(GradientLinear, raster.RGB(0, 0, 0), raster.RGB(255, 255, 255))
	if !g.DrawGradient(geom.PolyPolygon{}, gr) {
		t.Error("DrawGradient(empty shape) = false, want true (handled as no-op)")
	}
}

func TestDrawGradientStops(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	stops := []raster.Stop{
		{Offset: 0, Color: raster.RGB(255, 0, 0)},
		{Offset: 1, Color: raster.RGB(0, 0, 255)},
	}
	ok := g.DrawGradientStops(rectPolyPolygon(0, 0, 30, 30),
		geom.Pt(5, 15), geom.Pt(15, 15), stops)
	if !ok {
		t.Fatal("DrawGradientStops returned false")
	}

	inside := g.GetPixel(10, 15)
	if inside.A != 255 {
		t.Errorf("pixel inside stop range = %+v, want opaque", inside)
	}
	// Samples past the second point fall outside the stop range and
	// draw nothing.
	if got := g.GetPixel(25, 15); got != (Color{}) {
		t.Errorf("pixel past gradient end = %+v, want untouched", got)
	}
}

func TestDrawGradientStopsRequiresStops(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	if g.DrawGradientStops(rectPolyPolygon(0, 0, 10, 10), geom.Pt(0, 0), geom.Pt(10, 0), nil) {
		t.Error("DrawGradientStops(no stops) = true, want false")
	}
}
