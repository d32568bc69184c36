package gdi

import (
	"math"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// GradientStyle selects the gradient geometry.
type GradientStyle uint8

const (
	// GradientLinear runs start to end along the gradient axis.
	GradientLinear GradientStyle = iota
	// GradientAxial runs end-start-end, mirrored about the axis center.
	GradientAxial
	// GradientRadial runs end at the border to start at the center.
	GradientRadial
	// GradientElliptical is not handled natively.
	GradientElliptical
	// GradientSquare is not handled natively.
	GradientSquare
	// GradientRect is not handled natively.
	GradientRect
)

// Gradient describes a document-layer gradient fill. Intensities,
// border and center offsets are percentages; the angle is in degrees
// with 0 running bottom to top.
type Gradient struct {
	Style          GradientStyle
	StartColor     Color
	EndColor       Color
	StartIntensity int
	EndIntensity   int
	Angle          float64
	Border         int
	OfsX           int
	OfsY           int
	Steps          int
}

// NewGradient returns a gradient with full intensities and a centered
// radial origin.
func NewGradient(style GradientStyle, start, end Color) Gradient {
	return Gradient{
		Style:          style,
		StartColor:     start,
		EndColor:       end,
		StartIntensity: 100,
		EndIntensity:   100,
		OfsX:           50,
		OfsY:           50,
	}
}

// colorWithIntensity scales the color channels by a percentage.
func colorWithIntensity(c Color, intensity int) Color {
	scale := func(v uint8) uint8 {
		return uint8(int(v) * intensity / 100)
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// rotateAbout rotates p around center by angle radians, counterclockwise
// in screen coordinates (y grows down).
func rotateAbout(p, center geom.Point, angle float64) geom.Point {
	sin, cos := math.Sincos(angle)
	nx := p.X - center.X
	ny := p.Y - center.Y
	return geom.Pt(
		center.X+cos*nx+sin*ny,
		center.Y-sin*nx+cos*ny,
	)
}

// gradientBoundRect computes the rectangle the gradient axis spans and
// its rotation center. For linear and axial styles the rectangle grows
// so that its rotation still covers the whole target; for radial it is
// the square around the target's diagonal.
func gradientBoundRect(gr Gradient, rect geom.Rect, angle float64) (geom.Rect, geom.Point) {
	if gr.Style == GradientRadial {
		diag := math.Hypot(rect.Width(), rect.Height()) + 1
		cx := rect.MinX + rect.Width()/2
		cy := rect.MinY + rect.Height()/2
		bound := geom.NewRect(cx-diag/2, cy-diag/2, diag, diag)
		center := geom.Pt(
			rect.MinX+rect.Width()*float64(gr.OfsX)/100,
			rect.MinY+rect.Height()*float64(gr.OfsY)/100,
		)
		return bound, center
	}
	bound := geom.Rect{
		MinX: rect.MinX - 1, MinY: rect.MinY - 1,
		MaxX: rect.MaxX + 1, MaxY: rect.MaxY + 1,
	}
	if angle != 0 {
		w := bound.Width()
		h := bound.Height()
		rw := w*math.Abs(math.Cos(angle)) + h*math.Abs(math.Sin(angle))
		rh := h*math.Abs(math.Cos(angle)) + w*math.Abs(math.Sin(angle))
		dx := (rw-w)*0.5 + 0.5
		dy := (rh-h)*0.5 + 0.5
		bound.MinX -= dx
		bound.MaxX += dx
		bound.MinY -= dy
		bound.MaxY += dy
	}
	center := geom.Pt(bound.MinX+bound.Width()/2, bound.MinY+bound.Height()/2)
	return bound, center
}

// DrawGradient fills a multi-contour shape with a gradient. Returns
// false when the style cannot be rendered natively or an explicit step
// count is requested, leaving the caller to decompose the gradient into
// bands itself.
func (g *Graphics) DrawGradient(pp geom.PolyPolygon, gr Gradient) bool {
	switch gr.Style {
	case GradientLinear, GradientAxial, GradientRadial:
	default:
		return false
	}
	// A step count cannot be expressed as a shader stop list.
	if gr.Steps != 0 {
		return false
	}
	g.preDraw()
	rect := pp.Bounds()
	if rect.IsEmpty() {
		g.postDraw()
		return true
	}
	path := polyPolygonPath(pp)
	g.addUpdateRegion(path.Bounds())

	// The document convention puts 0 degrees bottom to top; the axis
	// points below run left to right, so rotate a quarter turn less.
	angle := math.Mod(gr.Angle+270, 360) * math.Pi / 180
	bound, center := gradientBoundRect(gr, rect, angle)
	startColor := colorWithIntensity(gr.StartColor, gr.StartIntensity)
	endColor := colorWithIntensity(gr.EndColor, gr.EndIntensity)
	border := float64(gr.Border) / 100

	var shader raster.Shader
	switch gr.Style {
	case GradientLinear:
		p0 := rotateAbout(geom.Pt(bound.MinX, bound.MinY), center, angle)
		p1 := rotateAbout(geom.Pt(bound.MaxX, bound.MinY), center, angle)
		shader = raster.NewLinearGradientShader(
			p0.Add(geom.Pt(0.5, 0.5)), p1.Add(geom.Pt(0.5, 0.5)),
			[]raster.Stop{
				{Offset: border, Color: startColor},
				{Offset: 1, Color: endColor},
			}, raster.ExtendPad)
	case GradientAxial:
		p0 := rotateAbout(geom.Pt(bound.MinX, bound.MinY), center, angle)
		p1 := rotateAbout(geom.Pt(bound.MaxX, bound.MinY), center, angle)
		shader = raster.NewLinearGradientShader(
			p0.Add(geom.Pt(0.5, 0.5)), p1.Add(geom.Pt(0.5, 0.5)),
			[]raster.Stop{
				{Offset: math.Min(border, 0.5), Color: endColor},
				{Offset: 0.5, Color: startColor},
				{Offset: math.Max(1-border, 0.5), Color: endColor},
			}, raster.ExtendPad)
	case GradientRadial:
		// The classic software algorithm is a pixel off-center; shift the
		// shader the opposite way so both produce the same picture.
		c := geom.Pt(center.X+0.5-1, center.Y+0.5-1)
		radius := math.Max(bound.Width(), bound.Height()) / 2
		shader = raster.NewRadialGradientShader(c, radius,
			[]raster.Stop{
				{Offset: border, Color: endColor},
				{Offset: 1, Color: startColor},
			}, raster.ExtendPad)
	}

	paint := raster.NewPaint()
	paint.AntiAlias = g.state.antiAlias
	paint.Shader = shader
	g.drawCanvas().FillPath(path, paint)
	g.postDraw()
	return true
}

// DrawGradientStops fills a multi-contour shape with a linear gradient
// given by explicit endpoints and color stops. Samples outside the stop
// range draw nothing.
func (g *Graphics) DrawGradientStops(pp geom.PolyPolygon, p1, p2 geom.Point, stops []raster.Stop) bool {
	if len(stops) == 0 {
		return false
	}
	g.preDraw()
	path := polyPolygonPath(pp)
	g.addUpdateRegion(path.Bounds())

	shader := raster.NewLinearGradientShader(
		p1.Add(geom.Pt(0.5, 0.5)), p2.Add(geom.Pt(0.5, 0.5)),
		stops, raster.ExtendDecal)

	paint := raster.NewPaint()
	paint.AntiAlias = g.state.antiAlias
	paint.Shader = shader
	g.drawCanvas().FillPath(path, paint)
	g.postDraw()
	return true
}
