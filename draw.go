package gdi

import (
	"math"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// LineJoin selects how stroked segments connect. JoinNone has no native
// stroking equivalent and is approximated by drawing each segment as an
// independent sub-path.
type LineJoin uint8

const (
	// JoinNone draws segments independently, without joining.
	JoinNone LineJoin = iota
	// JoinMiter extends the outer edges to a point, subject to the
	// miter limit.
	JoinMiter
	// JoinRound connects segments with a circular arc.
	JoinRound
	// JoinBevel connects segments with a straight edge.
	JoinBevel
)

// LineCap selects stroke end treatment.
type LineCap = raster.LineCap

// Line cap values.
const (
	CapButt   = raster.CapButt
	CapRound  = raster.CapRound
	CapSquare = raster.CapSquare
)

// DrawPixel sets one pixel to the line color.
func (g *Graphics) DrawPixel(x, y int) {
	if !g.state.hasLine {
		return
	}
	g.DrawPixelColor(x, y, g.state.lineColor)
}

// DrawPixelColor sets one pixel. The pixel is replaced, not blended.
func (g *Graphics) DrawPixelColor(x, y int, c Color) {
	g.preDraw()
	g.addUpdateRegion(geom.NewRect(float64(x), float64(y), 1, 1))
	paint := raster.NewPaint()
	paint.Color = c
	paint.Blend = raster.BlendSrc
	paint.AntiAlias = false
	g.drawCanvas().FillPath(rectPath(geom.NewRect(float64(x), float64(y), 1, 1)), paint)
	g.postDraw()
}

// DrawLine strokes a hairline between two points with the line color.
func (g *Graphics) DrawLine(x1, y1, x2, y2 int) {
	if !g.state.hasLine {
		return
	}
	g.preDraw()
	bounds := geom.RectFromPoints(
		geom.Pt(float64(x1), float64(y1)),
		geom.Pt(float64(x2)+1, float64(y2)+1),
	)
	g.addUpdateRegion(bounds)
	path := raster.NewPath()
	// Pixel centers; endpoints on the grid stroke half-covered rows
	// otherwise.
	path.MoveTo(float64(x1)+0.5, float64(y1)+0.5)
	path.LineTo(float64(x2)+0.5, float64(y2)+0.5)
	paint := raster.NewPaint()
	paint.Style = raster.StyleStroke
	paint.Color = g.state.lineColor
	paint.AntiAlias = g.state.antiAlias
	g.drawCanvas().DrawPath(path, paint)
	g.postDraw()
}

// DrawRect draws an axis-aligned rectangle with the current colors,
// without anti-aliasing.
func (g *Graphics) DrawRect(x, y, width, height int) {
	g.drawAlphaRect(x, y, width, height, 0, true)
}

// DrawAlphaRect draws a rectangle with a uniform transparency in [0, 1).
func (g *Graphics) DrawAlphaRect(x, y, width, height int, transparency float64) {
	g.drawAlphaRect(x, y, width, height, transparency, false)
}

func (g *Graphics) drawAlphaRect(x, y, width, height int, transparency float64, blockAA bool) {
	if !g.state.hasFill && !g.state.hasLine {
		return
	}
	g.preDraw()
	fx, fy := float64(x), float64(y)
	fw, fh := float64(width), float64(height)
	g.addUpdateRegion(geom.NewRect(fx, fy, fw, fh))
	canvas := g.drawCanvas()
	paint := raster.NewPaint()
	paint.AntiAlias = !blockAA && g.state.antiAlias
	if g.state.hasFill {
		paint.Color = colorWithTransparency(g.state.fillColor, transparency)
		paint.Style = raster.StyleFill
		// A zero-area rectangle with no outline still draws as a line;
		// empty fills are invisible otherwise.
		if !g.state.hasLine && (width <= 0 || height <= 0) {
			paint.Style = raster.StyleStroke
		}
		canvas.DrawPath(rectPath(geom.NewRect(fx, fy, fw, fh)), paint)
	}
	if g.state.hasLine {
		paint.Color = colorWithTransparency(g.state.lineColor, transparency)
		paint.Style = raster.StyleStroke
		// The stroke runs along the rectangle outline one pixel inside
		// the fill edge; zero extents still stroke a degenerate rect.
		sw := math.Max(1, fw-1)
		sh := math.Max(1, fh-1)
		canvas.DrawPath(rectPath(geom.NewRect(fx+0.5, fy+0.5, sw, sh)), paint)
	}
	g.postDraw()
}

// DrawPolyLineSimple strokes an open hairline polyline with miter joins.
func (g *Graphics) DrawPolyLineSimple(points []geom.Point) {
	poly := geom.Polygon{Points: points}
	g.DrawPolyLine(geom.Identity(), poly, 0, 1, nil, JoinMiter, CapButt, defaultMiterMinimumAngle)
}

// defaultMiterMinimumAngle matches the conventional 15 degree minimum.
const defaultMiterMinimumAngle = 15 * math.Pi / 180

// DrawPolyLine strokes a polyline with the line color. The line width
// and dash intervals are object-space values transformed through
// objectToDevice; transparency outside [0, 1] is a no-op. Returns false
// when the request cannot be handled and the caller must fall back to a
// polygon decomposition.
func (g *Graphics) DrawPolyLine(objectToDevice geom.Matrix, poly geom.Polygon,
	transparency, lineWidth float64, dashes []float64,
	join LineJoin, cap LineCap, miterMinimumAngle float64) bool {

	if poly.PointCount() == 0 || transparency < 0 || transparency > 1 || !g.state.hasLine {
		return true
	}

	g.preDraw()

	// Transform the line width by the object-to-device scale.
	width := objectToDevice.TransformVector(geom.Pt(lineWidth, 0)).Length()
	if width < 1 {
		width = 1
	}
	dev := poly.Transform(objectToDevice)

	paint := raster.NewPaint()
	paint.Style = raster.StyleStroke
	paint.Color = colorWithTransparency(g.state.lineColor, transparency)
	paint.AntiAlias = g.state.antiAlias
	paint.StrokeWidth = width
	paint.Cap = cap
	switch join {
	case JoinRound:
		paint.Join = raster.JoinRound
	case JoinBevel:
		paint.Join = raster.JoinBevel
	default:
		paint.Join = raster.JoinMiter
		if miterMinimumAngle > 0 {
			paint.MiterLimit = 1 / math.Sin(miterMinimumAngle/2)
		}
	}

	if len(dashes) > 0 && sum(dashes) > 0 {
		// Dash intervals scale through the same matrix as the width.
		scaled := make([]float64, len(dashes))
		for i, d := range dashes {
			scaled[i] = objectToDevice.TransformVector(geom.Pt(d, 0)).Length()
		}
		paint.Dash = raster.NewDash(scaled...)
	}

	if join != JoinNone || width <= 1 {
		path := raster.NewPath()
		addPolygonToPath(dev, path)
		path.Offset(0.5, 0.5)
		g.addUpdateRegion(path.Bounds())
		g.drawCanvas().DrawPath(path, paint)
	} else {
		// No native joinless stroking; draw each segment independently.
		n := dev.PointCount()
		segs := n - 1
		if dev.Closed {
			segs = n
		}
		for i := 0; i < segs; i++ {
			a := dev.Points[i]
			b := dev.Points[(i+1)%n]
			path := raster.NewPath()
			path.MoveTo(a.X+0.5, a.Y+0.5)
			path.LineTo(b.X+0.5, b.Y+0.5)
			g.addUpdateRegion(path.Bounds())
			g.drawCanvas().DrawPath(path, paint)
		}
	}

	g.postDraw()
	return true
}

func sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}
