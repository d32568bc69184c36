package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// InvertStyle selects how Invert marks an area.
type InvertStyle uint8

const (
	// InvertSolid inverts every pixel of the area.
	InvertSolid InvertStyle = iota
	// InvertTrackFrame inverts a dashed outline around the area.
	InvertTrackFrame
	// InvertChecker50 inverts every other pixel in a checker pattern.
	InvertChecker50
)

// Invert inverts the area of a closed polygon, used for selection and
// tracking feedback. Inversion is drawing white with the difference
// operator. Must not be used while XOR mode is active.
func (g *Graphics) Invert(poly geom.Polygon, style InvertStyle) {
	if g.state.xorMode {
		Logger().Warn("gdi: invert ignored during xor mode")
		return
	}
	g.preDraw()

	path := raster.NewPath()
	addPolygonToPath(poly, path)
	path.SetFillRule(raster.FillRuleEvenOdd)
	g.addUpdateRegion(path.Bounds())

	canvas := g.drawCanvas()
	if style == InvertTrackFrame {
		// The frame must not paint outside the polygon even though the
		// stroke is wider than a hairline, so clip to its bounds.
		canvas.Save()
		canvas.ClipRect(path.Bounds(), false)
		paint := raster.NewPaint()
		paint.Style = raster.StyleStroke
		paint.StrokeWidth = 2
		paint.Dash = raster.NewDash(4, 4)
		paint.Color = raster.RGB(255, 255, 255)
		paint.Blend = raster.BlendDifference
		canvas.DrawPath(path, paint)
		canvas.Restore()
	} else {
		paint := raster.NewPaint()
		paint.Style = raster.StyleFill
		paint.Color = raster.RGB(255, 255, 255)
		paint.Blend = raster.BlendDifference
		if style == InvertChecker50 {
			// A repeated 2x2 checker leaves half the pixels untouched.
			checker := raster.NewBitmap(2, 2)
			checker.SetPixel(0, 0, raster.RGB(255, 255, 255))
			checker.SetPixel(1, 0, raster.RGB(0, 0, 0))
			checker.SetPixel(0, 1, raster.RGB(0, 0, 0))
			checker.SetPixel(1, 1, raster.RGB(255, 255, 255))
			paint.Shader = raster.NewImageShader(checker.Image(), geom.Identity(),
				raster.SamplingNearest, raster.ExtendRepeat)
		}
		canvas.DrawPath(path, paint)
	}
	g.postDraw()
}

// InvertRect inverts a rectangular area.
func (g *Graphics) InvertRect(x, y, width, height int, style InvertStyle) {
	r := geom.NewRect(float64(x), float64(y), float64(width), float64(height))
	poly := geom.Polygon{
		Points: []geom.Point{
			{X: r.MinX, Y: r.MinY},
			{X: r.MaxX, Y: r.MinY},
			{X: r.MaxX, Y: r.MaxY},
			{X: r.MinX, Y: r.MaxY},
		},
		Closed: true,
	}
	g.Invert(poly, style)
}
