package gdi

import (
	"math"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
	"github.com/gogpu/gdi/text"
)

// Glyph is one positioned glyph of a laid-out run. Pos is the baseline
// origin in device coordinates. Vertical glyphs are rotated a quarter
// turn around their origin.
type Glyph struct {
	ID       uint32
	Pos      geom.Point
	Vertical bool
}

// GlyphRun is a laid-out sequence of glyphs from one face at one size.
type GlyphRun struct {
	Face   *text.Face
	Size   float64
	Glyphs []Glyph
}

// DrawGlyphRun fills the glyph outlines of a run with a color. Glyphs
// are grouped into maximal same-orientation segments and each segment
// is drawn as a single combined path. Returns false when the run cannot
// be rendered.
func (g *Graphics) DrawGlyphRun(run GlyphRun, color Color) bool {
	if run.Face == nil || run.Size <= 0 {
		return false
	}
	if len(run.Glyphs) == 0 {
		return true
	}
	g.preDraw()

	paint := raster.NewPaint()
	paint.Color = color
	paint.AntiAlias = g.state.antiAlias

	for start := 0; start < len(run.Glyphs); {
		end := start + 1
		for end < len(run.Glyphs) && run.Glyphs[end].Vertical == run.Glyphs[start].Vertical {
			end++
		}
		combined := raster.NewPath()
		for _, glyph := range run.Glyphs[start:end] {
			outline, err := run.Face.GlyphPath(glyph.ID, run.Size)
			if err != nil {
				Logger().Warn("gdi: skipping glyph without outline",
					"glyph", glyph.ID, "err", err)
				continue
			}
			if outline.IsEmpty() {
				continue
			}
			m := geom.Translate(glyph.Pos.X, glyph.Pos.Y)
			if glyph.Vertical {
				m = m.Multiply(geom.Rotate(math.Pi / 2))
			}
			outline.Transform(m)
			combined.AddPath(outline)
		}
		if !combined.IsEmpty() {
			g.addUpdateRegion(combined.Bounds())
			g.drawCanvas().FillPath(combined, paint)
		}
		start = end
	}

	g.postDraw()
	return true
}

// DrawText shapes and draws a string with its baseline origin at pos,
// a convenience wrapper over the shaper and DrawGlyphRun.
func (g *Graphics) DrawText(shaper *text.Shaper, face *text.Face, str string,
	size float64, pos geom.Point, vertical bool, color Color) bool {

	if shaper == nil || face == nil {
		return false
	}
	shaped := shaper.Shape(face, str, size, vertical)
	run := GlyphRun{Face: face, Size: size, Glyphs: make([]Glyph, len(shaped))}
	for i, s := range shaped {
		run.Glyphs[i] = Glyph{
			ID:       s.GID,
			Pos:      geom.Pt(pos.X+s.X, pos.Y+s.Y),
			Vertical: vertical,
		}
	}
	return g.DrawGlyphRun(run, color)
}
