package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// Color is the straight-alpha RGBA color used throughout the backend.
type Color = raster.Color

// ROPColor selects one of the fixed raster-operation colors.
type ROPColor uint8

const (
	// ROPBlack paints black.
	ROPBlack ROPColor = iota
	// ROPWhite paints white.
	ROPWhite
	// ROPInvert paints white, which inverts under XOR mode.
	ROPInvert
)

// drawState is the mutable drawing state of one backend instance. Every
// draw operation reads it; pending work (the polygon batch, the XOR
// shadow) is only valid under the state that produced it, so each setter
// flushes pending work before mutating.
type drawState struct {
	lineColor Color
	hasLine   bool
	fillColor Color
	hasFill   bool

	clip    geom.Region
	hasClip bool

	xorMode   bool
	antiAlias bool
}

// SetLineColor sets the stroke color.
func (g *Graphics) SetLineColor(c Color) {
	g.checkPendingDrawing()
	g.state.lineColor = c
	g.state.hasLine = true
}

// SetLineNone disables stroking.
func (g *Graphics) SetLineNone() {
	g.checkPendingDrawing()
	g.state.hasLine = false
}

// SetFillColor sets the fill color.
func (g *Graphics) SetFillColor(c Color) {
	g.checkPendingDrawing()
	g.state.fillColor = c
	g.state.hasFill = true
}

// SetFillNone disables filling.
func (g *Graphics) SetFillNone() {
	g.checkPendingDrawing()
	g.state.hasFill = false
}

// SetROPLineColor sets the stroke color from a raster-operation code.
func (g *Graphics) SetROPLineColor(rop ROPColor) {
	g.checkPendingDrawing()
	g.state.lineColor = ropColor(rop)
	g.state.hasLine = true
}

// SetROPFillColor sets the fill color from a raster-operation code.
func (g *Graphics) SetROPFillColor(rop ROPColor) {
	g.checkPendingDrawing()
	g.state.fillColor = ropColor(rop)
	g.state.hasFill = true
}

func ropColor(rop ROPColor) Color {
	if rop == ROPBlack {
		return raster.RGB(0, 0, 0)
	}
	return raster.RGB(0xff, 0xff, 0xff)
}

// SetAntiAlias toggles anti-aliased rendering for subsequent operations.
func (g *Graphics) SetAntiAlias(aa bool) {
	if g.state.antiAlias == aa {
		return
	}
	g.checkPendingDrawing()
	g.state.antiAlias = aa
}

// AntiAlias reports whether anti-aliasing is active.
func (g *Graphics) AntiAlias() bool { return g.state.antiAlias }

// LineColor returns the stroke color and whether one is set.
func (g *Graphics) LineColor() (Color, bool) {
	return g.state.lineColor, g.state.hasLine
}

// FillColor returns the fill color and whether one is set.
func (g *Graphics) FillColor() (Color, bool) {
	return g.state.fillColor, g.state.hasFill
}

// SetClipRegion replaces the clip with the region's rectangles. Unchanged
// regions are a no-op. The canvas clip can only shrink, so the
// full-surface baseline is kept as the single save on the canvas stack
// and restored before the new region is applied.
func (g *Graphics) SetClipRegion(region geom.Region) {
	if g.state.hasClip && g.state.clip.Equal(region) {
		return
	}
	g.checkPendingDrawing()
	g.checkSurface()
	g.state.clip = region
	g.state.hasClip = true
	Logger().Debug("gdi: set clip region", "rects", len(region.Rects))
	canvas := g.surf.Canvas()
	canvas.Restore()
	canvas.Save()
	setCanvasClipRegion(canvas, region)
}

// ResetClipRegion restores the clip to the full surface.
func (g *Graphics) ResetClipRegion() {
	g.SetClipRegion(geom.RegionFromRect(geom.NewIRect(0, 0, g.width, g.height)))
}

// ClipRegion returns the current clip region.
func (g *Graphics) ClipRegion() geom.Region { return g.state.clip }

// setCanvasClipRegion applies a region to a canvas as one even-odd path
// of its rectangles. Rectangle decomposition is used even for polygonal
// regions; polygon clips introduce off-by-one boundary errors.
func setCanvasClipRegion(canvas *raster.Canvas, region geom.Region) {
	if region.IsEmpty() {
		return
	}
	path := raster.NewPath()
	path.SetFillRule(raster.FillRuleEvenOdd)
	for _, r := range region.Rects {
		path.AddRect(r.Rect())
	}
	canvas.ClipPath(path, false)
}

// clipBounds returns the current clip bounds, or the whole surface when
// no clip is set.
func (g *Graphics) clipBounds() geom.IRect {
	if g.state.hasClip && !g.state.clip.IsEmpty() {
		return g.state.clip.Bounds()
	}
	return geom.NewIRect(0, 0, g.width, g.height)
}

// SetXORMode enables or disables XOR compositing. Disabling applies the
// accumulated shadow to the surface.
func (g *Graphics) SetXORMode(enable bool) {
	if g.state.xorMode == enable {
		return
	}
	g.checkPendingDrawing()
	Logger().Debug("gdi: set xor mode", "enable", enable)
	if enable {
		g.xorDirty = geom.IRect{}
	} else {
		g.applyXor()
	}
	g.state.xorMode = enable
}

// XORMode reports whether XOR compositing is active.
func (g *Graphics) XORMode() bool { return g.state.xorMode }
