package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// CopyArea moves a rectangle of the surface to another position on the
// same surface. Overlapping areas are safe; the source is snapshotted
// before the write.
func (g *Graphics) CopyArea(destX, destY, srcX, srcY, width, height int) {
	if destX == srcX && destY == srcY {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	g.preDraw()
	src := geom.NewRect(float64(srcX), float64(srcY), float64(width), float64(height))
	dst := geom.NewRect(float64(destX), float64(destY), float64(width), float64(height))
	g.addUpdateRegion(dst)
	snap := g.surf.Snapshot()
	g.drawCanvas().DrawImageRect(snap, src, dst, raster.SamplingNearest, raster.BlendSrc, 255)
	g.postDraw()
}

// CopyBits copies a rectangle from another Graphics, scaling when the
// rectangles differ in size. A nil source copies from the destination
// itself.
func (g *Graphics) CopyBits(tr TwoRect, src *Graphics) {
	if tr.invalid() {
		return
	}
	if src == nil {
		src = g
	}
	if src != g {
		// The source's queued drawing must land before its pixels are read.
		src.checkSurface()
		src.FlushDrawing()
	}
	g.preDraw()
	g.addUpdateRegion(tr.dstRect())
	snap := src.surf.Snapshot()
	g.drawCanvas().DrawImageRect(snap, tr.srcRect(), tr.dstRect(), tr.sampling(), raster.BlendSrc, 255)
	g.postDraw()
}
