package gdi

import (
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// The renderer has no exclusive-or blend mode, so XOR drawing renders
// into a same-sized shadow surface and the result is combined with the
// main surface manually, one pixel at a time, when XOR mode ends.

// xorCanvas returns the shadow canvas, creating the shadow surface on
// first use. The shadow starts fully transparent; untouched pixels
// xor with zero and leave the surface unchanged.
func (g *Graphics) xorCanvas() *raster.Canvas {
	if g.xorSurf == nil {
		shadow, err := raster.NewSurface(g.surf.Width(), g.surf.Height())
		if err != nil {
			panic(err)
		}
		g.xorSurf = shadow
		shadow.Canvas().Save()
		if g.state.hasClip {
			setCanvasClipRegion(shadow.Canvas(), g.state.clip)
		}
	}
	return g.xorSurf.Canvas()
}

// applyXor combines the shadow with the surface over the accumulated
// dirty region: per pixel, the unpremultiplied RGB channels are
// exclusive-ored while alpha stays untouched. Shadow resources are
// released afterwards.
func (g *Graphics) applyXor() {
	if g.surf == nil || g.xorSurf == nil {
		g.xorDirty = geom.IRect{}
		return
	}
	area := g.xorDirty.Intersect(geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height()))
	g.xorDirty = geom.IRect{}
	if area.IsEmpty() {
		g.xorSurf = nil
		return
	}
	Logger().Debug("gdi: applying xor shadow",
		"x", area.MinX, "y", area.MinY, "w", area.Width(), "h", area.Height())

	dst := g.surf.Pix()
	src := g.xorSurf.Pix()
	stride := g.surf.Stride()
	for y := area.MinY; y < area.MaxY; y++ {
		row := y * stride
		for x := area.MinX; x < area.MaxX; x++ {
			o := row + x*4
			d := raster.Unpremul(dst[o], dst[o+1], dst[o+2], dst[o+3])
			s := raster.Unpremul(src[o], src[o+1], src[o+2], src[o+3])
			d.R ^= s.R
			d.G ^= s.G
			d.B ^= s.B
			// Alpha is not xor-ed.
			pr, pg, pb, pa := d.Premul()
			dst[o], dst[o+1], dst[o+2], dst[o+3] = pr, pg, pb, pa
		}
	}
	g.xorSurf = nil
}
