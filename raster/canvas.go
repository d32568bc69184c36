package raster

import (
	"image"
	"math"

	"github.com/gogpu/gdi/geom"
	"golang.org/x/image/draw"
)

// canvasState is one entry of the canvas save stack.
type canvasState struct {
	matrix geom.Matrix
	clip   []uint8 // full-surface coverage mask; nil means unclipped
}

// Canvas draws into a Surface through a save/restore stack of transform
// and clip state.
type Canvas struct {
	s      *Surface
	states []canvasState
}

func newCanvas(s *Surface) *Canvas {
	return &Canvas{
		s:      s,
		states: []canvasState{{matrix: geom.Identity()}},
	}
}

func (c *Canvas) top() *canvasState {
	return &c.states[len(c.states)-1]
}

// Save pushes the current state and returns the new save count.
func (c *Canvas) Save() int {
	top := *c.top()
	c.states = append(c.states, top)
	return len(c.states)
}

// Restore pops to the previous state. The base state is never popped.
func (c *Canvas) Restore() {
	if len(c.states) > 1 {
		c.states = c.states[:len(c.states)-1]
	}
}

// SaveCount returns the current stack depth (1 with no saves).
func (c *Canvas) SaveCount() int { return len(c.states) }

// Matrix returns the current transform.
func (c *Canvas) Matrix() geom.Matrix { return c.top().matrix }

// SetMatrix replaces the current transform.
func (c *Canvas) SetMatrix(m geom.Matrix) { c.top().matrix = m }

// Concat post-multiplies the current transform by m.
func (c *Canvas) Concat(m geom.Matrix) {
	c.top().matrix = c.top().matrix.Multiply(m)
}

// Translate concatenates a translation.
func (c *Canvas) Translate(dx, dy float64) {
	c.Concat(geom.Translate(dx, dy))
}

// ClipRect intersects the clip with a rectangle in current-transform
// coordinates.
func (c *Canvas) ClipRect(r geom.Rect, antialias bool) {
	p := NewPath()
	p.AddRect(r)
	c.ClipPath(p, antialias)
}

// ClipPath intersects the clip with a path in current-transform
// coordinates, honoring the path's fill rule.
func (c *Canvas) ClipPath(path *Path, antialias bool) {
	st := c.top()
	dev := path
	if !st.matrix.IsIdentity() {
		dev = path.Clone()
		dev.Transform(st.matrix)
	}
	mask := make([]uint8, c.s.w*c.s.h)
	fillPathAA(dev, c.s.w, c.s.h, nil, antialias, func(y int, cov []uint8) {
		copy(mask[y*c.s.w:(y+1)*c.s.w], cov)
	})
	if st.clip != nil {
		for i := range mask {
			mask[i] = mulDiv255(mask[i], st.clip[i])
		}
	}
	st.clip = mask
}

// DrawPath fills or strokes the path per the paint's style.
func (c *Canvas) DrawPath(path *Path, paint Paint) {
	switch paint.Style {
	case StyleStroke:
		c.StrokePath(path, paint)
	default:
		c.FillPath(path, paint)
	}
}

// FillPath fills the path interior under its fill rule.
func (c *Canvas) FillPath(path *Path, paint Paint) {
	st := c.top()
	dev := path
	if !st.matrix.IsIdentity() {
		dev = path.Clone()
		dev.Transform(st.matrix)
	}
	c.fillDevicePath(dev, paint)
}

// StrokePath strokes the path outline. Dashing, when present, is applied
// before stroke expansion; the stroke width is in device units.
func (c *Canvas) StrokePath(path *Path, paint Paint) {
	st := c.top()
	dev := path
	if !st.matrix.IsIdentity() {
		dev = path.Clone()
		dev.Transform(st.matrix)
	}
	if paint.Dash != nil {
		dev = paint.Dash.Apply(dev)
	}
	outline := ExpandStroke(dev, paint.StrokeWidth, paint.Cap, paint.Join, paint.MiterLimit)
	c.fillDevicePath(outline, paint)
}

// fillDevicePath rasterizes a device-space path with the paint's color or
// shader and blend mode.
func (c *Canvas) fillDevicePath(dev *Path, paint Paint) {
	st := c.top()
	s := c.s
	bf := blendFuncFor(paint.Blend)
	solid := paint.Shader == nil
	var sr, sg, sb, sa uint8
	if solid {
		sr, sg, sb, sa = paint.Color.Premul()
	}

	fillPathAA(dev, s.w, s.h, st.clip, paint.AntiAlias, func(y int, cov []uint8) {
		row := s.pix[y*s.stride : y*s.stride+s.w*4]
		for x := 0; x < s.w; x++ {
			a := cov[x]
			if a == 0 {
				continue
			}
			if !solid {
				sr, sg, sb, sa = paint.Shader.ColorAt(float64(x)+0.5, float64(y)+0.5).Premul()
			}
			o := x * 4
			blendPixel(row[o:o+4], sr, sg, sb, sa, a, bf)
		}
	})
}

// blendPixel blends a premultiplied source into one destination pixel,
// interpolating by coverage so every blend mode degrades smoothly at
// anti-aliased edges.
func blendPixel(dst []uint8, sr, sg, sb, sa, cov uint8, bf blendFunc) {
	dr, dg, db, da := dst[0], dst[1], dst[2], dst[3]
	br, bg, bb, ba := bf(sr, sg, sb, sa, dr, dg, db, da)
	if cov == 255 {
		dst[0], dst[1], dst[2], dst[3] = br, bg, bb, ba
		return
	}
	dst[0] = lerpU8(dr, br, cov)
	dst[1] = lerpU8(dg, bg, cov)
	dst[2] = lerpU8(db, bb, cov)
	dst[3] = lerpU8(da, ba, cov)
}

func lerpU8(d, b, t uint8) uint8 {
	return uint8((uint32(d)*uint32(255-t) + uint32(b)*uint32(t) + 127) / 255)
}

// DrawPaint covers the entire clip with the paint (no geometry).
func (c *Canvas) DrawPaint(paint Paint) {
	p := NewPath()
	p.AddRect(geom.NewRect(0, 0, float64(c.s.w), float64(c.s.h)))
	st := c.top()
	saved := st.matrix
	st.matrix = geom.Identity()
	c.FillPath(p, paint)
	st.matrix = saved
}

// DrawImageRect draws the src rectangle of img into dst, resampling per
// sampling and compositing with blend. opacity scales the source alpha
// (255 = fully opaque draw). The canvas transform must be axis-aligned;
// non-translation transforms route through DrawImageMatrix.
func (c *Canvas) DrawImageRect(img *Image, src, dst geom.Rect, sampling Sampling, blend BlendMode, opacity uint8) {
	if img == nil || src.IsEmpty() || dst.IsEmpty() || opacity == 0 {
		return
	}
	st := c.top()
	m := st.matrix
	if !m.IsTranslation() {
		local := geom.Translate(dst.MinX, dst.MinY).
			Multiply(geom.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
			Multiply(geom.Translate(-src.MinX, -src.MinY))
		c.DrawImageMatrix(img, local, sampling, blend, opacity)
		return
	}
	dst = geom.Rect{
		MinX: dst.MinX + m.C, MinY: dst.MinY + m.F,
		MaxX: dst.MaxX + m.C, MaxY: dst.MaxY + m.F,
	}
	dstI := geom.IRect{
		MinX: int(math.Round(dst.MinX)), MinY: int(math.Round(dst.MinY)),
		MaxX: int(math.Round(dst.MaxX)), MaxY: int(math.Round(dst.MaxY)),
	}
	if dstI.IsEmpty() {
		return
	}
	srcI := image.Rect(
		int(math.Round(src.MinX)), int(math.Round(src.MinY)),
		int(math.Round(src.MaxX)), int(math.Round(src.MaxY)),
	)
	srcI = srcI.Intersect(image.Rect(0, 0, img.w, img.h))
	if srcI.Empty() {
		return
	}

	// Resample into a temporary buffer of the destination size, then
	// composite with the requested blend.
	w, h := dstI.Width(), dstI.Height()
	var tmp *image.RGBA
	if srcI.Dx() == w && srcI.Dy() == h {
		tmp = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(tmp, tmp.Bounds(), img.RGBA(), srcI.Min, draw.Src)
	} else {
		tmp = image.NewRGBA(image.Rect(0, 0, w, h))
		sampling.scaler().Scale(tmp, tmp.Bounds(), img.RGBA(), srcI, draw.Src, nil)
	}
	c.compositeRGBA(tmp, dstI, blend, opacity)
}

// compositeRGBA blends a premultiplied buffer onto the surface at dst.
func (c *Canvas) compositeRGBA(src *image.RGBA, dst geom.IRect, blend BlendMode, opacity uint8) {
	st := c.top()
	s := c.s
	bf := blendFuncFor(blend)
	vis := dst.Intersect(geom.NewIRect(0, 0, s.w, s.h))
	if vis.IsEmpty() {
		return
	}
	for y := vis.MinY; y < vis.MaxY; y++ {
		srow := src.Pix[(y-dst.MinY)*src.Stride:]
		drow := s.pix[y*s.stride:]
		for x := vis.MinX; x < vis.MaxX; x++ {
			so := (x - dst.MinX) * 4
			sr, sg, sb, sa := srow[so], srow[so+1], srow[so+2], srow[so+3]
			cov := opacity
			if st.clip != nil {
				cov = mulDiv255(cov, st.clip[y*s.w+x])
			}
			if cov == 0 {
				continue
			}
			blendPixel(drow[x*4:x*4+4], sr, sg, sb, sa, cov, bf)
		}
	}
}

// DrawImageMatrix draws img positioned by an arbitrary affine matrix
// (device = local * image coordinates), sampling per-pixel through the
// inverse transform.
func (c *Canvas) DrawImageMatrix(img *Image, local geom.Matrix, sampling Sampling, blend BlendMode, opacity uint8) {
	if img == nil || opacity == 0 {
		return
	}
	st := c.top()
	s := c.s
	m := st.matrix.Multiply(local)
	inv := m.Invert()
	bf := blendFuncFor(blend)

	// Device bounds: transformed image corners.
	var b geom.Rect
	for i, corner := range []geom.Point{
		{X: 0, Y: 0},
		{X: float64(img.w), Y: 0},
		{X: float64(img.w), Y: float64(img.h)},
		{X: 0, Y: float64(img.h)},
	} {
		p := m.TransformPoint(corner)
		if i == 0 {
			b = geom.Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		} else {
			b = b.Expand(p)
		}
	}
	vis := b.Round().Intersect(geom.NewIRect(0, 0, s.w, s.h))
	if vis.IsEmpty() {
		return
	}

	nearest := sampling == SamplingNearest
	for y := vis.MinY; y < vis.MaxY; y++ {
		drow := s.pix[y*s.stride:]
		for x := vis.MinX; x < vis.MaxX; x++ {
			sp := inv.TransformPoint(geom.Pt(float64(x)+0.5, float64(y)+0.5))
			var sr, sg, sb, sa uint8
			if nearest {
				sr, sg, sb, sa = img.premulAt(int(math.Floor(sp.X)), int(math.Floor(sp.Y)))
			} else {
				sr, sg, sb, sa = sampleBilinear(img, sp.X, sp.Y)
			}
			if sa == 0 && sr == 0 && sg == 0 && sb == 0 {
				continue
			}
			cov := opacity
			if st.clip != nil {
				cov = mulDiv255(cov, st.clip[y*s.w+x])
			}
			if cov == 0 {
				continue
			}
			blendPixel(drow[x*4:x*4+4], sr, sg, sb, sa, cov, bf)
		}
	}
}

// sampleBilinear samples premultiplied channels with bilinear filtering,
// transparent outside the image.
func sampleBilinear(img *Image, x, y float64) (uint8, uint8, uint8, uint8) {
	sx, sy := x-0.5, y-0.5
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	r00, g00, b00, a00 := img.premulAt(x0, y0)
	r10, g10, b10, a10 := img.premulAt(x0+1, y0)
	r01, g01, b01, a01 := img.premulAt(x0, y0+1)
	r11, g11, b11, a11 := img.premulAt(x0+1, y0+1)

	mix := func(v00, v10, v01, v11 uint8) uint8 {
		v := float64(v00)*(1-fx)*(1-fy) +
			float64(v10)*fx*(1-fy) +
			float64(v01)*(1-fx)*fy +
			float64(v11)*fx*fy
		return uint8(clampF(v+0.5, 0, 255))
	}
	return mix(r00, r10, r01, r11), mix(g00, g10, g01, g11),
		mix(b00, b10, b01, b11), mix(a00, a10, a01, a11)
}
