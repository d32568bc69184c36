package gdi

import (
	"math"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// TwoRect pairs a source rectangle in bitmap coordinates with a
// destination rectangle in device coordinates. Differing sizes scale.
type TwoRect struct {
	SrcX, SrcY, SrcW, SrcH int
	DstX, DstY, DstW, DstH int
}

// invalid reports degenerate geometry. Degenerate rectangles are
// expected from some layout states and make the operation a silent
// no-op.
func (t TwoRect) invalid() bool {
	return t.SrcW <= 0 || t.SrcH <= 0 || t.DstW <= 0 || t.DstH <= 0
}

func (t TwoRect) scaled() bool {
	return t.SrcW != t.DstW || t.SrcH != t.DstH
}

func (t TwoRect) srcRect() geom.Rect {
	return geom.NewRect(float64(t.SrcX), float64(t.SrcY), float64(t.SrcW), float64(t.SrcH))
}

func (t TwoRect) dstRect() geom.Rect {
	return geom.NewRect(float64(t.DstX), float64(t.DstY), float64(t.DstW), float64(t.DstH))
}

// localMatrix maps source coordinates onto the destination rectangle.
func (t TwoRect) localMatrix() geom.Matrix {
	return geom.Translate(float64(t.DstX), float64(t.DstY)).
		Multiply(geom.Scale(float64(t.DstW)/float64(t.SrcW), float64(t.DstH)/float64(t.SrcH))).
		Multiply(geom.Translate(float64(-t.SrcX), float64(-t.SrcY)))
}

func (t TwoRect) sampling() raster.Sampling {
	if t.scaled() {
		return raster.SamplingBilinear
	}
	return raster.SamplingNearest
}

// DrawBitmap draws a bitmap rectangle into the destination, scaling as
// needed.
func (g *Graphics) DrawBitmap(tr TwoRect, bmp *raster.Bitmap) {
	if tr.invalid() || bmp == nil {
		return
	}
	g.drawBitmapBlend(tr, bmp, raster.BlendSrcOver)
}

// drawBitmapBlend draws a bitmap, preferring a cached pre-scaled image
// when the whole bitmap is being scaled.
func (g *Graphics) drawBitmapBlend(tr TwoRect, bmp *raster.Bitmap, blend raster.BlendMode) {
	imagePos := tr
	imgW, imgH := bmp.W, bmp.H
	// When the whole bitmap scales into the destination, scaling can
	// happen once in the cache instead of on every draw.
	if tr.scaled() && tr.SrcX == 0 && tr.SrcY == 0 && tr.SrcW == bmp.W && tr.SrcH == bmp.H {
		imagePos.SrcW = tr.DstW
		imagePos.SrcH = tr.DstH
		imgW, imgH = tr.DstW, tr.DstH
	}
	if img := g.mergeCacheBitmaps(bmp, nil, imgW, imgH); img != nil {
		g.drawImage(imagePos, img, blend)
		return
	}
	g.drawImage(tr, bmp.Image(), blend)
}

// drawImage issues one image draw.
func (g *Graphics) drawImage(tr TwoRect, img *raster.Image, blend raster.BlendMode) {
	g.preDraw()
	g.addUpdateRegion(tr.dstRect())
	g.drawCanvas().DrawImageRect(img, tr.srcRect(), tr.dstRect(), tr.sampling(), blend, 255)
	g.postDraw()
}

// drawShader fills the destination rectangle through a shader, used to
// merge bitmaps with their masks via blend operators.
func (g *Graphics) drawShader(tr TwoRect, shader raster.Shader, blend raster.BlendMode) {
	g.preDraw()
	g.addUpdateRegion(tr.dstRect())
	paint := raster.NewPaint()
	paint.Shader = shader
	paint.Blend = blend
	paint.AntiAlias = false
	g.drawCanvas().FillPath(rectPath(tr.dstRect()), paint)
	g.postDraw()
}

// DrawAlphaBitmap draws a bitmap through an opacity-complement alpha
// mask (0 = opaque, 255 = transparent). A fully opaque mask degenerates
// to a plain draw.
func (g *Graphics) DrawAlphaBitmap(tr TwoRect, bmp *raster.Bitmap, alpha *raster.AlphaMask) bool {
	if tr.invalid() || bmp == nil || alpha == nil {
		return false
	}
	imagePos := tr
	imgW, imgH := bmp.W, bmp.H
	if tr.scaled() && tr.SrcX == 0 && tr.SrcY == 0 && tr.SrcW == bmp.W && tr.SrcH == bmp.H {
		imagePos.SrcW = tr.DstW
		imagePos.SrcH = tr.DstH
		imgW, imgH = tr.DstW, tr.DstH
	}
	if img := g.mergeCacheBitmaps(bmp, alpha, imgW, imgH); img != nil {
		g.drawImage(imagePos, img, raster.BlendSrcOver)
		return true
	}
	if alpha.IsFullyOpaque() {
		g.DrawBitmap(tr, bmp)
		return true
	}
	local := tr.localMatrix()
	shader := raster.NewBlendShader(raster.BlendDstOut,
		raster.NewImageShader(bmp.Image(), local, tr.sampling(), raster.ExtendPad),
		raster.NewMaskShader(alpha, local))
	g.drawShader(tr, shader, raster.BlendSrcOver)
	return true
}

// BlendBitmap multiplies an opacity-complement layer onto the surface.
// The surface here is itself an alpha layer, so transparent (255) input
// pixels keep the destination and opaque (0) pixels force opacity.
func (g *Graphics) BlendBitmap(tr TwoRect, layer *raster.AlphaMask) bool {
	if tr.invalid() || layer == nil {
		return false
	}
	shader := grayMaskShader{mask: layer, inv: tr.localMatrix().Invert()}
	if layer.IsFullyOpaque() {
		// All zeros; copying is the same result as multiplying.
		g.drawShader(tr, shader, raster.BlendSrcOver)
		return true
	}
	g.drawShader(tr, shader, raster.BlendMultiply)
	return true
}

// BlendAlphaBitmap draws a bitmap whose effective alpha is the
// composition of its own mask with the destination's alpha layer:
// result alpha = 1 - (1-alpha) * mask.
func (g *Graphics) BlendAlphaBitmap(tr TwoRect, bmp *raster.Bitmap, mask, alphaLayer *raster.AlphaMask) bool {
	if tr.invalid() || bmp == nil || mask == nil || alphaLayer == nil {
		return false
	}
	if mask.IsFullyOpaque() {
		// The math below degenerates to drawing the bitmap directly.
		g.DrawBitmap(tr, bmp)
		return true
	}
	local := tr.localMatrix()
	// First (1 - alpha) * mask, then the bitmap through one minus that.
	shaderAlpha := raster.NewBlendShader(raster.BlendDstOut,
		raster.NewMaskShader(mask, local),
		raster.NewMaskShader(alphaLayer, local))
	shader := raster.NewBlendShader(raster.BlendSrcOut,
		shaderAlpha,
		raster.NewImageShader(bmp.Image(), local, tr.sampling(), raster.ExtendPad))
	g.drawShader(tr, shader, raster.BlendSrcOver)
	return true
}

// DrawMask draws a flat color through an opacity-complement alpha mask.
func (g *Graphics) DrawMask(tr TwoRect, mask *raster.AlphaMask, color Color) {
	if tr.invalid() || mask == nil {
		return
	}
	local := tr.localMatrix()
	shader := raster.NewBlendShader(raster.BlendDstOut,
		raster.NewColorShader(color),
		raster.NewMaskShader(mask, local))
	g.drawShader(tr, shader, raster.BlendSrcOver)
}

// DrawTransformedBitmap draws a bitmap mapped so that its (0,0),
// (width,0) and (0,height) corners land on null, xCorner and yCorner.
// opacity in [0,1] scales the whole draw. High quality resampling is
// used only when the transform is more than an identity or axis flip.
func (g *Graphics) DrawTransformedBitmap(null, xCorner, yCorner geom.Point,
	bmp *raster.Bitmap, alpha *raster.AlphaMask, opacity float64) bool {

	if bmp == nil || bmp.W <= 0 || bmp.H <= 0 {
		return false
	}
	if alpha != nil && alpha.IsFullyOpaque() {
		alpha = nil
	}
	xRel := xCorner.Sub(null)
	yRel := yCorner.Sub(null)

	g.preDraw()
	// The mapped bounds are awkward to track here; mark the whole area.
	g.addUpdateRegion(geom.NewRect(0, 0, float64(g.width), float64(g.height)))

	op := uint8(math.Round(opacity * 255))
	targetW := int(math.Round(xRel.Length()))
	targetH := int(math.Round(yRel.Length()))
	if img := g.mergeCacheBitmaps(bmp, alpha, targetW, targetH); img != nil {
		// Scaling already happened in the cache; round the scale terms
		// so sub-pixel differences don't rescale, unless skewed.
		w := float64(img.Width())
		h := float64(img.Height())
		m := geom.Matrix{
			A: math.Round(xRel.X) / w, B: yRel.X / h, C: null.X,
			D: xRel.Y / w, E: math.Round(yRel.Y) / h, F: null.Y,
		}
		sampling := raster.SamplingNearest
		if m.NeedsHighQuality() {
			sampling = raster.SamplingHighQuality
		}
		g.drawCanvas().DrawImageMatrix(img, m, sampling, raster.BlendSrcOver, op)
		g.postDraw()
		return true
	}

	w := float64(bmp.W)
	h := float64(bmp.H)
	m := geom.Matrix{
		A: xRel.X / w, B: yRel.X / h, C: null.X,
		D: xRel.Y / w, E: yRel.Y / h, F: null.Y,
	}
	sampling := raster.SamplingNearest
	if m.NeedsHighQuality() {
		sampling = raster.SamplingHighQuality
	}
	if alpha != nil {
		shader := raster.NewBlendShader(raster.BlendDstOut,
			raster.NewImageShader(bmp.Image(), m, sampling, raster.ExtendPad),
			raster.NewMaskShader(alpha, m))
		if opacity != 1 {
			shader = raster.NewBlendShader(raster.BlendDstIn, shader,
				raster.NewColorShader(raster.RGBA(0, 0, 0, op)))
		}
		paint := raster.NewPaint()
		paint.Shader = shader
		paint.AntiAlias = false
		dev := rectPath(geom.NewRect(0, 0, w, h))
		dev.Transform(m)
		g.drawCanvas().FillPath(dev, paint)
	} else {
		g.drawCanvas().DrawImageMatrix(bmp.Image(), m, sampling, raster.BlendSrcOver, op)
	}
	g.postDraw()
	return true
}

// grayMaskShader reads an opacity-complement mask as opaque grayscale.
type grayMaskShader struct {
	mask *raster.AlphaMask
	inv  geom.Matrix
}

func (s grayMaskShader) ColorAt(x, y float64) raster.Color {
	p := s.inv.TransformPoint(geom.Pt(x, y))
	v := s.mask.At(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	return raster.RGB(v, v, v)
}
