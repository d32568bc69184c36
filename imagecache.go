package gdi

import (
	"fmt"
	"math"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
)

// mergeCacheBitmaps returns a cached image with the bitmap scaled to the
// target size and, when present, the alpha mask merged in. It returns
// nil when caching would not pay off and the caller should draw
// directly. Keys are derived from content-identity tokens, so mutated
// bitmaps never serve stale entries.
func (g *Graphics) mergeCacheBitmaps(bmp *raster.Bitmap, alpha *raster.AlphaMask, targetW, targetH int) *raster.Image {
	if bmp == nil || targetW <= 0 || targetH <= 0 {
		return nil
	}
	// A fully opaque mask contributes nothing; dropping it widens key
	// sharing with unmasked draws of the same bitmap.
	if alpha != nil && alpha.IsFullyOpaque() {
		alpha = nil
	}
	sameSize := targetW == bmp.W && targetH == bmp.H
	if alpha == nil && sameSize {
		return nil
	}
	// Small unscaled merges are cheaper to redo than to track.
	if sameSize && targetW < 100 && targetH < 100 {
		return nil
	}
	if g.Accelerated() {
		// Shader scaling on the GPU is cheap; only severe downscales are
		// worth materializing.
		reduce := float64(bmp.W) * float64(bmp.H) / (float64(targetW) * float64(targetH))
		if reduce < g.opts.gpuDownscaleRatio {
			return nil
		}
	}
	drawArea := g.clipBounds()
	if targetW > drawArea.Width() || targetH > drawArea.Height() {
		// Upscaling to something larger than what can show through the
		// clip wastes the budget quickly.
		upscale := math.Max(1, float64(targetW)/float64(bmp.W)*float64(targetH)/float64(bmp.H))
		oversize := float64(targetW) / float64(drawArea.Width()) *
			float64(targetH) / float64(drawArea.Height())
		if upscale*oversize > g.opts.oversizeRatio {
			Logger().Debug("gdi: not caching oversized image",
				"w", targetW, "h", targetH,
				"clipW", drawArea.Width(), "clipH", drawArea.Height())
			return nil
		}
	}
	cost := targetW * targetH * 4
	if float64(cost) > g.opts.cacheBudgetFraction*float64(g.imageCache.Budget()) {
		Logger().Debug("gdi: not caching image exceeding budget share",
			"cost", cost, "budget", g.imageCache.Budget())
		return nil
	}

	key := fmt.Sprintf("%dx%d_%d", targetW, targetH, bmp.ID())
	if alpha != nil {
		key += fmt.Sprintf("_%d", alpha.ID())
	}
	if img, ok := g.imageCache.Get(key); ok {
		return img
	}

	tmp, err := raster.NewSurface(targetW, targetH)
	if err != nil {
		return nil
	}
	sampling := raster.SamplingNearest
	if !sameSize {
		sampling = raster.SamplingHighQuality
	}
	canvas := tmp.Canvas()
	if alpha != nil {
		local := geom.Scale(float64(targetW)/float64(bmp.W), float64(targetH)/float64(bmp.H))
		paint := raster.NewPaint()
		paint.Blend = raster.BlendSrc
		paint.Shader = raster.NewBlendShader(raster.BlendDstOut,
			raster.NewImageShader(bmp.Image(), local, sampling, raster.ExtendPad),
			raster.NewMaskShader(alpha, local))
		canvas.DrawPaint(paint)
	} else {
		canvas.DrawImageRect(bmp.Image(),
			geom.NewRect(0, 0, float64(bmp.W), float64(bmp.H)),
			geom.NewRect(0, 0, float64(targetW), float64(targetH)),
			sampling, raster.BlendSrc, 255)
	}
	img := tmp.Snapshot()
	g.imageCache.Add(key, img, img.SizeBytes())
	return img
}
